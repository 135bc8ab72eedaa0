// Package encoder serializes a []bytecode.Level into the binary format
// package decoder reads back: a 40-byte version header, a 64-bit level
// count, then each level as a name followed by its record count and
// records. This is additive scope beyond the compiler proper (the
// specification treats serialization as produced elsewhere) but gives
// the differential harness a self-contained round trip to test
// against.
package encoder

import (
	"encoding/binary"
	"io"

	"github.com/nhdc/desc/bytecode"

	"github.com/pkg/errors"
)

const headerSize = 40

// errWriter tracks the first write error and keeps returning it on
// every subsequent call, so the record-writing loop below doesn't need
// to check an error after every binary.Write.
type errWriter struct {
	w   io.Writer
	Err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// Encode writes levels to w in the decoder's wire format. The version
// header is a fixed zero-filled block: its contents are opaque to this
// package, matching the specification's silence on header semantics.
func Encode(w io.Writer, levels []bytecode.Level) error {
	ew := &errWriter{w: w}
	if _, err := ew.Write(make([]byte, headerSize)); err != nil {
		return errors.Wrap(err, "writing header")
	}
	binary.Write(ew, binary.LittleEndian, uint64(len(levels)))
	for _, lvl := range levels {
		writeLenPrefixed(ew, []byte(lvl.Name))
		binary.Write(ew, binary.LittleEndian, uint64(len(lvl.Code)))
		for _, inst := range lvl.Code {
			if err := encodeRecord(ew, inst); err != nil {
				return err
			}
		}
	}
	return errors.Wrap(ew.Err, "encoding levels")
}

func encodeRecord(w *errWriter, inst bytecode.Instruction) error {
	binary.Write(w, binary.LittleEndian, uint32(inst.Op))
	if inst.Op != bytecode.OpPush {
		return nil
	}
	return encodeOperand(w, inst.Operand)
}

func encodeOperand(w *errWriter, operand bytecode.Operand) error {
	tag := byte(bytecode.TagNull)
	if operand != nil {
		tag = operand.Tag()
	}
	w.Write([]byte{tag})

	switch v := operand.(type) {
	case nil:
		return nil
	case bytecode.IntOperand:
		binary.Write(w, binary.LittleEndian, int64(v))
	case bytecode.StringOperand:
		writeLenPrefixed(w, []byte(v))
	case bytecode.VarOperand:
		writeLenPrefixed(w, []byte(v))
	case bytecode.SelOperand:
		writeLenPrefixed(w, []byte(v))
	case bytecode.CoordOperand:
		binary.Write(w, binary.LittleEndian, bytecode.PackCoord(v))
	case bytecode.RegionOperand:
		binary.Write(w, binary.LittleEndian, bytecode.PackRegion(v))
	case bytecode.MapCharOperand:
		binary.Write(w, binary.LittleEndian, bytecode.PackMapChar(v))
	case bytecode.MonstOperand:
		binary.Write(w, binary.LittleEndian, bytecode.PackMonst(v))
	case bytecode.ObjOperand:
		binary.Write(w, binary.LittleEndian, bytecode.PackObj(v))
	default:
		return errors.Errorf("unsupported operand type %T", operand)
	}
	return w.Err
}

func writeLenPrefixed(w *errWriter, b []byte) {
	binary.Write(w, binary.LittleEndian, uint32(len(b)))
	w.Write(b)
}
