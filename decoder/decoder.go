// Package decoder re-reads the compiler's binary output format: a
// 40-byte version header, a 64-bit little-endian level count, then per
// level a length-prefixed name, a 64-bit record count, and that many
// records. Used for differential testing against reference
// binaries — see package internal/diff.
package decoder

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/desperr"

	"github.com/pkg/errors"
)

const headerSize = 40

const (
	tagNull   = 0x00
	tagInt    = 0x01
	tagString = 0x02
	tagVar    = 0x03
	tagCoord  = 0x04
	tagRegion = 0x05
	tagChar   = 0x06
	tagMonst  = 0x07
	tagObj    = 0x08
	tagSel    = 0x09
)

// Decode reads a full compiled unit from r: the version header, a
// 64-bit level count, then each level as a name followed by its
// record count and records. Only Push carries an operand in the
// binary form.
func Decode(r io.Reader) ([]bytecode.Level, error) {
	var offset int64

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, wrapEOF(offset, err)
	}
	offset += headerSize

	var levelCount uint64
	if err := binary.Read(r, binary.LittleEndian, &levelCount); err != nil {
		return nil, wrapEOF(offset, err)
	}
	offset += 8

	levels := make([]bytecode.Level, 0, levelCount)
	for l := uint64(0); l < levelCount; l++ {
		name, n, err := readLenPrefixedString(r)
		if err != nil {
			return nil, errors.Wrapf(wrapEOF(offset, err), "level %d name", l)
		}
		offset += n

		var count uint64
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, errors.Wrapf(wrapEOF(offset, err), "level %d record count", l)
		}
		offset += 8

		lvl := bytecode.Level{Name: name, Code: make([]bytecode.Instruction, 0, count)}
		for i := uint64(0); i < count; i++ {
			inst, n, err := decodeRecord(r)
			if err != nil {
				return nil, errors.Wrapf(err, "level %d record %d at offset %d", l, i, offset)
			}
			offset += n
			lvl.Code = append(lvl.Code, inst)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

func decodeRecord(r io.Reader) (bytecode.Instruction, int64, error) {
	var opCode uint32
	if err := binary.Read(r, binary.LittleEndian, &opCode); err != nil {
		return bytecode.Instruction{}, 0, err
	}
	op := bytecode.Opcode(opCode)
	if opCode > 0xff || !op.Valid() {
		return bytecode.Instruction{}, 0, &desperr.DecodeError{Msg: "unknown opcode code"}
	}
	if op != bytecode.OpPush {
		return bytecode.Instruction{Op: op}, 4, nil
	}

	tagBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, tagBuf); err != nil {
		return bytecode.Instruction{}, 0, err
	}
	n := int64(5)

	operand, extra, err := decodeOperand(r, tagBuf[0])
	if err != nil {
		return bytecode.Instruction{}, 0, err
	}
	return bytecode.Instruction{Op: op, Operand: operand}, n + extra, nil
}

func decodeOperand(r io.Reader, tag byte) (bytecode.Operand, int64, error) {
	switch tag {
	case tagNull:
		return nil, 0, nil
	case tagInt:
		var v int64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, 0, err
		}
		return bytecode.IntOperand(v), 8, nil
	case tagString:
		s, n, err := readLenPrefixedString(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.StringOperand(s), n, nil
	case tagVar:
		s, n, err := readLenPrefixedString(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.VarOperand(s), n, nil
	case tagSel:
		b, n, err := readLenPrefixedBytes(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.SelOperand(b), n, nil
	case tagCoord:
		v, err := readU64(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.UnpackCoord(v), 8, nil
	case tagRegion:
		v, err := readU64(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.UnpackRegion(v), 8, nil
	case tagChar:
		v, err := readU64(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.UnpackMapChar(v), 8, nil
	case tagMonst:
		v, err := readU64(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.UnpackMonst(v), 8, nil
	case tagObj:
		v, err := readU64(r)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.UnpackObj(v), 8, nil
	default:
		return nil, 0, &desperr.DecodeError{Msg: "unknown operand type"}
	}
}

func readU64(r io.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readLenPrefixedBytes(r io.Reader) ([]byte, int64, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, 0, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, err
	}
	return buf, int64(4) + int64(length), nil
}

func readLenPrefixedString(r io.Reader) (string, int64, error) {
	buf, n, err := readLenPrefixedBytes(r)
	if err != nil {
		return "", 0, err
	}
	if !utf8.Valid(buf) {
		return "", 0, &desperr.DecodeError{Msg: "invalid utf-8 in string operand"}
	}
	return string(buf), n, nil
}

func wrapEOF(offset int64, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &desperr.DecodeError{Offset: offset, Msg: "unexpected end of data"}
	}
	return errors.Wrapf(err, "offset %d", offset)
}
