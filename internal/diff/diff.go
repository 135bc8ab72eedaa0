// Package diff implements the differential harness that checks the
// round-trip property compile -> encode -> decode -> compile: a
// compiled program must survive a trip through the binary form
// unchanged. It is also used to compare compiler output directly
// against golden reference binaries when one is supplied.
package diff

import (
	"fmt"
	"io"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/compiler"
	"github.com/nhdc/desc/decoder"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// Divergence pinpoints the first level/instruction where two compiled
// programs disagree, with a human-readable structural diff for the
// rest.
type Divergence struct {
	Level       int
	Instruction int
	Detail      string
}

func (d *Divergence) String() string {
	return fmt.Sprintf("level %d, instruction %d:\n%s", d.Level, d.Instruction, d.Detail)
}

// Compare reports whether a and b are structurally identical. On
// mismatch it returns a Divergence naming the first level/instruction
// where they differ.
func Compare(a, b []bytecode.Level) (*Divergence, bool) {
	if len(a) != len(b) {
		return &Divergence{
			Level:  min(len(a), len(b)),
			Detail: fmt.Sprintf("level count differs: %d vs %d", len(a), len(b)),
		}, false
	}
	for l := range a {
		if d := compareLevel(l, a[l], b[l]); d != nil {
			return d, false
		}
	}
	return nil, true
}

func compareLevel(l int, a, b bytecode.Level) *Divergence {
	if a.Name != b.Name {
		return &Divergence{Level: l, Detail: fmt.Sprintf("name differs: %q vs %q", a.Name, b.Name)}
	}
	n := len(a.Code)
	if len(b.Code) < n {
		n = len(b.Code)
	}
	for i := 0; i < n; i++ {
		if diff := cmp.Diff(a.Code[i], b.Code[i]); diff != "" {
			return &Divergence{Level: l, Instruction: i, Detail: diff}
		}
	}
	if len(a.Code) != len(b.Code) {
		return &Divergence{
			Level:       l,
			Instruction: n,
			Detail:      fmt.Sprintf("instruction count differs: %d vs %d", len(a.Code), len(b.Code)),
		}
	}
	return nil
}

// CompareGolden compiles src under name and compares the result
// against a reference binary read from r, decoded with package
// decoder. It wires compiler.Compile and decoder.Decode together so a
// caller holding a real reference binary can exercise the round-trip
// property described for the golden corpus.
func CompareGolden(r io.Reader, src, name string) (*Divergence, bool, error) {
	got, err := compiler.Compile(name, src)
	if err != nil {
		return nil, false, errors.Wrap(err, "compiling source")
	}
	want, err := decoder.Decode(r)
	if err != nil {
		return nil, false, errors.Wrap(err, "decoding reference binary")
	}
	d, ok := Compare(got, want)
	return d, ok, nil
}
