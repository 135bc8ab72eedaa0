package bytecode_test

import (
	"testing"

	"github.com/nhdc/desc/bytecode"
)

func TestPackUnpackCoord(t *testing.T) {
	// Concrete coordinates round-trip their X/Y exactly.
	cases := []bytecode.CoordOperand{
		{X: 5, Y: 10},
		{X: -1, Y: -1},
		{X: 127, Y: -128},
	}
	for _, c := range cases {
		got := bytecode.UnpackCoord(bytecode.PackCoord(c))
		if got != c {
			t.Errorf("PackCoord/UnpackCoord(%+v) = %+v", c, got)
		}
	}

	// Random coordinates carry only the Random flag and Humidity bits
	// on the wire; X/Y are in-memory sentinel values with no wire
	// representation.
	rc := bytecode.RandomCoord()
	got := bytecode.UnpackCoord(bytecode.PackCoord(rc))
	if !got.Random || got.Humidity != rc.Humidity {
		t.Errorf("PackCoord/UnpackCoord(%+v) = %+v", rc, got)
	}
}

func TestPackUnpackRegion(t *testing.T) {
	r := bytecode.RegionOperand{X1: 1, Y1: 2, X2: -3, Y2: -4}
	if got := bytecode.UnpackRegion(bytecode.PackRegion(r)); got != r {
		t.Errorf("PackRegion/UnpackRegion(%+v) = %+v", r, got)
	}
}

func TestPackUnpackMapChar(t *testing.T) {
	cases := []bytecode.MapCharOperand{
		{Type: 24, Lit: 1},
		{Type: 24, Lit: -1},
		{Type: 0, Lit: 0},
	}
	for _, m := range cases {
		got := bytecode.UnpackMapChar(bytecode.PackMapChar(m))
		if got != m {
			t.Errorf("PackMapChar/UnpackMapChar(%+v) = %+v", m, got)
		}
	}
}

func TestPackUnpackMonst(t *testing.T) {
	cases := []bytecode.MonstOperand{
		{Class: '@', Id: 68},
		bytecode.MonsterWildcard(),
	}
	for _, m := range cases {
		got := bytecode.UnpackMonst(bytecode.PackMonst(m))
		if got != m {
			t.Errorf("PackMonst/UnpackMonst(%+v) = %+v", m, got)
		}
	}
}

func TestPackUnpackObj(t *testing.T) {
	cases := []bytecode.ObjOperand{
		{Class: '(', Id: 3},
		bytecode.ObjectWildcard(),
	}
	for _, o := range cases {
		got := bytecode.UnpackObj(bytecode.PackObj(o))
		if got != o {
			t.Errorf("PackObj/UnpackObj(%+v) = %+v", o, got)
		}
	}
}

func TestMonsterWildcardSentinel(t *testing.T) {
	w := bytecode.MonsterWildcard()
	if w.Class != 255 || w.Id != -11 {
		t.Errorf("MonsterWildcard() = %+v, want Class=255 Id=-11", w)
	}
}

func TestOpcodeValidAndString(t *testing.T) {
	if !bytecode.OpPush.Valid() {
		t.Error("OpPush should be valid")
	}
	if bytecode.Opcode(255).Valid() {
		t.Error("opcode 255 should not be valid")
	}
	if s := bytecode.OpMonster.String(); s != "monster" {
		t.Errorf("OpMonster.String() = %q, want \"monster\"", s)
	}
}
