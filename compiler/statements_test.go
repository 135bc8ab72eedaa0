package compiler_test

import (
	"testing"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/compiler"
	"github.com/nhdc/desc/names"

	"github.com/stretchr/testify/require"
)

func compileBody(t *testing.T, stmt string) []bytecode.Instruction {
	t.Helper()
	lvls, err := compiler.Compile("t", "LEVEL: \"t\"\n"+stmt+"\n")
	require.NoError(t, err)
	require.Len(t, lvls, 1)
	// Drop the mandatory push(0); LevelFlags prelude.
	return lvls[0].Code[2:]
}

func TestCompileTrapKnownName(t *testing.T) {
	code := compileBody(t, `TRAP: "pit", (3,4)`)
	wantCode, ok := names.LookupTrap("pit")
	require.True(t, ok)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 3, Y: 4}),
		push(wantCode),
		op(bytecode.OpTrap),
	}
	require.Equal(t, want, code)
}

func TestCompileTrapUnknownName(t *testing.T) {
	code := compileBody(t, `TRAP: "not a real trap", (1,1)`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		push(-1),
		op(bytecode.OpTrap),
	}
	require.Equal(t, want, code)
}

func TestCompileDoorState(t *testing.T) {
	code := compileBody(t, `DOOR: locked, (2,2)`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 2, Y: 2}),
		op(bytecode.OpSelPoint),
		push(4),
		op(bytecode.OpDoor),
	}
	require.Equal(t, want, code)
}

func TestCompileDoorSelectionComposition(t *testing.T) {
	code := compileBody(t, `DOOR: locked, fillrect (1,1,2,2) & (5,5)`)
	want := []bytecode.Instruction{
		pushRegion(bytecode.RegionOperand{X1: 1, Y1: 1, X2: 2, Y2: 2}),
		op(bytecode.OpSelFillRect),
		pushCoord(bytecode.CoordOperand{X: 5, Y: 5}),
		op(bytecode.OpSelPoint),
		op(bytecode.OpSelAdd),
		push(4),
		op(bytecode.OpDoor),
	}
	require.Equal(t, want, code)
}

func TestCompileDrawbridgeDirectionAndState(t *testing.T) {
	code := compileBody(t, `DRAWBRIDGE: (1,1), north, closed`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		push(0), // closed normalizes to 0
		push(bytecode.DBNorth),
		op(bytecode.OpDrawbridge),
	}
	require.Equal(t, want, code)
}

func TestCompileDrawbridgeOpenState(t *testing.T) {
	code := compileBody(t, `DRAWBRIDGE: (1,1), south, open`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		push(1), // open stays 1
		push(bytecode.DBSouth),
		op(bytecode.OpDrawbridge),
	}
	require.Equal(t, want, code)
}

func TestCompileRoomDoor(t *testing.T) {
	code := compileBody(t, `ROOMDOOR: true, locked, north, 50`)
	want := []bytecode.Instruction{
		push(50),
		push(4),
		push(1),
		push(bytecode.DirNorth),
		op(bytecode.OpRoomDoor),
	}
	require.Equal(t, want, code)
}

func TestCompileGeometry(t *testing.T) {
	code := compileBody(t, `GEOMETRY: center, center`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 3, Y: 3}),
		push(1),
		push(1),
	}
	require.Equal(t, want, code)
}

func TestCompileNomap(t *testing.T) {
	code := compileBody(t, `NOMAP`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{}),
		push(0),
		push(1),
		pushStr(""),
		push(0),
		push(0),
		op(bytecode.OpMap),
	}
	require.Equal(t, want, code)
}

func TestCompileGold(t *testing.T) {
	code := compileBody(t, `GOLD: 100, (5,5)`)
	want := []bytecode.Instruction{
		push(100),
		pushCoord(bytecode.CoordOperand{X: 5, Y: 5}),
		op(bytecode.OpGold),
	}
	require.Equal(t, want, code)
}

func TestCompileEngraving(t *testing.T) {
	code := compileBody(t, `ENGRAVING: (1,1), dust, "Elbereth"`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		pushStr("Elbereth"),
		push(0), // dust
		op(bytecode.OpEngraving),
	}
	require.Equal(t, want, code)
}

func TestCompileGraveWithMessage(t *testing.T) {
	code := compileBody(t, `GRAVE: (1,1), "Here lies a rodney"`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		pushStr("Here lies a rodney"),
		op(bytecode.OpGrave),
	}
	require.Equal(t, want, code)
}

func TestCompileGraveWithoutMessage(t *testing.T) {
	code := compileBody(t, `GRAVE: (1,1)`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		pushStr(""),
		op(bytecode.OpGrave),
	}
	require.Equal(t, want, code)
}

func TestCompileLadder(t *testing.T) {
	code := compileBody(t, `LADDER: (1,1), up`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		push(1),
		op(bytecode.OpLadder),
	}
	require.Equal(t, want, code)
}

func TestCompileMazeWalk(t *testing.T) {
	code := compileBody(t, `MAZEWALK: (1,1), north`)
	want := []bytecode.Instruction{
		pushCoord(bytecode.CoordOperand{X: 1, Y: 1}),
		push(bytecode.DirNorth),
		push(-1),
		op(bytecode.OpMazeWalk),
	}
	require.Equal(t, want, code)
}
