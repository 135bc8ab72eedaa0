package compiler_test

import (
	"testing"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/compiler"
	"github.com/nhdc/desc/names"

	"github.com/stretchr/testify/require"
)

func push(v int64) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.OpPush, Operand: bytecode.IntOperand(v)}
}

func pushStr(s string) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.OpPush, Operand: bytecode.StringOperand(s)}
}

func pushVar(name string) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.OpPush, Operand: bytecode.VarOperand(name)}
}

func pushCoord(c bytecode.CoordOperand) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.OpPush, Operand: c}
}

func pushMonst(m bytecode.MonstOperand) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.OpPush, Operand: m}
}

func pushRegion(r bytecode.RegionOperand) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.OpPush, Operand: r}
}

func op(o bytecode.Opcode) bytecode.Instruction {
	return bytecode.Instruction{Op: o}
}

func TestCompileMazeHeaderRandomFill(t *testing.T) {
	lvls, err := compiler.Compile("t", `MAZE: "Home", random`)
	require.NoError(t, err)
	require.Len(t, lvls, 1)
	require.Equal(t, "Home", lvls[0].Name)
	want := []bytecode.Instruction{
		push(bytecode.LvlInitMazeGrid),
		push(2), // filling: random
		push(0), push(0), push(0), push(0), push(0), push(0),
		op(bytecode.OpInitLevel),
		push(bytecode.FlagMazeLevel),
		op(bytecode.OpLevelFlags),
		push(0),
		op(bytecode.OpLevelFlags),
	}
	require.Equal(t, want, lvls[0].Code)
}

func TestCompileLevelHeaderNoFlags(t *testing.T) {
	lvls, err := compiler.Compile("t", `LEVEL: "Home"`)
	require.NoError(t, err)
	require.Len(t, lvls, 1)
	want := []bytecode.Instruction{
		push(0),
		op(bytecode.OpLevelFlags),
	}
	require.Equal(t, want, lvls[0].Code)
}

func TestCompileMapBlock(t *testing.T) {
	src := "LEVEL: \"maptest\"\nMAP\n...\n...\nENDMAP\n"
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	require.Len(t, lvls, 1)
	code := lvls[0].Code
	require.Len(t, code, 6)
	require.Equal(t, push(0), code[0])
	require.Equal(t, op(bytecode.OpLevelFlags), code[1])
	strOp, ok := code[2].Operand.(bytecode.StringOperand)
	require.True(t, ok)
	require.Len(t, []byte(strOp), 2*3)
	require.Equal(t, push(2), code[3])
	require.Equal(t, push(3), code[4])
	require.Equal(t, op(bytecode.OpMap), code[5])
}

func TestCompilePercentGatedStatement(t *testing.T) {
	src := "LEVEL: \"pcttest\"\n[75%]: MESSAGE: \"hi\"\n"
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	code := lvls[0].Code
	// Skip the mandatory push(0); LevelFlags prelude.
	body := code[2:]
	require.Len(t, body, 9)
	require.Equal(t, push(75), body[0])
	require.Equal(t, push(100), body[1])
	require.Equal(t, op(bytecode.OpRn2), body[2])
	require.Equal(t, push(0), body[3])
	require.Equal(t, op(bytecode.OpCmp), body[4])
	// body[5] is the jump placeholder; its patched value must make the
	// jump land just past the MESSAGE/Message pair at body[7:9].
	ph, ok := body[5].Operand.(bytecode.IntOperand)
	require.True(t, ok)
	require.Equal(t, int64(9-5), int64(ph))
	require.Equal(t, op(bytecode.OpJg), body[6])
	require.Equal(t, pushStr("hi"), body[7])
	require.Equal(t, op(bytecode.OpMessage), body[8])
}

func TestCompileIfJumpPatching(t *testing.T) {
	src := `LEVEL: "iftest"
IF [$x == 3] {
EXIT
}
`
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	code := lvls[0].Code[2:]
	require.Len(t, code, 6)
	require.Equal(t, pushVar("$x"), code[0])
	require.Equal(t, push(3), code[1])
	require.Equal(t, op(bytecode.OpCmp), code[2])
	ph, ok := code[3].Operand.(bytecode.IntOperand)
	require.True(t, ok)
	require.Equal(t, int64(6-3), int64(ph))
	require.Equal(t, op(bytecode.OpJne), code[4])
	require.Equal(t, op(bytecode.OpExit), code[5])
}

func TestCompileForLoopStepAndBackwardJump(t *testing.T) {
	src := `LEVEL: "fortest"
FOR $i = 1 TO 3 {
EXIT
}
`
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	code := lvls[0].Code[2:]

	// store $i = 1
	require.Equal(t, push(1), code[0])
	require.Equal(t, push(0), code[1])
	require.Equal(t, pushVar("$i"), code[2])
	require.Equal(t, op(bytecode.OpVarInit), code[3])

	// store "$i end" = 3
	require.Equal(t, push(3), code[4])
	require.Equal(t, push(0), code[5])
	require.Equal(t, pushVar("$i end"), code[6])
	require.Equal(t, op(bytecode.OpVarInit), code[7])

	// step = sign(end - start)
	require.Equal(t, pushVar("$i end"), code[8])
	require.Equal(t, pushVar("$i"), code[9])
	require.Equal(t, op(bytecode.OpMathSub), code[10])
	require.Equal(t, op(bytecode.OpMathSign), code[11])
	require.Equal(t, push(0), code[12])
	require.Equal(t, pushVar("$i step"), code[13])
	require.Equal(t, op(bytecode.OpVarInit), code[14])

	// body: EXIT at index 15 (top of loop)
	require.Equal(t, op(bytecode.OpExit), code[15])

	// increment + backward jump
	require.Equal(t, pushVar("$i"), code[16])
	require.Equal(t, pushVar("$i end"), code[17])
	require.Equal(t, op(bytecode.OpCmp), code[18])
	require.Equal(t, pushVar("$i step"), code[19])
	require.Equal(t, pushVar("$i"), code[20])
	require.Equal(t, op(bytecode.OpMathAdd), code[21])
	require.Equal(t, push(0), code[22])
	require.Equal(t, pushVar("$i"), code[23])
	require.Equal(t, op(bytecode.OpVarInit), code[24])

	ph, ok := code[25].Operand.(bytecode.IntOperand)
	require.True(t, ok)
	// jump back to index 15 (top of body), stored value is its own index (25)
	require.Equal(t, int64(15-25), int64(ph))
	require.Equal(t, op(bytecode.OpJne), code[26])
	require.Len(t, code, 27)
}

func TestCompileArrayLiteralAssignment(t *testing.T) {
	src := `LEVEL: "arrtest"
$arr = { 1, 2, 3 }
`
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	code := lvls[0].Code[2:]
	want := []bytecode.Instruction{
		push(1), push(2), push(3),
		push(3),
		pushVar("$arr"),
		op(bytecode.OpVarInit),
	}
	require.Equal(t, want, code)
}

func TestCompileMonsterWithName(t *testing.T) {
	src := `LEVEL: "montest"
MONSTER: ('@', "Wizard of Yendor"), (5,5)
`
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	code := lvls[0].Code[2:]

	wozId, ok := names.LookupMonster("Wizard of Yendor", '@')
	require.True(t, ok)

	want := []bytecode.Instruction{
		pushMonst(bytecode.MonstOperand{Class: '@', Id: wozId}),
		pushCoord(bytecode.CoordOperand{X: 5, Y: 5}),
		push(bytecode.MonVarEnd),
		push(0),
		op(bytecode.OpMonster),
	}
	require.Equal(t, want, code)
}

func TestCompileMonsterRandomRandom(t *testing.T) {
	src := `LEVEL: "montest2"
MONSTER: random, random
`
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	code := lvls[0].Code[2:]
	want := []bytecode.Instruction{
		pushMonst(bytecode.MonsterWildcard()),
		pushCoord(bytecode.RandomCoord()),
		push(bytecode.MonVarEnd),
		push(0),
		op(bytecode.OpMonster),
	}
	require.Equal(t, want, code)
}

func TestCompileMultipleLevels(t *testing.T) {
	src := `LEVEL: "first"
EXIT
LEVEL: "second"
EXIT
`
	lvls, err := compiler.Compile("t", src)
	require.NoError(t, err)
	require.Len(t, lvls, 2)
	require.Equal(t, "first", lvls[0].Name)
	require.Equal(t, "second", lvls[1].Name)
}

func TestCompileUnknownTokenError(t *testing.T) {
	_, err := compiler.Compile("t", `LEVEL: "bad"
BOGUS_KEYWORD
`)
	require.Error(t, err)
}
