package encoder_test

import (
	"bytes"
	"testing"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/decoder"
	"github.com/nhdc/desc/encoder"

	"github.com/stretchr/testify/require"
)

func TestEncodeThenDecodeMultipleLevels(t *testing.T) {
	levels := []bytecode.Level{
		{
			Name: "one",
			Code: []bytecode.Instruction{
				{Op: bytecode.OpPush, Operand: bytecode.IntOperand(7)},
				{Op: bytecode.OpPush, Operand: bytecode.StringOperand("hi")},
				{Op: bytecode.OpMessage},
			},
		},
		{
			Name: "two",
			Code: []bytecode.Instruction{
				{Op: bytecode.OpPush, Operand: bytecode.CoordOperand{X: 3, Y: 4}},
				{Op: bytecode.OpExit},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, encoder.Encode(&buf, levels))

	got, err := decoder.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, levels, got)
}

func TestEncodeRejectsUnsupportedOperandType(t *testing.T) {
	type bogusOperand struct{ bytecode.IntOperand }

	levels := []bytecode.Level{{
		Name: "bad",
		Code: []bytecode.Instruction{
			{Op: bytecode.OpPush, Operand: bogusOperand{}},
		},
	}}

	var buf bytes.Buffer
	err := encoder.Encode(&buf, levels)
	require.Error(t, err)
}

func TestEncodeEmptyLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encoder.Encode(&buf, nil))

	got, err := decoder.Decode(&buf)
	require.NoError(t, err)
	require.Empty(t, got)
}
