package decoder_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/decoder"

	"github.com/stretchr/testify/require"
)

func TestDecodeSingleIntPush(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 40))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len("lvl"))))
	buf.WriteString("lvl")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(2)))

	// record 0: Push(IntOperand(42))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(bytecode.OpPush)))
	buf.WriteByte(bytecode.TagInt)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int64(42)))

	// record 1: Exit, no operand
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(bytecode.OpExit)))

	levels, err := decoder.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	require.Equal(t, "lvl", levels[0].Name)
	require.Equal(t, []bytecode.Instruction{
		{Op: bytecode.OpPush, Operand: bytecode.IntOperand(42)},
		{Op: bytecode.OpExit},
	}, levels[0].Code)
}

func TestDecodeTruncatedStreamErrors(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 40))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(1)))
	// Missing level name and everything after: must fail, not panic.
	_, err := decoder.Decode(&buf)
	require.Error(t, err)
}

func TestDecodeUnknownOpcodeErrors(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 40))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(0)))
	buf.WriteString("")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(9999)))

	_, err := decoder.Decode(&buf)
	require.Error(t, err)
}
