package diff_test

import (
	"bytes"
	"testing"

	"github.com/nhdc/desc/compiler"
	"github.com/nhdc/desc/decoder"
	"github.com/nhdc/desc/encoder"
	"github.com/nhdc/desc/internal/diff"

	"github.com/stretchr/testify/require"
)

const sampleSrc = `LEVEL: "roundtrip"
FLAGS: noteleport, hardfloor
MESSAGE: "Welcome"
MONSTER: ('@', "Wizard of Yendor"), (5,5)
TRAP: "pit", (3,3)
IF [$x == 1] {
EXIT
} ELSE {
EXIT
}
`

func TestCompareIdenticalLevelsMatch(t *testing.T) {
	a, err := compiler.Compile("t", sampleSrc)
	require.NoError(t, err)
	b, err := compiler.Compile("t", sampleSrc)
	require.NoError(t, err)

	d, ok := diff.Compare(a, b)
	require.True(t, ok)
	require.Nil(t, d)
}

func TestCompareDetectsLevelCountMismatch(t *testing.T) {
	a, err := compiler.Compile("t", sampleSrc)
	require.NoError(t, err)
	b, err := compiler.Compile("t", sampleSrc+"\nLEVEL: \"second\"\nEXIT\n")
	require.NoError(t, err)

	d, ok := diff.Compare(a, b)
	require.False(t, ok)
	require.NotNil(t, d)
}

func TestCompareDetectsInstructionMismatch(t *testing.T) {
	a, err := compiler.Compile("t", `LEVEL: "a"
GOLD: 100, (1,1)
`)
	require.NoError(t, err)
	b, err := compiler.Compile("t", `LEVEL: "a"
GOLD: 200, (1,1)
`)
	require.NoError(t, err)

	d, ok := diff.Compare(a, b)
	require.False(t, ok)
	require.NotNil(t, d)
	require.Equal(t, 0, d.Level)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	levels, err := compiler.Compile("roundtrip", sampleSrc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encoder.Encode(&buf, levels))

	got, err := decoder.Decode(&buf)
	require.NoError(t, err)

	d, ok := diff.Compare(levels, got)
	require.True(t, ok, "%v", d)
}

func TestCompareGoldenMatchesOwnEncoding(t *testing.T) {
	levels, err := compiler.Compile("golden", sampleSrc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encoder.Encode(&buf, levels))

	d, ok, err := diff.CompareGolden(&buf, sampleSrc, "golden")
	require.NoError(t, err)
	require.True(t, ok, "%v", d)
}

func TestCompareGoldenDetectsDivergence(t *testing.T) {
	levels, err := compiler.Compile("golden", `LEVEL: "golden"
GOLD: 100, (1,1)
`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encoder.Encode(&buf, levels))

	d, ok, err := diff.CompareGolden(&buf, `LEVEL: "golden"
GOLD: 200, (1,1)
`, "golden")
	require.NoError(t, err)
	require.False(t, ok)
	require.NotNil(t, d)
}
