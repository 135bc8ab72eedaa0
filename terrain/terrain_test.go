package terrain_test

import (
	"testing"

	"github.com/nhdc/desc/terrain"
)

func TestWhatMapCharKnown(t *testing.T) {
	cases := map[byte]int16{
		'.': terrain.Room,
		'-': terrain.HWall,
		'|': terrain.VWall,
		'+': terrain.Door,
		'#': terrain.Corr,
		' ': terrain.Stone,
	}
	for c, want := range cases {
		if got := terrain.WhatMapChar(c); got != want {
			t.Errorf("WhatMapChar(%q) = %d, want %d", c, got, want)
		}
	}
}

func TestWhatMapCharInvalid(t *testing.T) {
	if got := terrain.WhatMapChar('?'); got != terrain.InvalidType {
		t.Errorf("WhatMapChar('?') = %d, want InvalidType", got)
	}
}

func TestWhatMapCharRange(t *testing.T) {
	// Every recognized character maps into [0, MaxType] or InvalidType.
	for c := 0; c < 256; c++ {
		got := terrain.WhatMapChar(byte(c))
		if got != terrain.InvalidType && (got < 0 || got > terrain.MaxType) {
			t.Errorf("WhatMapChar(%q) = %d, out of range", byte(c), got)
		}
	}
}

func TestScanMapDimensions(t *testing.T) {
	raw := "...\n.-.\n..."
	data, height, width := terrain.ScanMap(raw)
	if height != 3 || width != 3 {
		t.Fatalf("ScanMap dims = %d x %d, want 3 x 3", height, width)
	}
	if len(data) != height*width {
		t.Fatalf("len(data) = %d, want %d", len(data), height*width)
	}
	for _, b := range data {
		if int(b) < 1 || int(b) > terrain.MaxType+1 {
			t.Errorf("byte %d out of valid range", b)
		}
	}
}

func TestScanMapStripsDigits(t *testing.T) {
	data, _, width := terrain.ScanMap("1.2.3")
	if width != 2 {
		t.Fatalf("width = %d, want 2 (digits stripped)", width)
	}
	for _, b := range data {
		if b != byte(terrain.Room)+1 {
			t.Errorf("byte %d, want Room+1 (%d)", b, terrain.Room+1)
		}
	}
}

func TestScanMapShortRowPadding(t *testing.T) {
	data, height, width := terrain.ScanMap(".\n...")
	if height != 2 || width != 3 {
		t.Fatalf("dims = %d x %d, want 2 x 3", height, width)
	}
	// Row 0 is "." padded with two Stone+1 bytes.
	if data[0] != byte(terrain.Room)+1 {
		t.Errorf("data[0] = %d, want Room+1", data[0])
	}
	if data[1] != byte(terrain.Stone)+1 || data[2] != byte(terrain.Stone)+1 {
		t.Errorf("padding bytes = %d, %d, want Stone+1", data[1], data[2])
	}
}
