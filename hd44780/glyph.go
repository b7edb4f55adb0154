// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

const (
	// GlyphSlots is the number of custom glyphs CGRAM holds in 5x8 mode.
	GlyphSlots = 8
	// GlyphRows is the number of pattern bytes of a glyph.
	GlyphRows = 8
)

// Glyph is a custom character, one byte per dot row from the top. The low 5
// bits of each row are the dots, bit 4 being the leftmost column.
type Glyph [GlyphRows]byte

// Mask clears the pattern bits the font ignores: 5 bits are significant
// with the 5x8 font and 6 with the 5x10 font.
func (g Glyph) Mask(bigChars bool) Glyph {
	m := byte(0x1f)
	if bigChars {
		m = 0x3f
	}
	for ix := range g {
		g[ix] &= m
	}
	return g
}

// FillGlyph returns a glyph with every row set to row.
func FillGlyph(row byte) Glyph {
	var g Glyph
	for ix := range g {
		g[ix] = row
	}
	return g
}

// A few glyphs commonly used on status displays.
var (
	GlyphBlock = FillGlyph(0x1f)
	GlyphHeart = Glyph{0x00, 0x0a, 0x1f, 0x1f, 0x0e, 0x04, 0x00, 0x00}
	GlyphBell  = Glyph{0x04, 0x0e, 0x0e, 0x0e, 0x1f, 0x00, 0x04, 0x00}
	GlyphCheck = Glyph{0x00, 0x01, 0x03, 0x16, 0x1c, 0x08, 0x00, 0x00}
	GlyphArrow = Glyph{0x00, 0x04, 0x06, 0x1f, 0x06, 0x04, 0x00, 0x00}
)
