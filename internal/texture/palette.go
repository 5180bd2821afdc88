package texture

import (
	"fmt"
	"image/color"

	"github.com/zotley/doomcore/internal/wad"
)

// PaletteCount and paletteSize describe PLAYPAL: 14 palettes of 256
// RGB triples each. The variants past palette 0 are vanilla's damage,
// pickup-bonus and radiation-suit screen tints.
const (
	PaletteCount = 14
	colorsPerPal = 256
	paletteSize  = colorsPerPal * 3
)

// Palette is one 256-color RGB table a framebuffer's indexed pixels
// are resolved through.
type Palette struct {
	colors [colorsPerPal]color.RGBA
}

// At converts palette index idx to its RGBA color.
func (p *Palette) At(idx byte) color.RGBA {
	return p.colors[idx]
}

// Packed returns this palette in the packed 0xRRGGBB-per-entry form
// framebuffer.Buffer.ToRGBA expects.
func (p *Palette) Packed() [256]uint32 {
	var out [256]uint32
	for i, c := range p.colors {
		out[i] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	return out
}

// PaletteSet is all 14 PLAYPAL variants, selectable by damage/pickup
// tint intensity.
type PaletteSet struct {
	palettes [PaletteCount]Palette
}

// Palette returns variant i, clamped to the valid range so a caller
// driving this off an intensity value never needs its own bounds check.
func (s *PaletteSet) Palette(i int) *Palette {
	if i < 0 {
		i = 0
	}
	if i >= PaletteCount {
		i = PaletteCount - 1
	}
	return &s.palettes[i]
}

// LoadPaletteSet decodes PLAYPAL: 14 consecutive 768-byte tables of
// 256 (r,g,b) triples.
func LoadPaletteSet(dir *wad.Directory) (*PaletteSet, error) {
	data, ok := dir.Get("PLAYPAL")
	if !ok {
		return nil, fmt.Errorf("texture: PLAYPAL lump not found")
	}
	if len(data) < PaletteCount*paletteSize {
		return nil, fmt.Errorf("texture: PLAYPAL has %d bytes, want at least %d", len(data), PaletteCount*paletteSize)
	}
	var set PaletteSet
	for p := 0; p < PaletteCount; p++ {
		base := p * paletteSize
		for c := 0; c < colorsPerPal; c++ {
			o := base + c*3
			set.palettes[p].colors[c] = color.RGBA{R: data[o], G: data[o+1], B: data[o+2], A: 0xFF}
		}
	}
	return &set, nil
}
