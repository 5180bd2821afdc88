package console

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zotley/doomcore/internal/framebuffer"
)

// overlayBG and overlayText are the palette indices the overlay's
// background band and its text are drawn with. A real palette need not reserve these slots for
// anything else; per spec §1/§9 display gamma/palette policy is out of
// scope here, so the console picks two plain indices and leaves mapping
// them to legible colors up to whatever palette is loaded.
const (
	overlayBG   = 0
	overlayText = 15
)

// DrawOverlay renders the last maxLines of history plus the in-progress
// input line into the top rows of frame, for a caller that wants the
// console visible over the rendered scene. Uses x/image/font/basicfont,
// the same auxiliary-glyph-rendering role x/image plays in the teacher's
// stack.
func DrawOverlay(frame *framebuffer.Buffer, history []string, input string, maxLines int) {
	lines := history
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	lines = append(append([]string{}, lines...), "> "+input)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	bandHeight := lineHeight*len(lines) + 4
	if bandHeight > frame.Rows() {
		bandHeight = frame.Rows()
	}

	for y := 0; y < bandHeight; y++ {
		for x := 0; x < frame.Cols(); x++ {
			frame.Set(x, y, overlayBG)
		}
	}

	for i, line := range lines {
		baseY := 2 + (i+1)*lineHeight - face.Descent.Ceil()
		drawString(frame, face, 2, baseY, line)
	}
}

// drawString rasterizes s at (x,baseY) using face's glyph bitmaps,
// writing overlayText into every "on" pixel and leaving the rest of
// frame untouched.
func drawString(frame *framebuffer.Buffer, face font.Face, x, baseY int, s string) {
	dot := x
	for _, r := range s {
		dot26 := fixed.P(dot, baseY)
		dr, mask, maskp, advance, ok := face.Glyph(dot26, r)
		if !ok {
			dot += 7
			continue
		}
		bounds := dr.Bounds()
		for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
			for px := bounds.Min.X; px < bounds.Max.X; px++ {
				_, _, _, a := mask.At(maskp.X+(px-bounds.Min.X), maskp.Y+(py-bounds.Min.Y)).RGBA()
				if a != 0 {
					frame.Set(px, py, overlayText)
				}
			}
		}
		dot += advance.Ceil()
	}
}
