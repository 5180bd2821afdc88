package texture

import "testing"

// buildPatch constructs a patch-format lump with a single column whose
// data is one post starting at topDelta.
func buildPatch(width, height int, topDelta byte, pixels []byte) []byte {
	var out []byte
	le16 := func(v int16) {
		out = append(out, byte(v), byte(v>>8))
	}
	le16(int16(width))
	le16(int16(height))
	le16(0) // left offset
	le16(0) // top offset

	colOffset := 8 + width*4
	for c := 0; c < width; c++ {
		v := uint32(colOffset)
		out = append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	// column data: one post then terminator, for every column (all
	// columns share the same bytes here for simplicity)
	var col []byte
	col = append(col, topDelta, byte(len(pixels)), 0)
	col = append(col, pixels...)
	col = append(col, 0) // trailing pad byte
	col = append(col, 0xFF)
	out = append(out, col...)
	return out
}

func TestParsePatchBasic(t *testing.T) {
	data := buildPatch(1, 10, 2, []byte{5, 6, 7})
	p, err := ParsePatch(data)
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	if p.Width != 1 || p.Height != 10 {
		t.Fatalf("dims = %dx%d, want 1x10", p.Width, p.Height)
	}
	col := p.Column(0)
	if len(col.Posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(col.Posts))
	}
	if col.Posts[0].TopDelta != 2 || len(col.Posts[0].Data) != 3 {
		t.Fatalf("post = %+v", col.Posts[0])
	}
}

func TestParsePatchRejectsTruncatedHeader(t *testing.T) {
	if _, err := ParsePatch([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for truncated header")
	}
}

func TestDrawToTextureClampsNegativePosition(t *testing.T) {
	// topDelta=0, originY=-2: position underflows to -2, vanilla clamps
	// to 0 and shortens the post by two pixels rather than negating; the
	// copy still starts at the post's first pixel, so rows 0-1 get 9, 8.
	data := buildPatch(1, 10, 0, []byte{9, 8, 7, 6})
	p, err := ParsePatch(data)
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	tex := &WallTexture{Width: 1, Height: 10, pixels: make([]byte, 10)}
	for i := range tex.pixels {
		tex.pixels[i] = SentinelIndex
	}
	p.Column(0).DrawToTexture(tex, 0, -2)
	if tex.At(0, 0) != 9 {
		t.Fatalf("At(0,0) = %d, want 9 (copy starts at the post's first pixel)", tex.At(0, 0))
	}
	if tex.At(0, 1) != 8 {
		t.Fatalf("At(0,1) = %d, want 8", tex.At(0, 1))
	}
	if tex.At(0, 2) != SentinelIndex {
		t.Fatalf("At(0,2) = %d, want untouched sentinel", tex.At(0, 2))
	}
}

func TestDrawToTextureWithinBounds(t *testing.T) {
	data := buildPatch(1, 10, 3, []byte{1, 2, 3})
	p, err := ParsePatch(data)
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	tex := &WallTexture{Width: 1, Height: 10, pixels: make([]byte, 10)}
	p.Column(0).DrawToTexture(tex, 0, 0)
	if tex.At(0, 3) != 1 || tex.At(0, 4) != 2 || tex.At(0, 5) != 3 {
		t.Fatalf("pixels not drawn at expected rows: %v", tex.pixels)
	}
}
