package framebuffer

import "testing"

func TestNewScreenDimensions(t *testing.T) {
	b := NewScreen()
	if b.Cols() != Width || b.Rows() != Height {
		t.Fatalf("got %dx%d, want %dx%d", b.Cols(), b.Rows(), Width, Height)
	}
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if b.At(x, y) != 0 {
				t.Fatalf("expected fresh buffer all zero, got %d at (%d,%d)", b.At(x, y), x, y)
			}
		}
	}
}

func TestSetAtOutOfBounds(t *testing.T) {
	b := New(4, 4)
	b.Set(-1, 0, 9)
	b.Set(0, -1, 9)
	b.Set(4, 0, 9)
	b.Set(0, 4, 9)
	if b.At(-1, 0) != 0 || b.At(5, 5) != 0 {
		t.Fatalf("out of bounds reads should return 0")
	}
	b.Set(1, 2, 42)
	if got := b.At(1, 2); got != 42 {
		t.Fatalf("At(1,2) = %d, want 42", got)
	}
}

func TestFill(t *testing.T) {
	b := New(3, 3)
	b.Fill(7)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if b.At(x, y) != 7 {
				t.Fatalf("Fill did not set (%d,%d)", x, y)
			}
		}
	}
}

func TestSetColumnRangeClips(t *testing.T) {
	b := New(2, 5)
	b.SetColumnRange(0, -3, 2, 9)
	for y := 0; y <= 2; y++ {
		if b.At(0, y) != 9 {
			t.Fatalf("expected row %d set", y)
		}
	}
	if b.At(0, 3) != 0 {
		t.Fatalf("row 3 should remain untouched")
	}
	b.SetColumnRange(1, 4, 100, 5)
	if b.At(1, 4) != 5 {
		t.Fatalf("clipped upper bound should still draw row 4")
	}
}

func TestCloneIndependence(t *testing.T) {
	b := New(2, 2)
	b.Set(0, 0, 1)
	c := b.Clone()
	c.Set(0, 0, 2)
	if b.At(0, 0) != 1 {
		t.Fatalf("clone mutation leaked into original")
	}
}

func TestCopyFromMismatchedDimsNoop(t *testing.T) {
	a := New(2, 2)
	b := New(3, 3)
	a.Set(0, 0, 5)
	a.CopyFrom(b)
	if a.At(0, 0) != 5 {
		t.Fatalf("CopyFrom with mismatched dims should be a no-op")
	}
}

func TestToRGBA(t *testing.T) {
	b := New(2, 1)
	b.Set(0, 0, 1)
	b.Set(1, 0, 2)
	var pal [256]uint32
	pal[1] = 0x112233
	pal[2] = 0xAABBCC
	out := b.ToRGBA(pal, nil)
	if len(out) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(out))
	}
	if out[0] != 0x11 || out[1] != 0x22 || out[2] != 0x33 || out[3] != 0xFF {
		t.Fatalf("unexpected pixel 0: %v", out[:4])
	}
	if out[4] != 0xAA || out[5] != 0xBB || out[6] != 0xCC || out[7] != 0xFF {
		t.Fatalf("unexpected pixel 1: %v", out[4:8])
	}
}
