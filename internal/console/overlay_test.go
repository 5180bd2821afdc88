package console

import (
	"testing"

	"github.com/zotley/doomcore/internal/framebuffer"
)

func TestDrawOverlayFillsBackgroundBand(t *testing.T) {
	frame := framebuffer.NewScreen()
	frame.Fill(7)

	DrawOverlay(frame, []string{"sector(0)"}, "counts()", 5)

	if frame.At(0, 0) != overlayBG {
		t.Fatalf("expected overlay background at (0,0), got %d", frame.At(0, 0))
	}
	if frame.At(0, frame.Rows()-1) != 7 {
		t.Fatalf("expected the bottom row to remain untouched by the overlay band")
	}
}

func TestDrawOverlayTruncatesToMaxLines(t *testing.T) {
	frame := framebuffer.NewScreen()
	history := []string{"a", "b", "c", "d", "e", "f"}

	// Should not panic even though history exceeds maxLines.
	DrawOverlay(frame, history, "", 2)
}
