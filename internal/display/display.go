// Package display presents the renderer's palettized 320x200 framebuffer
// in a window: "palette index -> RGBA -> screen", nothing more. Gamma
// curves, texture/sprite upload paths, and input policy are out of scope
// per spec §1; this package only turns a *framebuffer.Buffer plus a
// 256-entry packed palette into pixels on glass.
package display

import (
	"fmt"

	"github.com/zotley/doomcore/internal/framebuffer"
)

// DisplayError carries operation context, matching the teacher's
// *VideoError shape (Operation/Details/Err) rather than a bare fmt.Errorf
// chain.
type DisplayError struct {
	Operation string
	Details   string
	Err       error
}

func (e *DisplayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("display %s failed: %s", e.Operation, e.Details)
}

func (e *DisplayError) Unwrap() error { return e.Err }

// Config is the hardware-independent window configuration, trimmed from
// the teacher's DisplayConfig down to what a fixed-resolution palettized
// renderer actually needs: no RefreshRate/PixelFormat/VSync fields, since
// this package always runs at the display's native refresh and always
// presents paletted 320x200 content through ToRGBA.
type Config struct {
	Scale      int // integer scaling factor for the window
	Fullscreen bool
}

// ClampScale keeps the integer scale factor within a sane window-size
// range, exactly as the teacher's ClampScale does.
func ClampScale(s int) int {
	if s < 1 {
		return 1
	}
	if s > 4 {
		return 4
	}
	return s
}

// KeyEvent is a backend-independent keypress, so internal/console (and
// anything else watching input) never needs to import ebiten directly.
type KeyEvent struct {
	Rune    rune   // printable character, 0 if none
	Name    string // named key, e.g. "Enter", "Backspace", "Escape", "`"
	Pressed bool   // true on key-down/just-pressed, false is currently unused
}

// KeyHandler receives keyboard input forwarded from the presentation
// backend, the display-package analogue of the teacher's
// KeyboardInput.SetKeyHandler(func(byte)).
type KeyHandler func(KeyEvent)

// Output is the minimal interface a presentation backend must implement:
// start/stop the window, push a frame, wait for vsync, and forward
// keyboard input. It deliberately drops the teacher's
// PaletteCapable/TextureCapable/SpriteCapable/ScanlineAware/
// CompositorManageable surface: this renderer has exactly one video
// source (the rasterizer's own framebuffer), so there is nothing for
// those multi-source-compositing concerns to manage. See DESIGN.md for
// the full per-method drop list.
type Output interface {
	Start() error
	Close() error

	// Present expands frame through palette and displays it. frame must
	// be 320x200; palette is a 256-entry table of packed 0xRRGGBB values,
	// the same shape framebuffer.Buffer.ToRGBA expects.
	Present(frame *framebuffer.Buffer, palette [256]uint32) error

	WaitForVSync() error
	FrameCount() uint64

	SetKeyHandler(KeyHandler)
	// SetFullscreenToggleHandler is invoked after the backend applies an
	// F11 fullscreen toggle, so callers can keep their own Config in sync.
	SetFullscreenToggleHandler(func(fullscreen bool))
}
