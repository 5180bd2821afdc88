//go:build headless

package display

import (
	"sync/atomic"

	"github.com/zotley/doomcore/internal/framebuffer"
)

// HeadlessOutput discards every presented frame, counting them instead.
// Grounded on the teacher's HeadlessVideoOutput build-tag twin, used for
// CI and tests where no window is available.
type HeadlessOutput struct {
	started    bool
	frameCount uint64
}

// NewEbitenOutput keeps the same constructor name as the non-headless
// build so cmd/doomcore's wiring doesn't need a build-tagged call site.
func NewEbitenOutput(cfg Config) *HeadlessOutput {
	return &HeadlessOutput{}
}

func (h *HeadlessOutput) Start() error { h.started = true; return nil }
func (h *HeadlessOutput) Close() error { h.started = false; return nil }

func (h *HeadlessOutput) Present(frame *framebuffer.Buffer, palette [256]uint32) error {
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessOutput) WaitForVSync() error { return nil }
func (h *HeadlessOutput) FrameCount() uint64  { return atomic.LoadUint64(&h.frameCount) }

func (h *HeadlessOutput) SetKeyHandler(KeyHandler)              {}
func (h *HeadlessOutput) SetFullscreenToggleHandler(func(bool)) {}
