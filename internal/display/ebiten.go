//go:build !headless

package display

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/zotley/doomcore/internal/framebuffer"
)

// EbitenOutput presents the framebuffer through an ebiten.Game loop,
// adapted from the teacher's EbitenOutput: same window-size/fullscreen/
// vsync-handshake shape, minus the audio/texture/sprite/clipboard
// concerns this domain has no component for (see DESIGN.md).
type EbitenOutput struct {
	running    bool
	window     *ebiten.Image
	scale      int
	fullscreen bool

	mu        sync.RWMutex
	rgba      []byte
	frameSeen bool

	frameCount uint64
	vsyncChan  chan struct{}

	keyHandler        KeyHandler
	fullscreenHandler func(bool)
}

// NewEbitenOutput returns an unstarted ebiten-backed Output.
func NewEbitenOutput(cfg Config) *EbitenOutput {
	return &EbitenOutput{
		scale:      ClampScale(cfg.Scale),
		fullscreen: cfg.Fullscreen,
		rgba:       make([]byte, framebuffer.Width*framebuffer.Height*4),
		vsyncChan:  make(chan struct{}, 1),
	}
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(framebuffer.Width*eo.scale, framebuffer.Height*eo.scale)
	ebiten.SetWindowTitle("doomcore")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if eo.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("display: ebiten error: %v\n", err)
		}
	}()

	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Close() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Present(frame *framebuffer.Buffer, palette [256]uint32) error {
	if frame.Cols() != framebuffer.Width || frame.Rows() != framebuffer.Height {
		return &DisplayError{Operation: "present", Details: fmt.Sprintf("got %dx%d, want %dx%d", frame.Cols(), frame.Rows(), framebuffer.Width, framebuffer.Height)}
	}
	eo.mu.Lock()
	eo.rgba = frame.ToRGBA(palette, eo.rgba)
	eo.frameSeen = true
	eo.mu.Unlock()
	return nil
}

func (eo *EbitenOutput) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) FrameCount() uint64 { return eo.frameCount }

func (eo *EbitenOutput) SetKeyHandler(fn KeyHandler) {
	eo.mu.Lock()
	eo.keyHandler = fn
	eo.mu.Unlock()
}

func (eo *EbitenOutput) SetFullscreenToggleHandler(fn func(bool)) {
	eo.mu.Lock()
	eo.fullscreenHandler = fn
	eo.mu.Unlock()
}

// Update implements ebiten.Game: handles the F11 fullscreen toggle and
// forwards keyboard input, matching EbitenOutput.Update's shape.
func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.mu.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		handler := eo.fullscreenHandler
		fs := eo.fullscreen
		eo.mu.Unlock()
		if handler != nil {
			handler(fs)
		}
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) handleKeyboardInput() {
	eo.mu.RLock()
	handler := eo.keyHandler
	eo.mu.RUnlock()
	if handler == nil {
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		handler(KeyEvent{Rune: r, Pressed: true})
	}

	named := []struct {
		key  ebiten.Key
		name string
	}{
		{ebiten.KeyEnter, "Enter"},
		{ebiten.KeyBackspace, "Backspace"},
		{ebiten.KeyTab, "Tab"},
		{ebiten.KeyEscape, "Escape"},
		{ebiten.KeyGraveAccent, "`"},
		{ebiten.KeyArrowUp, "Up"},
		{ebiten.KeyArrowDown, "Down"},
		{ebiten.KeyArrowLeft, "Left"},
		{ebiten.KeyArrowRight, "Right"},
	}
	for _, n := range named {
		if inpututil.IsKeyJustPressed(n.key) {
			handler(KeyEvent{Name: n.name, Pressed: true})
		}
	}
}

// Draw implements ebiten.Game: blits the last-presented frame and signals
// the vsync handshake channel, exactly as EbitenOutput.Draw does.
func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(framebuffer.Width, framebuffer.Height)
	}

	eo.mu.RLock()
	if eo.frameSeen {
		eo.window.WritePixels(eo.rgba)
	}
	eo.mu.RUnlock()
	screen.DrawImage(eo.window, nil)

	eo.frameCount++
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

// Layout implements ebiten.Game: the logical screen is always the fixed
// 320x200 renderer resolution, scaled up by ebiten itself.
func (eo *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	return framebuffer.Width, framebuffer.Height
}
