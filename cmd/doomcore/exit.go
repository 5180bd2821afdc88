package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/zotley/doomcore/internal/console"
	"github.com/zotley/doomcore/internal/display"
	"github.com/zotley/doomcore/internal/framebuffer"
)

// ExitCode is the process exit status; fatal pairs it with a one-line
// message, so every fatal path reports the same way regardless of which
// component raised it.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	ExitFailure ExitCode = 1
)

// fatal reports err and terminates the process with ExitFailure. When
// stdout is a terminal it writes a single line to stderr; otherwise — no
// terminal to read a stderr line from — it opens the presentation window
// just long enough to show the message as overlay text, the closest this
// engine gets to a GUI error dialog without a separate toolkit dependency.
func fatal(operation string, err error) {
	msg := fmt.Sprintf("doomcore: %s: %v", operation, err)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(int(ExitFailure))
	}

	showErrorWindow(msg)
	os.Exit(int(ExitFailure))
}

// showErrorWindow renders msg into a blank frame using the console
// overlay's text drawing and presents it once, so a non-terminal launch
// (double-clicked binary, launched from a GUI shell) still surfaces the
// failure instead of vanishing silently.
func showErrorWindow(msg string) {
	out := display.NewEbitenOutput(display.Config{Scale: 2})
	if err := out.Start(); err != nil {
		return
	}
	defer out.Close()

	frame := framebuffer.NewScreen()
	console.DrawOverlay(frame, nil, msg, 1)

	var palette [256]uint32
	for i := range palette {
		v := uint32(i)
		palette[i] = v<<16 | v<<8 | v
	}
	_ = out.Present(frame, palette)
	for i := 0; i < 180; i++ {
		if out.WaitForVSync() != nil {
			return
		}
	}
}
