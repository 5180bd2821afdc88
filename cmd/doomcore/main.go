// Command doomcore loads a Doom-format IWAD and map, then renders it
// with the BSP-driven software renderer, presenting frames in a window
// (or headlessly, under the "headless" build tag).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/zotley/doomcore/internal/camera"
	"github.com/zotley/doomcore/internal/console"
	"github.com/zotley/doomcore/internal/display"
	"github.com/zotley/doomcore/internal/framebuffer"
	"github.com/zotley/doomcore/internal/level"
	"github.com/zotley/doomcore/internal/melt"
	"github.com/zotley/doomcore/internal/render"
	"github.com/zotley/doomcore/internal/rng"
	"github.com/zotley/doomcore/internal/texture"
	"github.com/zotley/doomcore/internal/wad"
)

func main() {
	args, err := expandArgs(os.Args[1:])
	if err != nil {
		fatal("argument expansion", err)
	}

	fs := flag.NewFlagSet("doomcore", flag.ExitOnError)
	iwadFlag := fs.String("iwad", "", "IWAD file name or path (default: search doom.wad/doom1.wad/doom2.wad)")
	mapFlag := fs.String("map", "E1M1", "map lump name to load")
	scaleFlag := fs.Int("scale", 2, "integer window scale factor (1-4)")
	fullscreenFlag := fs.Bool("fullscreen", false, "start in fullscreen")
	if err := fs.Parse(args); err != nil {
		fatal("flag parsing", err)
	}

	app, err := newApp(*iwadFlag, *mapFlag, *scaleFlag, *fullscreenFlag)
	if err != nil {
		fatal("startup", err)
	}
	defer app.Close()

	app.Run()
}

// app bundles every loaded resource and live component one run of
// doomcore needs, so main itself stays a thin flag-to-app translation.
type app struct {
	driver  *render.FrameDriver
	melt    *melt.Melt
	console *console.Console
	output  display.Output
	palette [256]uint32

	frame     *framebuffer.Buffer
	inputLine string
	showing   bool
}

func newApp(iwadName, mapName string, scale int, fullscreen bool) (*app, error) {
	iwadPath, ok := wad.FindIWAD([]string{".", "./wads", os.Getenv("DOOMWADDIR")}, iwadName)
	if !ok {
		return nil, fmt.Errorf("no IWAD found (looked for %q or the default set)", iwadName)
	}
	dir, err := wad.LoadFile(".", iwadPath)
	if err != nil {
		return nil, fmt.Errorf("loading IWAD %q: %w", iwadPath, err)
	}

	lvl, err := level.Load(dir, mapName)
	if err != nil {
		return nil, fmt.Errorf("loading map %q: %w", mapName, err)
	}

	textures, err := texture.LoadTextureSet(dir)
	if err != nil {
		return nil, fmt.Errorf("loading wall textures: %w", err)
	}
	if _, err := texture.LoadFlatSet(dir); err != nil {
		return nil, fmt.Errorf("loading flats: %w", err)
	}
	palettes, err := texture.LoadPaletteSet(dir)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}

	pos, facing := playerStart(lvl)
	cam := camera.New(pos, facing)
	driver := render.New(lvl, cam, textures)

	con := console.New(lvl)
	m := melt.New(rng.New())
	con.SetMeltHook(func() {
		triggerMelt(driver, m)
	})

	cfg := display.Config{Scale: display.ClampScale(scale), Fullscreen: fullscreen}
	out := display.NewEbitenOutput(cfg)

	a := &app{
		driver:  driver,
		melt:    m,
		console: con,
		output:  out,
		palette: palettes.Palette(0).Packed(),
		frame:   framebuffer.NewScreen(),
	}
	out.SetKeyHandler(a.handleKey)
	return a, nil
}

// playerStart locates the Player 1 start Thing (type 1) and returns its
// position and facing unit vector, falling back to the map origin facing
// north when a level has no player start (e.g. a test fixture).
func playerStart(lvl *level.Level) (level.Vertex, level.Vertex) {
	for _, t := range lvl.Things {
		if t.Type != 1 {
			continue
		}
		rad := float64(t.Angle) * math.Pi / 180
		return level.Vertex{X: t.X, Y: t.Y}, level.Vertex{X: float32(math.Cos(rad)), Y: float32(math.Sin(rad))}
	}
	return level.Vertex{}, level.Vertex{X: 0, Y: 1}
}

func triggerMelt(driver *render.FrameDriver, m *melt.Melt) {
	start := driver.LastFrame()
	if start == nil {
		return
	}
	incoming := framebuffer.NewScreen()
	driver.RenderFrame(incoming)
	m.Trigger(start, incoming)
}

// handleKey forwards keyboard input to the debug console while it is
// open (toggled by the backtick key), otherwise ignores input: this
// renderer has no player movement, per spec's rendering-only scope.
func (a *app) handleKey(ev display.KeyEvent) {
	if !ev.Pressed {
		return
	}
	if ev.Name == "`" {
		a.showing = !a.showing
		return
	}
	if !a.showing {
		return
	}
	switch ev.Name {
	case "Enter":
		line := a.inputLine
		a.inputLine = ""
		a.console.Run(line)
	case "Backspace":
		if n := len(a.inputLine); n > 0 {
			a.inputLine = a.inputLine[:n-1]
		}
	default:
		if ev.Rune != 0 {
			a.inputLine += string(ev.Rune)
		}
	}
}

// Run starts the presentation backend and drives the render/melt/present
// loop until the backend reports it can no longer accept frames.
func (a *app) Run() {
	if err := a.output.Start(); err != nil {
		fatal("display start", err)
	}

	for {
		if a.melt.State() == melt.Scrolling {
			a.melt.Tick(a.frame)
		} else {
			a.driver.Wireframe = a.console.Wireframe()
			a.driver.RenderFrame(a.frame)
		}
		if a.showing {
			console.DrawOverlay(a.frame, a.console.History(), a.inputLine, 8)
		}

		if err := a.output.Present(a.frame, a.palette); err != nil {
			return
		}
		if err := a.output.WaitForVSync(); err != nil {
			return
		}
	}
}

func (a *app) Close() {
	a.console.Close()
	a.output.Close()
}
