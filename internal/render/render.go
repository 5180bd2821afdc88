// Package render is the Frame Driver: the per-frame orchestration spec
// §4.I describes, tying together the BSP walk, the view camera's
// projection, screen occlusion clipping, and the wall column rasterizer
// into one "draw the next frame" call.
package render

import (
	"github.com/zotley/doomcore/internal/bsp"
	"github.com/zotley/doomcore/internal/camera"
	"github.com/zotley/doomcore/internal/framebuffer"
	"github.com/zotley/doomcore/internal/level"
	"github.com/zotley/doomcore/internal/occlusion"
	"github.com/zotley/doomcore/internal/raster"
	"github.com/zotley/doomcore/internal/texture"
)

// wireframeMarker is the palette index a wireframe overlay row uses to
// mark solid occlusion ranges, a bright index unlikely to collide with
// the scene's own palette use at row 0.
const wireframeMarker = 176

// FrameDriver renders one level from one camera's viewpoint into a
// framebuffer.Buffer each call, walking the BSP tree front-to-back and
// stopping early once the screen has been fully claimed by closer
// geometry, mirroring render_sectors/render_sub_sector/render_segments/
// render_fragments's chained-systems pipeline.
type FrameDriver struct {
	Level    *level.Level
	Camera   *camera.Camera
	Textures *texture.TextureSet

	occlusion *occlusion.ScreenOcclusion
	vclip     *raster.VerticalClip
	scene     *raster.Scene

	lastFrame *framebuffer.Buffer

	// Wireframe, when set, draws a one-row strip at the top of the frame
	// marking which columns the occlusion pass claimed as solid this
	// frame — internal/console's "wireframe" command toggles this.
	Wireframe bool
}

// New builds a FrameDriver over lvl, rendering from cam's viewpoint using
// textures resolved from the loaded wall texture set.
func New(lvl *level.Level, cam *camera.Camera, textures *texture.TextureSet) *FrameDriver {
	return &FrameDriver{
		Level:     lvl,
		Camera:    cam,
		Textures:  textures,
		occlusion: occlusion.New(),
		vclip:     raster.NewVerticalClip(),
		scene:     &raster.Scene{Level: lvl, Camera: cam, Textures: textures},
	}
}

// RenderFrame draws one complete frame into screen: every column is
// either written by a wall fragment or left at palette index 0 (the
// screen is cleared first, matching render_sectors's screen.fill(0)).
// A clone of the result is kept so LastFrame can hand callers (the melt
// transition, a screenshot command) the just-drawn frame without racing
// the next call's clear.
func (fd *FrameDriver) RenderFrame(screen *framebuffer.Buffer) {
	screen.Fill(0)
	fd.occlusion.Reset()
	fd.vclip.Reset()

	lvl := fd.Level
	it := bsp.NewIterator(lvl, fd.Camera.Position)
	for it.Next() {
		if fd.occlusion.IsFullyOccluded() {
			break
		}
		isLeaf, subSector, _ := it.Current()
		if !isLeaf {
			continue
		}
		ss := &lvl.SubSectors[subSector]
		from, to := ss.Segments()
		for i := from; i < to; i++ {
			if fd.occlusion.IsFullyOccluded() {
				break
			}
			fd.renderSegment(screen, &lvl.Segments[i])
		}
	}

	if fd.Wireframe {
		fd.drawWireframeOverlay(screen)
	}

	fd.lastFrame = screen.Clone()
}

// LastFrame returns a clone of the most recently rendered frame, or nil
// if RenderFrame has never been called. internal/console's melt hook and
// any screenshot/snapshot command use this rather than re-rendering.
func (fd *FrameDriver) LastFrame() *framebuffer.Buffer {
	if fd.lastFrame == nil {
		return nil
	}
	return fd.lastFrame.Clone()
}

func (fd *FrameDriver) renderSegment(screen *framebuffer.Buffer, seg *level.LineSegment) {
	x1, x2, ok := fd.Camera.WorldToViewport(seg)
	if !ok {
		return
	}
	strategy := fd.selectStrategy(seg)
	if strategy == nil {
		return
	}
	fragments := strategy.Clip(fd.occlusion, occlusion.Range{Start: x1, End: x2})
	for _, fragment := range fragments {
		fd.scene.DrawFragment(screen, fd.vclip, seg, fragment)
	}
}

func (fd *FrameDriver) selectStrategy(seg *level.LineSegment) occlusion.Strategy {
	lvl := fd.Level
	line := &lvl.Lines[seg.Line]
	if !line.IsPortal() {
		return occlusion.Solid{}
	}
	frontSec := &lvl.Sectors[seg.FrontSector]
	backSec := &lvl.Sectors[seg.BackSector]
	side := &lvl.Sides[seg.Side]
	return occlusion.Select(false, frontSec, backSec, side)
}

func (fd *FrameDriver) drawWireframeOverlay(screen *framebuffer.Buffer) {
	for _, r := range fd.occlusion.Ranges() {
		for x := r.Start; x <= r.End; x++ {
			screen.Set(x, 0, wireframeMarker)
		}
	}
}
