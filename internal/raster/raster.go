package raster

import (
	"github.com/zotley/doomcore/internal/camera"
	"github.com/zotley/doomcore/internal/framebuffer"
	"github.com/zotley/doomcore/internal/level"
	"github.com/zotley/doomcore/internal/occlusion"
	"github.com/zotley/doomcore/internal/texture"
)

// ViewHeight is vanilla's fixed eye height (VIEWHEIGHT): every world
// height is projected relative to this plane rather than a per-sector
// derived eye position.
const ViewHeight = 41.0

// screenCenterY is half of the fixed 200-row output height: every
// column's vertical projection is built as an offset from this row.
const screenCenterY = ScreenHeight / 2

// skyFlat is the flat name vanilla treats as "open sky": two sectors
// that share it on their ceiling get the "outdoor height hack" so a
// ceiling height mismatch between them never draws a wall.
const skyFlat = "F_SKY1"

// Scene bundles the read-only lookups a fragment draw needs to resolve
// texture and sector data from a LineSegment, so DrawFragment's
// signature doesn't grow a parameter per lookup table.
type Scene struct {
	Level    *level.Level
	Camera   *camera.Camera
	Textures *texture.TextureSet
}

type texInfo struct {
	tex    *texture.WallTexture
	texMid float32
}

type drawInfo struct {
	x1, x2 int
	v1, v2 level.Vertex

	worldTop, worldBottom float32
	worldHigh, worldLow   float32

	top, topStep         float32
	bottom, bottomStep   float32
	pixHigh, pixHighStep float32
	pixLow, pixLowStep   float32
	scale1, scaleStep    float32

	baseOffset float32

	markCeiling, markFloor bool

	midTex, topTex, bottomTex *texInfo
}

// DrawFragment rasterizes one visible [fragment.Start,fragment.End]
// screen-column range of seg into screen, updating vclip so later,
// farther fragments in the same columns clip correctly against it.
func (s *Scene) DrawFragment(screen *framebuffer.Buffer, vclip *VerticalClip, seg *level.LineSegment, fragment occlusion.Range) {
	line := &s.Level.Lines[seg.Line]
	side := &s.Level.Sides[seg.Side]
	frontSec := &s.Level.Sectors[seg.FrontSector]
	var backSec *level.Sector
	if seg.IsPortal() {
		backSec = &s.Level.Sectors[seg.BackSector]
	}

	info := s.extract(seg, line, side, frontSec, backSec, fragment)
	s.drawColumns(screen, vclip, &info)
}

func (s *Scene) extract(seg *level.LineSegment, line *level.Line, side *level.SideDef, frontSec, backSec *level.Sector, fragment occlusion.Range) drawInfo {
	var info drawInfo
	s.setEnds(&info, seg, fragment)
	s.setScales(&info)
	s.setWorldBounds(&info, frontSec, backSec)
	s.setProjection(&info)
	s.setBaseOffset(&info, seg, side)
	s.setTex(&info, line, side, frontSec, backSec)
	return info
}

func (s *Scene) setEnds(info *drawInfo, seg *level.LineSegment, fragment occlusion.Range) {
	info.x1 = fragment.Start
	info.x2 = fragment.End
	info.v1 = s.Camera.ViewportToWorld(seg, info.x1)
	info.v2 = s.Camera.ViewportToWorld(seg, info.x2)
}

func (s *Scene) setScales(info *drawInfo) {
	scale1 := s.Camera.FindScale(info.v1)
	scale2 := s.Camera.FindScale(info.v2)
	info.scale1 = scale1
	if info.x1 < info.x2 {
		info.scaleStep = (scale2 - scale1) / float32(info.x2-info.x1)
	}
}

func (s *Scene) setWorldBounds(info *drawInfo, frontSec, backSec *level.Sector) {
	info.worldTop = frontSec.CeilingHeight - ViewHeight
	info.worldBottom = frontSec.FloorHeight - ViewHeight

	if backSec == nil {
		info.markCeiling = true
		info.markFloor = true
		return
	}

	info.worldHigh = backSec.CeilingHeight - ViewHeight
	info.worldLow = backSec.FloorHeight - ViewHeight

	if frontSec.CeilingTexture == skyFlat && backSec.CeilingTexture == skyFlat {
		info.worldTop = info.worldHigh
	}

	info.markFloor = info.worldLow != info.worldBottom ||
		backSec.FloorTexture != frontSec.FloorTexture ||
		backSec.LightLevel != frontSec.LightLevel
	info.markCeiling = info.worldHigh != info.worldTop ||
		backSec.CeilingTexture != frontSec.CeilingTexture ||
		backSec.LightLevel != frontSec.LightLevel

	if backSec.CeilingHeight <= frontSec.FloorHeight || backSec.FloorHeight >= frontSec.CeilingHeight {
		info.markCeiling = true
		info.markFloor = true
	}

	// A floor/ceiling plane on the wrong side of the view plane is
	// invisible and doesn't need to be marked.
	if frontSec.FloorHeight >= ViewHeight {
		info.markFloor = false
	}
	if frontSec.CeilingHeight <= ViewHeight && frontSec.CeilingTexture != skyFlat {
		info.markCeiling = false
	}
}

func (s *Scene) setProjection(info *drawInfo) {
	info.top = screenCenterY - info.worldTop*info.scale1
	info.topStep = -(info.scaleStep * info.worldTop)
	info.bottom = screenCenterY - info.worldBottom*info.scale1
	info.bottomStep = -(info.scaleStep * info.worldBottom)
	if info.worldHigh < info.worldTop {
		info.pixHigh = screenCenterY - info.worldHigh*info.scale1
		info.pixHighStep = -(info.scaleStep * info.worldHigh)
	}
	if info.worldLow > info.worldBottom {
		info.pixLow = screenCenterY - info.worldLow*info.scale1
		info.pixLowStep = -(info.scaleStep * info.worldLow)
	}
}

func (s *Scene) setBaseOffset(info *drawInfo, seg *level.LineSegment, side *level.SideDef) {
	info.baseOffset += side.XOffset
	info.baseOffset += seg.Offset
	info.baseOffset += info.v1.Sub(s.Camera.WorldToCamera(seg.V1)).Length()
}

func (s *Scene) setTex(info *drawInfo, line *level.Line, side *level.SideDef, frontSec, backSec *level.Sector) {
	if backSec != nil {
		s.setPortalTex(info, line, side, backSec)
	} else {
		s.setWallTex(info, line, side, frontSec)
	}
}

func (s *Scene) setWallTex(info *drawInfo, line *level.Line, side *level.SideDef, frontSec *level.Sector) {
	tex := s.Textures.Lookup(side.MiddleTexture)
	if tex == nil {
		return
	}
	data := &texInfo{tex: tex}
	if line.Flags&level.LineFlagLowerUnpegged != 0 {
		vtop := frontSec.FloorHeight + float32(tex.Height)
		data.texMid = vtop - ViewHeight
	} else {
		data.texMid = info.worldTop
	}
	data.texMid += side.YOffset
	info.midTex = data
}

func (s *Scene) setPortalTex(info *drawInfo, line *level.Line, side *level.SideDef, backSec *level.Sector) {
	if info.worldHigh < info.worldTop {
		tex := s.Textures.Lookup(side.TopTexture)
		if tex != nil {
			data := &texInfo{tex: tex}
			if line.Flags&level.LineFlagUpperUnpegged != 0 {
				data.texMid = info.worldTop
			} else {
				vtop := backSec.CeilingHeight + float32(tex.Height)
				data.texMid = vtop - ViewHeight
			}
			data.texMid += side.YOffset
			info.topTex = data
		}
	}
	if info.worldLow > info.worldBottom {
		tex := s.Textures.Lookup(side.LowerTexture)
		if tex != nil {
			data := &texInfo{tex: tex}
			if line.Flags&level.LineFlagLowerUnpegged != 0 {
				data.texMid = info.worldTop
			} else {
				data.texMid = info.worldLow
			}
			data.texMid += side.YOffset
			info.bottomTex = data
		}
	}
}

func (s *Scene) drawColumns(screen *framebuffer.Buffer, vclip *VerticalClip, info *drawInfo) {
	dx := float32(info.x2 - info.x1)
	length := info.v2.Sub(info.v1).Length()

	for i := info.x1; i <= info.x2; i++ {
		yl := ceilInt(info.top)
		if yl < vclip.Ceiling[i]+1 {
			yl = vclip.Ceiling[i] + 1
		}
		yh := floorInt(info.bottom)
		if yh >= vclip.Floor[i] {
			yh = vclip.Floor[i] - 1
		}

		var t float32
		if dx > 0 {
			sFrac := float32(i-info.x1) / dx
			t = sFrac * info.v1.Y / (sFrac*info.v1.Y + (1-sFrac)*info.v2.Y)
		}
		offset := info.baseOffset + length*t

		invScale := float32(1) / info.scale1

		info.scale1 += info.scaleStep
		info.top += info.topStep
		info.bottom += info.bottomStep

		if info.midTex != nil {
			tex := info.midTex.tex
			texCol := wrapMod(int(offset), tex.Width)
			drawCol(screen, i, texCol, yl, yh, tex, info.midTex.texMid, invScale)
			continue
		}

		if info.topTex != nil {
			tex := info.topTex.tex
			yhTop := floorInt(info.pixHigh)
			info.pixHigh += info.pixHighStep
			if vclip.Floor[i] <= yhTop {
				yhTop = vclip.Floor[i] - 1
			}
			if yl <= yhTop {
				texCol := wrapMod(int(offset), tex.Width)
				drawCol(screen, i, texCol, yl, yhTop, tex, info.topTex.texMid, invScale)
				vclip.Ceiling[i] = yhTop
			} else {
				vclip.Ceiling[i] = yl - 1
			}
		} else if info.markCeiling {
			vclip.Ceiling[i] = yl - 1
		}

		if info.bottomTex != nil {
			tex := info.bottomTex.tex
			ylBottom := ceilInt(info.pixLow)
			info.pixLow += info.pixLowStep
			if ylBottom <= vclip.Ceiling[i] {
				ylBottom = vclip.Ceiling[i] + 1
			}
			if ylBottom <= yh {
				texCol := wrapMod(int(offset), tex.Width)
				drawCol(screen, i, texCol, ylBottom, yh, tex, info.bottomTex.texMid, invScale)
				vclip.Floor[i] = ylBottom
			} else {
				vclip.Floor[i] = yh + 1
			}
		} else if info.markFloor {
			vclip.Floor[i] = yh + 1
		}
	}
}

// drawCol draws one texture-sampled column span [yl,yh] into screen
// column i, perspective-correcting the vertical texture coordinate by
// invScale and wrapping into the texture's height.
func drawCol(screen *framebuffer.Buffer, i, texCol, yl, yh int, tex *texture.WallTexture, textureMid float32, invScale float32) {
	for y := yl; y <= yh; y++ {
		dy := float32(y - screenCenterY)
		textureFracY := textureMid + dy*invScale
		textureY := wrapMod(int(textureFracY), tex.Height)
		screen.Set(i, y, tex.At(texCol, textureY))
	}
}

// wrapMod returns a non-negative remainder, matching the vanilla
// texture-space wraparound that Go's native '%' (which can be
// negative) does not give for free.
func wrapMod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

func ceilInt(v float32) int {
	i := int(v)
	if v > float32(i) {
		i++
	}
	return i
}

func floorInt(v float32) int {
	i := int(v)
	if v < float32(i) {
		i--
	}
	return i
}
