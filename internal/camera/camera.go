// Package camera implements the view transform spec §4.B describes: the
// player's eye frame, the fixed 90° projection plane it casts rays
// through, and the world<->screen-column mappings the BSP segment
// renderer drives off of.
package camera

import (
	"math"

	"github.com/zotley/doomcore/internal/level"
)

// ScreenWidth is the fixed column count every viewport projection maps
// into, matching the framebuffer's native width.
const ScreenWidth = 320

// Fov is the camera's horizontal field of view: 90 degrees.
const Fov = math.Pi / 2
const halfFov = Fov / 2

// Camera is the player's eye frame: a position and an orthonormal (x,y)
// axis pair derived from facing direction, plus the fixed view frustum
// that never changes shape (only position/orientation move per frame).
type Camera struct {
	Position level.Vertex
	XAxis    level.Vertex
	YAxis    level.Vertex
	frustum  viewFrustum
}

// New builds a Camera at position, facing the unit direction vector
// facing. The x axis is facing rotated by -Fov (a quarter turn
// clockwise), the right-hand perpendicular of the view direction, so
// geometry straight ahead has camera x = 0 and projects to the screen
// center, matching the teacher's own rotate-by-negative-FOV convention.
func New(position, facing level.Vertex) *Camera {
	return &Camera{
		Position: position,
		XAxis:    level.Rotate(facing, -Fov),
		YAxis:    facing,
		frustum:  newViewFrustum(),
	}
}

// Update repositions and reorients an existing Camera in place, so the
// per-frame render loop does not need to allocate a new Camera.
func (c *Camera) Update(position, facing level.Vertex) {
	c.Position = position
	c.XAxis = level.Rotate(facing, -Fov)
	c.YAxis = facing
}

// WorldToCamera transforms a world-space point into camera space: x is
// the lateral offset along XAxis, y is the forward depth along YAxis.
func (c *Camera) WorldToCamera(point level.Vertex) level.Vertex {
	rel := point.Sub(c.Position)
	return level.Vertex{X: rel.Dot(c.XAxis), Y: rel.Dot(c.YAxis)}
}

// FindScale returns the perspective scale factor for a camera-space
// point: how many screen pixels one world unit covers at that depth.
func (c *Camera) FindScale(point level.Vertex) float32 {
	plane := c.frustum.plane
	numerator := plane.Origin.Dot(plane.Normal)
	denominator := plane.Normal.Dot(point)
	return numerator / denominator
}

// ViewportToWorld unprojects screen column x back through segment's
// supporting line, in camera space, returning the camera-space point
// where the ray through column x crosses that line.
func (c *Camera) ViewportToWorld(seg *level.LineSegment, x int) level.Vertex {
	origin := c.frustum.plane.Origin
	end := c.frustum.plane.End
	t := float32(x) / ScreenWidth
	v1 := origin.Add(end.Sub(origin).Scale(t))

	p1 := level.Vertex{}
	p2 := v1
	p3 := c.WorldToCamera(seg.V1)
	p4 := c.WorldToCamera(seg.V2)

	numerator := (p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)
	denominator := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	distance := numerator / denominator
	return v1.Scale(distance)
}

// WorldToViewport back-face culls, frustum-clips and projects a world
// segment to an inclusive screen column range [x1,x2]. A false result
// means the segment contributes nothing to the current frame: it faces
// away from the camera, lies fully behind it, or degenerates to zero
// screen width after clipping.
func (c *Camera) WorldToViewport(seg *level.LineSegment) (x1, x2 int, ok bool) {
	normal := level.Vertex{X: seg.NormalX, Y: seg.NormalY}
	if seg.V1.Sub(c.Position).Dot(normal) > 0 {
		return 0, 0, false
	}
	v1 := c.WorldToCamera(seg.V1)
	v2 := c.WorldToCamera(seg.V2)
	return c.frustum.worldToViewport(v1, v2)
}

// projectionPlane is the camera-space segment rays are projected onto:
// a line from Origin to End, distance units in front of the eye, whose
// parametrization in [0,1] maps linearly to the 320 screen columns.
type projectionPlane struct {
	Normal level.Vertex
	Origin level.Vertex
	End    level.Vertex
}

// project returns how far along [Origin,End] (scaled to [0,320]) the ray
// through point crosses the projection plane, clamped to the plane's
// extent so off-plane geometry doesn't project outside the screen.
func (p *projectionPlane) project(point level.Vertex) float32 {
	p1, p2 := p.Origin, p.End
	numerator := p1.Y*point.X - p1.X*point.Y
	denominator := (p1.Y-p2.Y)*point.X - (p1.X-p2.X)*point.Y
	distance := numerator / denominator
	if distance < 0 {
		distance = 0
	} else if distance > 1 {
		distance = 1
	}
	return ScreenWidth * distance
}

type viewFrustum struct {
	plane           projectionPlane
	leftClipNormal  level.Vertex
	rightClipNormal level.Vertex
}

func newViewFrustum() viewFrustum {
	normal := level.Vertex{X: 0, Y: 1}
	originDir := level.Rotate(normal, halfFov)
	endDir := level.Rotate(normal, -halfFov)
	distance := float32(160.0 / math.Cos(halfFov))

	plane := projectionPlane{
		Normal: normal,
		Origin: originDir.Scale(distance),
		End:    endDir.Scale(distance),
	}
	return viewFrustum{
		plane:           plane,
		leftClipNormal:  level.Rotate(originDir, -Fov),
		rightClipNormal: level.Rotate(endDir, Fov),
	}
}

func (f *viewFrustum) worldToViewport(v1, v2 level.Vertex) (x1, x2 int, ok bool) {
	cv1, cv2, ok := f.clipLine(v1, v2)
	if !ok {
		return 0, 0, false
	}
	return f.projectLine(cv1, cv2)
}

func (f *viewFrustum) clipLine(v1, v2 level.Vertex) (level.Vertex, level.Vertex, bool) {
	if v1.Y <= 0 && v2.Y <= 0 {
		return level.Vertex{}, level.Vertex{}, false
	}
	c1 := f.clipPoint(v1)
	c2 := f.clipPoint(v2)
	if c1 == c2 {
		return level.Vertex{}, level.Vertex{}, false
	}
	return c1, c2, true
}

func (f *viewFrustum) clipPoint(point level.Vertex) level.Vertex {
	if point.X < 0 && point.Dot(f.leftClipNormal) < 0 {
		return f.plane.Origin
	}
	if point.X > 0 && point.Dot(f.rightClipNormal) < 0 {
		return f.plane.End
	}
	return point
}

func (f *viewFrustum) projectLine(v1, v2 level.Vertex) (x1, x2 int, ok bool) {
	px1 := int(ceil32(f.plane.project(v1)))
	px2 := int(ceil32(f.plane.project(v2)))
	if px1 >= px2 {
		return 0, 0, false
	}
	return px1, px2 - 1, true
}

func ceil32(v float32) float32 { return float32(math.Ceil(float64(v))) }
