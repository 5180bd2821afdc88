// Package raster rasterizes visible wall-segment fragments into a
// framebuffer column by column, per spec §4.D.
package raster

// ScreenWidth matches camera.ScreenWidth; duplicated as an untyped
// constant here to size VerticalClip's per-column arrays.
const ScreenWidth = 320

// ScreenHeight is the fixed 200-row vanilla output height; half of it
// (100) is the vertical screen center every column's projection is
// built around.
const ScreenHeight = 200

// VerticalClip tracks, per screen column, how far up (ceiling) and
// down (floor) a portal's upper/lower walls and marked ceiling/floor
// planes have already drawn (solid walls leave it unchanged), so that
// later, farther-away fragments in the same column never draw over
// nearer ones and upper/lower portal slivers know where to stop.
type VerticalClip struct {
	Floor   [ScreenWidth]int
	Ceiling [ScreenWidth]int
}

// NewVerticalClip returns a clip state with the full column range open:
// ceiling one row above the top of the screen, floor one row below the
// bottom.
func NewVerticalClip() *VerticalClip {
	v := &VerticalClip{}
	v.Reset()
	return v
}

// Reset restores the full-column-open state for a new frame.
func (v *VerticalClip) Reset() {
	for i := range v.Floor {
		v.Floor[i] = ScreenHeight
		v.Ceiling[i] = -1
	}
}
