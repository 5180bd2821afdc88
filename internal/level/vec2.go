package level

import "math"

// Add, Sub, Scale and Dot are the handful of 2D vector operations the
// camera and raster packages need on map-space points; kept here
// rather than duplicated in every consumer package.

func (v Vertex) Add(o Vertex) Vertex { return Vertex{v.X + o.X, v.Y + o.Y} }
func (v Vertex) Sub(o Vertex) Vertex { return Vertex{v.X - o.X, v.Y - o.Y} }
func (v Vertex) Scale(s float32) Vertex { return Vertex{v.X * s, v.Y * s} }
func (v Vertex) Dot(o Vertex) float32 { return v.X*o.X + v.Y*o.Y }

// Length returns v's Euclidean magnitude, used by the rasterizer to
// turn a world-space offset into a texture-space distance.
func (v Vertex) Length() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Rotate rotates v counterclockwise by rad radians.
func Rotate(v Vertex, rad float32) Vertex {
	c, s := cos32(rad), sin32(rad)
	return Vertex{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}
