package engine

import (
	"math"

	"github.com/inamate/board/internal/document"
)

// Point is a 2D coordinate. Which space it lives in (world, screen or CSS)
// is given by context.
type Point = document.Point

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ObjectRect returns the unrotated rectangle of an object in world space.
func ObjectRect(o *document.SceneObject) Rect {
	return Rect{X: o.Position.X, Y: o.Position.Y, Width: o.Width, Height: o.Height}
}

// Contains checks if a point is inside the rect. Bounds are inclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Left returns the x of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.Right(), other.Right())
	maxY := max(r.Bottom(), other.Bottom())

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Offset returns the rect moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}

// boundsOf returns the axis-aligned box around pts.
func boundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func addPt(a, b Point) Point           { return Point{X: a.X + b.X, Y: a.Y + b.Y} }
func subPt(a, b Point) Point           { return Point{X: a.X - b.X, Y: a.Y - b.Y} }
func scalePt(p Point, s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// normalizeDegrees maps an angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg == 360 {
		deg = 0
	}
	return deg
}

// rotatePoint rotates p about c by deg degrees (clockwise on a y-down screen).
func rotatePoint(p, c Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	x, y := RotateAbout(deg, c.X, c.Y).TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}
