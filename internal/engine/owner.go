package engine

import "github.com/inamate/board/internal/document"

// applyFrameResize applies a resized frame's size using the frame's own
// anchor policy: anchored keeps the side opposite the handle in place,
// symmetric keeps the center, locked keeps the start aspect ratio and is
// otherwise anchored.
func applyFrameResize(o *document.SceneObject, start document.Geometry, size document.Size, h HandleKind, minSize float64) {
	sides, _ := h.Sides()
	r := geometryRect(start)
	n := Rect{X: r.X, Y: r.Y, Width: size.Width, Height: size.Height}

	policy := o.Properties.ResizePolicy()
	if policy == document.ResizeLocked {
		n = lockAspect(r, n, sides, minSize)
	}

	switch policy {
	case document.ResizeSymmetric:
		c := r.Center()
		n.X = c.X - n.Width/2
		n.Y = c.Y - n.Height/2
	default:
		if sides.Left {
			n.X = r.Right() - n.Width
		}
		if sides.Top {
			n.Y = r.Bottom() - n.Height
		}
	}

	o.SetGeometry(document.Geometry{
		Position: Point{X: n.X, Y: n.Y},
		Size:     document.Size{Width: n.Width, Height: n.Height},
		Rotation: start.Rotation,
	}, minSize)
}

// applyGroupRotation rotates a group rigidly: each member's center orbits
// the group center by delta degrees and its own rotation grows by delta.
func applyGroupRotation(scene Scene, s *Session, center Point, delta float64) {
	for _, id := range s.Targets {
		o, ok := scene.Object(id)
		if !ok {
			continue
		}
		st := s.Start[id]
		c := rotatePoint(geometryRect(st).Center(), center, delta)
		o.Position = Point{X: c.X - st.Size.Width/2, Y: c.Y - st.Size.Height/2}
		o.Rotation = normalizeDegrees(st.Rotation + delta)
	}
}
