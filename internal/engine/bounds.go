package engine

import "github.com/inamate/board/internal/document"

// Bounds is the world-space frame the overlay draws around a selection.
// Rotation is only non-zero for a single rotated object; it is applied
// around Rect's center and is not folded into Rect.
type Bounds struct {
	Rect     Rect    `json:"rect"`
	Rotation float64 `json:"rotation"`
}

// WorldAABB returns the axis-aligned world box around the object with its
// rotation applied.
func WorldAABB(o *document.SceneObject) Rect {
	return geometryAABB(o.Geometry())
}

// geometryRect returns the unrotated rectangle of a geometry snapshot.
func geometryRect(g document.Geometry) Rect {
	return Rect{X: g.Position.X, Y: g.Position.Y, Width: g.Size.Width, Height: g.Size.Height}
}

func geometryAABB(g document.Geometry) Rect {
	r := geometryRect(g)
	if g.Rotation == 0 {
		return r
	}
	c := r.Center()
	return RotateAbout(g.Rotation, c.X, c.Y).TransformRect(r)
}

// SelectionBounds returns the bounds of one or many objects. A single
// object keeps its own rotation; a group box is the union of each member's
// rotated world box and is never itself rotated. ok is false for an empty
// input.
func SelectionBounds(objs []*document.SceneObject) (Bounds, bool) {
	switch len(objs) {
	case 0:
		return Bounds{}, false
	case 1:
		return Bounds{Rect: ObjectRect(objs[0]), Rotation: objs[0].Rotation}, true
	}

	result := WorldAABB(objs[0])
	for _, o := range objs[1:] {
		result = result.Union(WorldAABB(o))
	}
	return Bounds{Rect: result}, true
}
