package engine

import "github.com/inamate/board/internal/document"

// HitTest returns the topmost object containing the world point, testing
// in reverse render order against each object's rotated rectangle.
func HitTest(objs []*document.SceneObject, p Point) (*document.SceneObject, bool) {
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if o.Width <= 0 || o.Height <= 0 {
			continue
		}
		local := ObjectMatrix(o).Invert().Apply(p)
		if local.X >= 0 && local.X <= o.Width && local.Y >= 0 && local.Y <= o.Height {
			return o, true
		}
	}
	return nil, false
}
