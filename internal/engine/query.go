package engine

import "github.com/inamate/board/internal/document"

// Scene is the object collaborator the engine reads and mutates geometry
// through. Objects returns the render order, back to front.
type Scene interface {
	Object(id string) (*document.SceneObject, bool)
	Objects() []*document.SceneObject
}

// Selection is the read side of the selection collaborator.
type Selection interface {
	Selected() []string
}

// Selector is implemented by selection collaborators that let the engine
// select the object a pointer-down landed on.
type Selector interface {
	Select(ids []string)
}

// PositionOf returns the world position of an object.
func PositionOf(s Scene, id string) (Point, bool) {
	o, ok := s.Object(id)
	if !ok {
		return Point{}, false
	}
	return o.Position, true
}

// SizeOf returns the size of an object.
func SizeOf(s Scene, id string) (document.Size, bool) {
	o, ok := s.Object(id)
	if !ok {
		return document.Size{}, false
	}
	return o.Size(), true
}

// RotationOf returns the rotation of an object in degrees.
func RotationOf(s Scene, id string) (float64, bool) {
	o, ok := s.Object(id)
	if !ok {
		return 0, false
	}
	return o.Rotation, true
}

// lookupAll resolves ids in order, skipping any that no longer exist.
func lookupAll(s Scene, ids []string) []*document.SceneObject {
	out := make([]*document.SceneObject, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if o, ok := s.Object(id); ok {
			out = append(out, o)
		}
	}
	return out
}

// selectedObjects resolves the current selection.
func selectedObjects(s Scene, sel Selection) []*document.SceneObject {
	if sel == nil {
		return nil
	}
	return lookupAll(s, sel.Selected())
}

// RenderRegistry associates scene object ids with the handles the
// rendering scene uses for them, in both directions.
type RenderRegistry[H comparable] struct {
	byID     map[string]H
	byHandle map[H]string
}

func NewRenderRegistry[H comparable]() *RenderRegistry[H] {
	return &RenderRegistry[H]{
		byID:     make(map[string]H),
		byHandle: make(map[H]string),
	}
}

// Bind associates id with h, replacing any earlier binding of either.
func (r *RenderRegistry[H]) Bind(id string, h H) {
	r.Unbind(id)
	if old, ok := r.byHandle[h]; ok {
		delete(r.byID, old)
	}
	r.byID[id] = h
	r.byHandle[h] = id
}

// Unbind removes the binding for id.
func (r *RenderRegistry[H]) Unbind(id string) {
	if h, ok := r.byID[id]; ok {
		delete(r.byHandle, h)
		delete(r.byID, id)
	}
}

// Handle returns the render handle bound to id.
func (r *RenderRegistry[H]) Handle(id string) (H, bool) {
	h, ok := r.byID[id]
	return h, ok
}

// ObjectID returns the object id bound to h.
func (r *RenderRegistry[H]) ObjectID(h H) (string, bool) {
	id, ok := r.byHandle[h]
	return id, ok
}

func (r *RenderRegistry[H]) Len() int { return len(r.byID) }
