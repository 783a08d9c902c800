package engine

import (
	"slices"

	"github.com/inamate/board/internal/document"
)

// ContainingFrame returns the topmost frame whose world rectangle contains
// p (inclusive bounds). Frames listed in exclude are skipped. On equal
// z-index the frame later in render order wins.
func ContainingFrame(p Point, objs []*document.SceneObject, exclude ...string) (*document.SceneObject, bool) {
	var best *document.SceneObject
	for _, o := range objs {
		if o.Type != document.ObjectTypeFrame || slices.Contains(exclude, o.ID) {
			continue
		}
		if !ObjectRect(o).Contains(p.X, p.Y) {
			continue
		}
		if best == nil || o.ZIndex >= best.ZIndex {
			best = o
		}
	}
	return best, best != nil
}

// FrameChildren returns the objects whose frame reference is frameID, in
// render order.
func FrameChildren(frameID string, objs []*document.SceneObject) []*document.SceneObject {
	var out []*document.SceneObject
	for _, o := range objs {
		if id, ok := o.Properties.FrameID(); ok && id == frameID {
			out = append(out, o)
		}
	}
	return out
}

// UpdateContainment re-tests o's world center against every frame and
// sets or clears its frame reference. Frames are never attached to other
// frames. It returns the resulting frame id and whether it changed.
func UpdateContainment(o *document.SceneObject, objs []*document.SceneObject) (string, bool) {
	if o.Type == document.ObjectTypeFrame {
		return "", false
	}
	frameID := ""
	if f, ok := ContainingFrame(WorldAABB(o).Center(), objs, o.ID); ok {
		frameID = f.ID
	}
	return frameID, o.SetFrameID(frameID)
}

// NormalizeZOrder moves every frame to the back of the render list and
// renumbers z-indices: frames get frameBase, frameBase+1, ... and all
// other objects get 0, 1, 2, ... Relative order inside each partition is
// kept. frameBase must be far enough below zero that frames never reach
// the content range.
func NormalizeZOrder(objs []*document.SceneObject, frameBase int) []*document.SceneObject {
	out := make([]*document.SceneObject, 0, len(objs))
	for _, o := range objs {
		if o.Type == document.ObjectTypeFrame {
			o.ZIndex = frameBase + len(out)
			out = append(out, o)
		}
	}
	frames := len(out)
	for _, o := range objs {
		if o.Type != document.ObjectTypeFrame {
			o.ZIndex = len(out) - frames
			out = append(out, o)
		}
	}
	return out
}
