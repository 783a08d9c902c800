package engine

import (
	"sort"

	"github.com/inamate/board/internal/document"
)

// dragGesture translates one object or a group. Frames carry their
// attached children along.
type dragGesture struct {
	e *Engine
	s *Session

	// Start positions of frame children moving with a dragged frame.
	childStart map[string]Point
	childOrder []string

	delta Point // world displacement currently applied
}

func (e *Engine) beginDrag(targets []*document.SceneObject, p Point) *dragGesture {
	g := &dragGesture{
		e:          e,
		s:          newSession(OpDrag, targets, p),
		childStart: make(map[string]Point),
	}
	g.captureChildren(e.scene.Objects())

	msg := g.s.message(PhaseStart)
	b := g.s.StartBounds.Rect
	msg.Bounds = &b
	e.publish(msg)
	return g
}

func (g *dragGesture) session() *Session { return g.s }

// captureChildren snapshots children of dragged frames that are not yet
// tracked. A child attached mid-gesture gets a start offset by the delta
// already applied, so it picks up only the movement from here on.
func (g *dragGesture) captureChildren(all []*document.SceneObject) {
	for _, id := range g.s.Targets {
		o, ok := g.e.scene.Object(id)
		if !ok || o.Type != document.ObjectTypeFrame {
			continue
		}
		for _, c := range FrameChildren(id, all) {
			if _, isTarget := g.s.Start[c.ID]; isTarget {
				continue
			}
			if _, tracked := g.childStart[c.ID]; tracked {
				continue
			}
			g.childStart[c.ID] = subPt(c.Position, g.delta)
			g.childOrder = append(g.childOrder, c.ID)
		}
	}
}

// moving reports whether id is moved by this gesture.
func (g *dragGesture) moving(id string) bool {
	if _, ok := g.s.Start[id]; ok {
		return true
	}
	_, ok := g.childStart[id]
	return ok
}

func (g *dragGesture) update(p Point, _ Modifiers) {
	e := g.e
	vp := e.viewport()
	d := vp.CSSDeltaToWorld(subPt(p, g.s.StartPointer))
	if d == g.delta {
		return
	}

	all := e.scene.Objects()
	g.captureChildren(all)
	g.delta = d

	// Guides and hover run against the proposed bounds before anything moves.
	var proposed Rect
	for i, id := range g.s.Targets {
		st := g.s.Start[id]
		st.Position = addPt(st.Position, d)
		if i == 0 {
			proposed = geometryAABB(st)
		} else {
			proposed = proposed.Union(geometryAABB(st))
		}
	}

	var others []Rect
	for _, o := range all {
		if !g.moving(o.ID) {
			others = append(others, WorldAABB(o))
		}
	}
	guides := DetectGuides(proposed, others, GuideOptions{
		Threshold: vp.CSSLengthToWorld(e.opts.GuideThreshold),
		Margin:    e.opts.GuideMargin,
		Max:       e.opts.MaxGuides,
	})

	hover := ""
	if !g.s.group() {
		if o, ok := e.scene.Object(g.s.Targets[0]); ok && o.Type != document.ObjectTypeFrame {
			if f, ok := ContainingFrame(proposed.Center(), all, o.ID); ok {
				hover = f.ID
			}
		}
	}

	for _, id := range g.s.Targets {
		if o, ok := e.scene.Object(id); ok {
			o.Position = addPt(g.s.Start[id].Position, d)
		}
	}
	for _, id := range g.childOrder {
		if o, ok := e.scene.Object(id); ok {
			o.Position = addPt(g.childStart[id], d)
		}
	}

	e.setGuides(guides)
	e.hoverFrame = hover
	e.syncOverlay(g.s)

	msg := g.s.message(PhaseUpdate)
	if g.s.group() {
		msg.Changes = g.changes()
	} else if o, ok := e.scene.Object(g.s.Targets[0]); ok {
		pos := o.Position
		msg.Position = &pos
	}
	msg.Guides = guides
	msg.HoverFrameID = hover
	e.publish(msg)
}

func (g *dragGesture) end(p Point, mods Modifiers) {
	g.update(p, mods)

	e := g.e
	e.setGuides(nil)
	e.hoverFrame = ""
	e.closeOverlay(g.s)

	all := e.scene.Objects()
	for _, id := range g.s.Targets {
		o, ok := e.scene.Object(id)
		if !ok || o.Type == document.ObjectTypeFrame {
			continue
		}
		if frameID, changed := UpdateContainment(o, all); changed {
			e.log.Debug("frame attachment changed", "object", o.ID, "frame", frameID)
			e.publish(Message{
				Kind:      MsgFrameChanged,
				SessionID: g.s.ID,
				Targets:   []string{o.ID},
				FrameID:   frameID,
			})
		}
	}

	msg := g.s.message(PhaseEnd)
	msg.Changes = append(g.changes(), g.childChanges()...)
	e.publish(msg)
}

func (g *dragGesture) changes() []Change {
	out := make([]Change, 0, len(g.s.Targets))
	for _, id := range g.s.Targets {
		o, ok := g.e.scene.Object(id)
		if !ok {
			continue
		}
		out = append(out, Change{ID: id, Old: g.s.Start[id], New: o.Geometry()})
	}
	return out
}

func (g *dragGesture) childChanges() []Change {
	ids := append([]string(nil), g.childOrder...)
	sort.Strings(ids)

	out := make([]Change, 0, len(ids))
	for _, id := range ids {
		o, ok := g.e.scene.Object(id)
		if !ok {
			continue
		}
		old := o.Geometry()
		old.Position = g.childStart[id]
		out = append(out, Change{ID: id, Old: old, New: o.Geometry()})
	}
	return out
}
