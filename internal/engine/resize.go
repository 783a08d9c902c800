package engine

import (
	"maps"
	"math"

	"github.com/inamate/board/internal/document"
)

// resizeGesture resizes one object or a group from a corner or an edge.
type resizeGesture struct {
	e     *Engine
	s     *Session
	sides Sides
	last  map[string]document.Geometry
}

// resizeResult is one computed tick.
type resizeResult struct {
	geom         map[string]document.Geometry
	box          Rect // group only
	withPosition bool // single only: the anchor corner moved
}

func (e *Engine) beginResize(targets []*document.SceneObject, h HandleKind, p Point) *resizeGesture {
	sides, _ := h.Sides()
	g := &resizeGesture{e: e, s: newSession(OpResize, targets, p), sides: sides}
	g.s.Handle = h
	g.last = maps.Clone(g.s.Start)

	msg := g.s.message(PhaseStart)
	msg.Handle = h
	b := g.s.StartBounds.Rect
	msg.Bounds = &b
	e.publish(msg)
	return g
}

func (g *resizeGesture) session() *Session { return g.s }

func (g *resizeGesture) update(p Point, mods Modifiers) {
	res, ok := g.compute(p, mods)
	if !ok || maps.Equal(res.geom, g.last) {
		return
	}
	g.apply(res)
	g.e.syncOverlay(g.s)
	g.e.publish(g.message(PhaseUpdate, res))
}

// end runs the same computation once more so the committed geometry is
// exactly the last preview.
func (g *resizeGesture) end(p Point, mods Modifiers) {
	e := g.e
	if res, ok := g.compute(p, mods); ok {
		g.apply(res)
		msg := g.message(PhaseEnd, res)
		msg.Changes = g.changes()
		e.closeOverlay(g.s)
		e.publish(msg)
		return
	}

	e.closeOverlay(g.s)
	msg := g.s.message(PhaseEnd)
	msg.Handle = g.s.Handle
	msg.Changes = g.changes()
	e.publish(msg)
}

func (g *resizeGesture) compute(p Point, mods Modifiers) (resizeResult, bool) {
	if g.s.group() {
		return g.computeGroup(p, mods), true
	}
	return g.computeSingle(p, mods)
}

func (g *resizeGesture) computeSingle(p Point, mods Modifiers) (resizeResult, bool) {
	e := g.e
	id := g.s.Targets[0]
	o, ok := e.scene.Object(id)
	if !ok {
		return resizeResult{}, false
	}
	start := g.s.Start[id]
	vp := e.viewport()

	// Work in the object's local axes so a rotated object resizes along
	// its own edges.
	dCSS := subPt(p, g.s.StartPointer)
	if start.Rotation != 0 {
		dCSS = rotatePoint(dCSS, Point{}, -start.Rotation)
	}
	d := vp.CSSDeltaToWorld(dCSS)

	r := geometryRect(start)
	minSize := e.opts.MinObjectSize
	n := resizeRect(r, g.sides, d, minSize)

	if g.s.Handle.IsCorner() && o.Type != document.ObjectTypeFrame &&
		(o.Type.AspectLocked() || mods.Has(ModShift)) {
		n = lockAspect(r, n, g.sides, minSize)
	}
	if o.Type.TextBearing() {
		n = e.fitText(o, r, n, g.sides)
	}

	geom := document.Geometry{
		Position: Point{X: n.X, Y: n.Y},
		Size:     document.Size{Width: n.Width, Height: n.Height},
		Rotation: start.Rotation,
	}
	withPosition := g.sides.Top || g.sides.Left
	if start.Rotation != 0 {
		geom.Position = anchorRotated(r, n, g.sides, start.Rotation)
		withPosition = true
	}
	if o.Type == document.ObjectTypeFrame {
		withPosition = false
	}
	return resizeResult{geom: map[string]document.Geometry{id: geom}, withPosition: withPosition}, true
}

// computeGroup resizes the group box and scales every member's offset and
// size linearly against it. Members are not re-measured for text.
func (g *resizeGesture) computeGroup(p Point, mods Modifiers) resizeResult {
	vp := g.e.viewport()
	minSize := g.e.opts.MinObjectSize

	b0 := g.s.StartBounds.Rect
	d := vp.CSSDeltaToWorld(subPt(p, g.s.StartPointer))
	b1 := resizeRect(b0, g.sides, d, minSize)
	if g.s.Handle.IsCorner() && mods.Has(ModShift) {
		b1 = lockAspect(b0, b1, g.sides, minSize)
	}

	sx, sy := 1.0, 1.0
	if b0.Width > 0 {
		sx = b1.Width / b0.Width
	}
	if b0.Height > 0 {
		sy = b1.Height / b0.Height
	}

	res := resizeResult{geom: make(map[string]document.Geometry, len(g.s.Targets)), box: b1}
	for _, id := range g.s.Targets {
		st := g.s.Start[id]
		res.geom[id] = document.Geometry{
			Position: Point{
				X: b1.X + (st.Position.X-b0.X)*sx,
				Y: b1.Y + (st.Position.Y-b0.Y)*sy,
			},
			Size:     document.Size{Width: st.Size.Width * sx, Height: st.Size.Height * sy},
			Rotation: st.Rotation,
		}
	}
	return res
}

func (g *resizeGesture) apply(res resizeResult) {
	e := g.e
	for _, id := range g.s.Targets {
		o, ok := e.scene.Object(id)
		if !ok {
			continue
		}
		geom := res.geom[id]
		if !g.s.group() && o.Type == document.ObjectTypeFrame {
			applyFrameResize(o, g.s.Start[id], geom.Size, g.s.Handle, e.opts.MinObjectSize)
		} else {
			o.SetGeometry(geom, e.opts.MinObjectSize)
		}
	}
	g.last = res.geom
}

func (g *resizeGesture) message(phase Phase, res resizeResult) Message {
	msg := g.s.message(phase)
	msg.Handle = g.s.Handle
	if g.s.group() {
		box := res.box
		msg.Bounds = &box
		if phase == PhaseUpdate {
			msg.Changes = g.changes()
		}
		return msg
	}

	geom := res.geom[g.s.Targets[0]]
	size := geom.Size
	msg.Size = &size
	if res.withPosition {
		pos := geom.Position
		msg.Position = &pos
	}
	return msg
}

func (g *resizeGesture) changes() []Change {
	out := make([]Change, 0, len(g.s.Targets))
	for _, id := range g.s.Targets {
		if o, ok := g.e.scene.Object(id); ok {
			out = append(out, Change{ID: id, Old: g.s.Start[id], New: o.Geometry()})
		}
	}
	return out
}

// resizeRect moves the sides of r selected by s by the world delta d.
// Sides not selected keep their start coordinate untouched.
func resizeRect(r Rect, s Sides, d Point, minSize float64) Rect {
	n := r
	if s.Left {
		n.X = r.X + d.X
		n.Width = r.Right() - n.X
	}
	if s.Right {
		n.Width = r.Width + d.X
	}
	if s.Top {
		n.Y = r.Y + d.Y
		n.Height = r.Bottom() - n.Y
	}
	if s.Bottom {
		n.Height = r.Height + d.Y
	}
	return clampRect(r, n, s, minSize)
}

// clampRect enforces the minimum size, keeping the opposite side fixed.
func clampRect(r, n Rect, s Sides, minSize float64) Rect {
	if !(n.Width >= minSize) {
		n.Width = minSize
		if s.Left {
			n.X = r.Right() - minSize
		}
	}
	if !(n.Height >= minSize) {
		n.Height = minSize
		if s.Top {
			n.Y = r.Bottom() - minSize
		}
	}
	return n
}

// lockAspect adjusts n to r's aspect ratio, following whichever axis the
// pointer changed more.
func lockAspect(r, n Rect, s Sides, minSize float64) Rect {
	if r.Width <= 0 || r.Height <= 0 {
		return n
	}
	ratio := r.Width / r.Height
	sx, sy := n.Width/r.Width, n.Height/r.Height
	if math.Abs(sx-1) >= math.Abs(sy-1) {
		n.Height = n.Width / ratio
	} else {
		n.Width = n.Height * ratio
	}
	if n.Width < minSize || n.Height < minSize {
		k := math.Max(minSize/n.Width, minSize/n.Height)
		n.Width *= k
		n.Height *= k
	}
	if s.Left {
		n.X = r.Right() - n.Width
	}
	if s.Top {
		n.Y = r.Bottom() - n.Height
	}
	return n
}

// fitText floors the width of a text-bearing object at the probe string's
// width, and for text objects re-measures the wrapped height whenever the
// width changed.
func (e *Engine) fitText(o *document.SceneObject, r, n Rect, s Sides) Rect {
	if e.text == nil {
		return n
	}
	fontSize := o.Properties.FontSize(e.opts.DefaultFontSize)

	if floor := e.text.Width(e.opts.TextProbe, fontSize); n.Width < floor {
		n.Width = floor
		if s.Left {
			n.X = r.Right() - floor
		}
	}

	if o.Type == document.ObjectTypeText && n.Width != r.Width {
		h := math.Max(e.text.WrappedHeight(o.Properties.Text(), fontSize, n.Width), e.opts.MinObjectSize)
		n.Height = h
		n.Y = r.Y
		if s.Top {
			n.Y = r.Bottom() - h
		}
	}
	return n
}

// anchorRotated returns the top-left position for the resized rect n so
// that the point opposite the dragged handle stays where it was on screen
// for an object rotated by rot degrees around its center.
func anchorRotated(r, n Rect, s Sides, rot float64) Point {
	anchor := func(q Rect) Point {
		a := q.Center()
		if s.Left {
			a.X = q.Right()
		} else if s.Right {
			a.X = q.X
		}
		if s.Top {
			a.Y = q.Bottom()
		} else if s.Bottom {
			a.Y = q.Y
		}
		return a
	}
	before := rotatePoint(anchor(r), r.Center(), rot)
	after := rotatePoint(anchor(n), n.Center(), rot)
	return Point{X: n.X + before.X - after.X, Y: n.Y + before.Y - after.Y}
}
