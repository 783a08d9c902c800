package engine

import (
	"math"

	"github.com/inamate/board/internal/document"
)

// rotateGesture turns one object, or a group around its shared center,
// following the pointer's angle about the screen-space center.
type rotateGesture struct {
	e *Engine
	s *Session

	center     Point   // world
	startAngle float64 // radians, pointer angle at pointer-down
	last       float64 // rotation (single) or delta (group) last applied
}

func (e *Engine) beginRotate(targets []*document.SceneObject, p Point) *rotateGesture {
	g := &rotateGesture{e: e, s: newSession(OpRotate, targets, p)}
	g.center = g.s.StartBounds.Rect.Center()
	g.startAngle = g.pointerAngle(p)

	angle := 0.0
	if !g.s.group() {
		angle = normalizeDegrees(g.s.Start[g.s.Targets[0]].Rotation)
		g.last = angle
	}

	msg := g.s.message(PhaseStart)
	msg.Angle = &angle
	b := g.s.StartBounds.Rect
	msg.Bounds = &b
	e.publish(msg)
	return g
}

func (g *rotateGesture) session() *Session { return g.s }

// pointerAngle is the angle of the CSS point p about the target's center,
// measured in screen space.
func (g *rotateGesture) pointerAngle(p Point) float64 {
	c := g.e.viewport().WorldToCSS(g.center)
	return math.Atan2(p.Y-c.Y, p.X-c.X)
}

// angleFor returns the value to apply for pointer p: the absolute rotation
// for a single object, or the delta for a group. Deltas are always taken
// against the session start so repeated reads never drift.
func (g *rotateGesture) angleFor(p Point, mods Modifiers) float64 {
	delta := toDegrees(g.pointerAngle(p) - g.startAngle)

	v := delta
	if !g.s.group() {
		v += g.s.Start[g.s.Targets[0]].Rotation
	}
	if mods.Has(ModShift) {
		step := g.e.opts.RotationSnap
		v = math.Round(v/step) * step
	}
	return normalizeDegrees(v)
}

func (g *rotateGesture) apply(v float64) {
	e := g.e
	if g.s.group() {
		applyGroupRotation(e.scene, g.s, g.center, v)
	} else if o, ok := e.scene.Object(g.s.Targets[0]); ok {
		o.Rotation = v
	}
	g.last = v
}

func (g *rotateGesture) update(p Point, mods Modifiers) {
	v := g.angleFor(p, mods)
	if v == g.last {
		return
	}
	g.apply(v)

	e := g.e
	e.syncOverlay(g.s)

	msg := g.s.message(PhaseUpdate)
	msg.Angle = &v
	if g.s.group() {
		msg.Changes = g.changes()
	}
	e.publish(msg)
}

func (g *rotateGesture) end(p Point, mods Modifiers) {
	v := g.angleFor(p, mods)
	if v != g.last {
		g.apply(v)
	}

	e := g.e
	e.closeOverlay(g.s)

	msg := g.s.message(PhaseEnd)
	msg.Angle = &v
	msg.Changes = g.changes()
	e.publish(msg)
}

func (g *rotateGesture) changes() []Change {
	out := make([]Change, 0, len(g.s.Targets))
	for _, id := range g.s.Targets {
		if o, ok := g.e.scene.Object(id); ok {
			out = append(out, Change{ID: id, Old: g.s.Start[id], New: o.Geometry()})
		}
	}
	return out
}
