package engine

import (
	"math"

	"github.com/inamate/board/internal/document"
)

// HandleKind names a place on the overlay a pointer can grab.
type HandleKind string

const (
	HandleNone   HandleKind = ""
	HandleNW     HandleKind = "nw"
	HandleNE     HandleKind = "ne"
	HandleSE     HandleKind = "se"
	HandleSW     HandleKind = "sw"
	HandleN      HandleKind = "n"
	HandleE      HandleKind = "e"
	HandleS      HandleKind = "s"
	HandleW      HandleKind = "w"
	HandleRotate HandleKind = "rotate"
	HandleBody   HandleKind = "body" // inside the box, away from any handle
)

// Sides lists the rectangle edges a resize handle moves.
type Sides struct {
	Top, Right, Bottom, Left bool
}

var handleSides = map[HandleKind]Sides{
	HandleNW: {Top: true, Left: true},
	HandleNE: {Top: true, Right: true},
	HandleSE: {Bottom: true, Right: true},
	HandleSW: {Bottom: true, Left: true},
	HandleN:  {Top: true},
	HandleE:  {Right: true},
	HandleS:  {Bottom: true},
	HandleW:  {Left: true},
}

// Sides returns the edges h moves. ok is false for non-resize handles.
func (h HandleKind) Sides() (Sides, bool) {
	s, ok := handleSides[h]
	return s, ok
}

// IsCorner reports whether h is one of the four corner handles.
func (h HandleKind) IsCorner() bool {
	switch h {
	case HandleNW, HandleNE, HandleSE, HandleSW:
		return true
	}
	return false
}

// IsResize reports whether h is a corner or an edge.
func (h HandleKind) IsResize() bool {
	_, ok := handleSides[h]
	return ok
}

// HandleBox is one interactive overlay element. Rect is in CSS pixels,
// relative to the overlay box's unrotated top-left corner.
type HandleBox struct {
	Kind HandleKind `json:"kind"`
	Rect Rect       `json:"rect"`
}

// OverlayState is everything a host needs to draw the selection overlay.
// Box is in CSS pixels; Rotation (degrees) is applied around its center
// and carries the handles with it.
type OverlayState struct {
	Visible       bool        `json:"visible"`
	Box           Rect        `json:"box"`
	Rotation      float64     `json:"rotation"`
	Corners       []HandleBox `json:"corners,omitempty"`
	Edges         []HandleBox `json:"edges,omitempty"`
	RotateHandle  *HandleBox  `json:"rotateHandle,omitempty"`
	HandlesHidden bool        `json:"handlesHidden"`
	// Generation increases on every full rebuild of the handle set.
	Generation int `json:"generation"`
}

// Overlay computes the screen-space selection overlay: the bounding box,
// four corner handles, four edge zones and a rotation handle.
type Overlay struct {
	opts      Options
	state     OverlayState
	inSession bool
}

func NewOverlay(opts Options) *Overlay {
	return &Overlay{opts: opts.withDefaults()}
}

// State returns the current overlay.
func (ov *Overlay) State() OverlayState {
	return ov.state
}

// handlePolicy decides which handle groups a selection exposes. Files
// have a fixed size; frames and files never rotate. A handle group is shown
// only when every member supports it, so a mixed selection never gets a
// handle that would move just part of it.
func handlePolicy(objs []*document.SceneObject) (resize, rotate bool) {
	if len(objs) == 0 {
		return false, false
	}
	resize, rotate = true, true
	for _, o := range objs {
		if !o.Type.Resizable() {
			resize = false
		}
		if !o.Type.Rotatable() {
			rotate = false
		}
	}
	return resize, rotate
}

// Hide removes the overlay. Used when the selection or its bounds vanish.
func (ov *Overlay) Hide() {
	ov.state = OverlayState{Generation: ov.state.Generation}
}

// Update repositions the overlay for the given selection. During a session
// only the box moves; handles stay hidden.
func (ov *Overlay) Update(objs []*document.SceneObject, vp Viewport) {
	b, ok := SelectionBounds(objs)
	if !ok {
		ov.Hide()
		return
	}

	ov.state.Visible = true
	ov.state.Box = vp.WorldRectToCSS(b.Rect)
	ov.state.Rotation = b.Rotation

	if ov.inSession {
		ov.state.HandlesHidden = true
		return
	}
	ov.build(objs)
}

// BeginSession hides every interactive handle but keeps the box visible.
func (ov *Overlay) BeginSession() {
	ov.inSession = true
	ov.state.HandlesHidden = true
}

// EndSession restores handle visibility and rebuilds the handle set from
// scratch for the final geometry.
func (ov *Overlay) EndSession(objs []*document.SceneObject, vp Viewport) {
	ov.inSession = false
	ov.state.HandlesHidden = false
	ov.Update(objs, vp)
}

func (ov *Overlay) build(objs []*document.SceneObject) {
	ov.state.Generation++
	ov.state.HandlesHidden = false
	ov.state.Corners = nil
	ov.state.Edges = nil
	ov.state.RotateHandle = nil

	resize, rotate := handlePolicy(objs)
	w, h := ov.state.Box.Width, ov.state.Box.Height
	hs := ov.opts.HandleSize
	in := ov.opts.HandleInset

	square := func(kind HandleKind, cx, cy float64) HandleBox {
		return HandleBox{Kind: kind, Rect: Rect{X: cx - hs/2, Y: cy - hs/2, Width: hs, Height: hs}}
	}

	if resize {
		ov.state.Corners = []HandleBox{
			square(HandleNW, in, in),
			square(HandleNE, w-in, in),
			square(HandleSE, w-in, h-in),
			square(HandleSW, in, h-in),
		}

		// Edge zones stop short of the corner handles so the two never overlap.
		z := ov.opts.EdgeZone
		if span := w - 2*hs; span > 0 {
			ov.state.Edges = append(ov.state.Edges,
				HandleBox{Kind: HandleN, Rect: Rect{X: hs, Y: -z / 2, Width: span, Height: z}},
				HandleBox{Kind: HandleS, Rect: Rect{X: hs, Y: h - z/2, Width: span, Height: z}},
			)
		}
		if span := h - 2*hs; span > 0 {
			ov.state.Edges = append(ov.state.Edges,
				HandleBox{Kind: HandleE, Rect: Rect{X: w - z/2, Y: hs, Width: z, Height: span}},
				HandleBox{Kind: HandleW, Rect: Rect{X: -z / 2, Y: hs, Width: z, Height: span}},
			)
		}
	}

	if rotate {
		d := ov.opts.RotateHandleOffset / math.Sqrt2
		r := square(HandleRotate, w+d, -d)
		ov.state.RotateHandle = &r
	}
}

// toLocal maps a CSS point into the overlay box's unrotated local frame.
func (ov *Overlay) toLocal(p Point) Point {
	b := ov.state.Box
	local := Point{X: p.X - b.X, Y: p.Y - b.Y}
	if ov.state.Rotation == 0 {
		return local
	}
	return rotatePoint(local, Point{X: b.Width / 2, Y: b.Height / 2}, -ov.state.Rotation)
}

// HitTest returns the overlay element under a CSS point: the rotation
// handle, a corner, an edge zone, or the body of the box, in that order.
func (ov *Overlay) HitTest(p Point) HandleKind {
	if !ov.state.Visible {
		return HandleNone
	}
	local := ov.toLocal(p)

	if !ov.state.HandlesHidden {
		if rh := ov.state.RotateHandle; rh != nil && rh.Rect.Contains(local.X, local.Y) {
			return HandleRotate
		}
		for _, c := range ov.state.Corners {
			if c.Rect.Contains(local.X, local.Y) {
				return c.Kind
			}
		}
		for _, e := range ov.state.Edges {
			if e.Rect.Contains(local.X, local.Y) {
				return e.Kind
			}
		}
	}

	box := Rect{Width: ov.state.Box.Width, Height: ov.state.Box.Height}
	if box.Contains(local.X, local.Y) {
		return HandleBody
	}
	return HandleNone
}
