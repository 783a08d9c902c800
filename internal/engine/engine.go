package engine

import (
	"log/slog"
	"slices"

	"github.com/inamate/board/internal/document"
)

// Deps are the collaborators the engine works against. Scene is required;
// the rest fall back to in-package defaults.
type Deps struct {
	Scene     Scene
	Selection Selection
	Camera    CameraSource // a new Surface subscribed to Bus when nil
	Bus       *Bus
	Text      TextMeasurer // text floor and auto-fit are skipped when nil
	Logger    *slog.Logger
}

// Engine routes pointer input to drag, resize and rotate sessions and keeps
// the overlay in step with the scene and the camera. At most one session is
// active at a time. Engine is not safe for concurrent use.
type Engine struct {
	opts      Options
	scene     Scene
	selection Selection
	camera    CameraSource
	bus       *Bus
	text      TextMeasurer
	log       *slog.Logger

	overlay *Overlay
	active  gesture

	// Transient drag feedback.
	guides     []GuideLine
	hoverFrame string

	unsubscribe []func()
}

// HitResult describes what a pointer-down landed on.
type HitResult struct {
	Handle   HandleKind
	ObjectID string // scene hit, when no overlay element was under the pointer
	Started  bool   // a session began
}

// New creates an engine. It subscribes to structural notifications on the
// bus; call Close to detach it.
func New(deps Deps, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		opts:      opts,
		scene:     deps.Scene,
		selection: deps.Selection,
		camera:    deps.Camera,
		bus:       deps.Bus,
		text:      deps.Text,
		log:       deps.Logger,
		overlay:   NewOverlay(opts),
	}
	if e.bus == nil {
		e.bus = NewBus()
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.camera == nil {
		s := NewSurface(opts.MinZoom, opts.MaxZoom)
		e.unsubscribe = append(e.unsubscribe, s.Subscribe(e.bus))
		e.camera = s
	}
	e.unsubscribe = append(e.unsubscribe, e.bus.Subscribe(e.handle))
	e.Refresh()
	return e
}

// Close detaches the engine from the bus.
func (e *Engine) Close() {
	for _, fn := range e.unsubscribe {
		fn()
	}
	e.unsubscribe = nil
}

// Bus returns the bus the engine publishes on.
func (e *Engine) Bus() *Bus { return e.bus }

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Viewport returns the current camera snapshot with the configured
// resolution.
func (e *Engine) Viewport() Viewport { return e.viewport() }

func (e *Engine) viewport() Viewport {
	return Viewport{Camera: e.camera.Camera(), Resolution: e.opts.Resolution}
}

func (e *Engine) publish(msg Message) {
	e.bus.Publish(msg)
}

// setGuides replaces the current guides, announcing only real changes.
func (e *Engine) setGuides(g []GuideLine) {
	if slices.Equal(e.guides, g) {
		return
	}
	e.guides = g
	e.publish(Message{Kind: MsgGuidesChanged, Guides: slices.Clone(g)})
}

// --- Pointer input (CSS pixels) ---

// PointerDown starts a session from the overlay element or scene object
// under p. Overlay elements win over scene objects: the rotation handle,
// then corners, then edge zones, then the box body. A press on an
// unselected object selects it when the selection collaborator allows.
func (e *Engine) PointerDown(p Point, mods Modifiers) HitResult {
	if e.active != nil {
		e.log.Debug("pointer down during active session ignored", "session", e.active.session().ID)
		return HitResult{}
	}

	vp := e.viewport()
	selected := selectedObjects(e.scene, e.selection)
	e.overlay.Update(selected, vp)

	h := e.overlay.HitTest(p)
	switch {
	case h == HandleRotate:
		if _, rotate := handlePolicy(selected); !rotate {
			return HitResult{Handle: h}
		}
		e.start(e.beginRotate(selected, p))
		return HitResult{Handle: h, Started: true}

	case h.IsResize():
		e.start(e.beginResize(selected, h, p))
		return HitResult{Handle: h, Started: true}

	case h == HandleBody && len(selected) > 0:
		e.start(e.beginDrag(selected, p))
		return HitResult{Handle: h, Started: true}
	}

	o, ok := HitTest(e.scene.Objects(), vp.CSSToWorld(p))
	if !ok {
		return HitResult{}
	}

	targets := []*document.SceneObject{o}
	if slices.ContainsFunc(selected, func(s *document.SceneObject) bool { return s.ID == o.ID }) {
		targets = selected
	} else if sel, ok := e.selection.(Selector); ok {
		sel.Select([]string{o.ID})
	}
	e.start(e.beginDrag(targets, p))
	return HitResult{ObjectID: o.ID, Started: true}
}

// BeginDrag starts a drag of the given objects at CSS point p.
func (e *Engine) BeginDrag(ids []string, p Point) bool {
	targets := lookupAll(e.scene, ids)
	if e.active != nil || len(targets) == 0 {
		return false
	}
	e.start(e.beginDrag(targets, p))
	return true
}

// BeginResize starts a resize of the given objects from handle h.
func (e *Engine) BeginResize(ids []string, h HandleKind, p Point) bool {
	targets := lookupAll(e.scene, ids)
	if e.active != nil || len(targets) == 0 || !h.IsResize() {
		return false
	}
	if resize, _ := handlePolicy(targets); !resize {
		return false
	}
	e.start(e.beginResize(targets, h, p))
	return true
}

// BeginRotate starts a rotation of the given objects. It refuses when any
// of them cannot rotate.
func (e *Engine) BeginRotate(ids []string, p Point) bool {
	targets := lookupAll(e.scene, ids)
	if e.active != nil || len(targets) == 0 {
		return false
	}
	if _, rotate := handlePolicy(targets); !rotate {
		return false
	}
	e.start(e.beginRotate(targets, p))
	return true
}

func (e *Engine) start(g gesture) {
	e.overlay.BeginSession()
	e.active = g
	s := g.session()
	e.log.Debug("session started", "session", s.ID, "op", s.Op, "mode", s.Mode, "targets", len(s.Targets))
}

// PointerMove advances the active session. Without one it does nothing.
func (e *Engine) PointerMove(p Point, mods Modifiers) {
	if e.active == nil {
		return
	}
	e.active.update(p, mods)
}

// PointerUp ends the active session. An up without a session is a no-op.
func (e *Engine) PointerUp(p Point, mods Modifiers) {
	g := e.active
	if g == nil {
		e.log.Debug("pointer up without session")
		return
	}
	e.active = nil
	g.end(p, mods)
	e.log.Debug("session ended", "session", g.session().ID)
}

// Active returns a copy of the active session.
func (e *Engine) Active() (Session, bool) {
	if e.active == nil {
		return Session{}, false
	}
	return *e.active.session(), true
}

// --- Overlay ---

// overlayObjects is what the overlay frames for s: the whole selection when
// it includes every target, otherwise just the targets.
func (e *Engine) overlayObjects(s *Session) []*document.SceneObject {
	if e.selection != nil {
		ids := e.selection.Selected()
		all := true
		for _, id := range s.Targets {
			if !slices.Contains(ids, id) {
				all = false
				break
			}
		}
		if all {
			return lookupAll(e.scene, ids)
		}
	}
	return lookupAll(e.scene, s.Targets)
}

func (e *Engine) syncOverlay(s *Session) {
	e.overlay.Update(e.overlayObjects(s), e.viewport())
}

func (e *Engine) closeOverlay(s *Session) {
	e.overlay.EndSession(e.overlayObjects(s), e.viewport())
}

// Refresh recomputes the overlay for the current selection and camera.
func (e *Engine) Refresh() {
	if e.active != nil {
		e.syncOverlay(e.active.session())
		return
	}
	e.overlay.Update(selectedObjects(e.scene, e.selection), e.viewport())
}

// Overlay returns the current overlay state.
func (e *Engine) Overlay() OverlayState { return e.overlay.State() }

// Guides returns the alignment guides of the current drag tick.
func (e *Engine) Guides() []GuideLine { return slices.Clone(e.guides) }

// HoverFrame returns the frame under the dragged object, or "".
func (e *Engine) HoverFrame() string { return e.hoverFrame }

// --- Notifications ---

func (e *Engine) handle(msg Message) {
	switch msg.Kind {
	case MsgObjectCreated, MsgObjectUpdated, MsgObjectsReordered, MsgSelectionChanged,
		MsgZoomChanged, MsgPan:
		e.Refresh()

	case MsgObjectDeleted:
		if g := e.active; g != nil && len(lookupAll(e.scene, g.session().Targets)) == 0 {
			e.log.Debug("session targets deleted", "session", g.session().ID)
		}
		e.Refresh()

	case MsgDragStart, MsgDragUpdate, MsgDragEnd,
		MsgGroupDragStart, MsgGroupDragUpdate, MsgGroupDragEnd,
		MsgResizeStart, MsgResizeUpdate, MsgResizeEnd,
		MsgGroupResizeStart, MsgGroupResizeUpdate, MsgGroupResizeEnd,
		MsgRotateStart, MsgRotateUpdate, MsgRotateEnd,
		MsgGroupRotateStart, MsgGroupRotateUpdate, MsgGroupRotateEnd,
		MsgGuidesChanged, MsgFrameChanged:
		// Published by the engine itself.

	case MsgInvalid, messageKindCount:
		e.log.Debug("invalid message kind", "kind", msg.Kind)
	}
}
