package engine

import (
	"fmt"

	"github.com/inamate/board/internal/document"
)

// MessageKind identifies a bus message. The set is closed: every kind has a
// wire name and consumers switch over it exhaustively.
type MessageKind uint8

const (
	MsgInvalid MessageKind = iota

	MsgDragStart
	MsgDragUpdate
	MsgDragEnd
	MsgGroupDragStart
	MsgGroupDragUpdate
	MsgGroupDragEnd

	MsgResizeStart
	MsgResizeUpdate
	MsgResizeEnd
	MsgGroupResizeStart
	MsgGroupResizeUpdate
	MsgGroupResizeEnd

	MsgRotateStart
	MsgRotateUpdate
	MsgRotateEnd
	MsgGroupRotateStart
	MsgGroupRotateUpdate
	MsgGroupRotateEnd

	// Transient feedback and structural consequences emitted by the engine.
	MsgGuidesChanged
	MsgFrameChanged

	// Notifications consumed from collaborators.
	MsgObjectCreated
	MsgObjectDeleted
	MsgObjectUpdated
	MsgObjectsReordered
	MsgSelectionChanged
	MsgZoomChanged
	MsgPan

	messageKindCount
)

var messageKindNames = [messageKindCount]string{
	MsgInvalid:           "invalid",
	MsgDragStart:         "drag:start",
	MsgDragUpdate:        "drag:update",
	MsgDragEnd:           "drag:end",
	MsgGroupDragStart:    "group:drag:start",
	MsgGroupDragUpdate:   "group:drag:update",
	MsgGroupDragEnd:      "group:drag:end",
	MsgResizeStart:       "resize:start",
	MsgResizeUpdate:      "resize:update",
	MsgResizeEnd:         "resize:end",
	MsgGroupResizeStart:  "group:resize:start",
	MsgGroupResizeUpdate: "group:resize:update",
	MsgGroupResizeEnd:    "group:resize:end",
	MsgRotateStart:       "rotate:start",
	MsgRotateUpdate:      "rotate:update",
	MsgRotateEnd:         "rotate:end",
	MsgGroupRotateStart:  "group:rotate:start",
	MsgGroupRotateUpdate: "group:rotate:update",
	MsgGroupRotateEnd:    "group:rotate:end",
	MsgGuidesChanged:     "guides:changed",
	MsgFrameChanged:      "frame:changed",
	MsgObjectCreated:     "object:created",
	MsgObjectDeleted:     "object:deleted",
	MsgObjectUpdated:     "object:updated",
	MsgObjectsReordered:  "objects:reordered",
	MsgSelectionChanged:  "selection:changed",
	MsgZoomChanged:       "zoom:changed",
	MsgPan:               "pan",
}

func (k MessageKind) String() string {
	if k < messageKindCount {
		return messageKindNames[k]
	}
	return fmt.Sprintf("MessageKind(%d)", uint8(k))
}

// Valid reports whether k is a known, non-zero kind.
func (k MessageKind) Valid() bool {
	return k > MsgInvalid && k < messageKindCount
}

func (k MessageKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid message kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *MessageKind) UnmarshalText(b []byte) error {
	kind, ok := ParseMessageKind(string(b))
	if !ok {
		return fmt.Errorf("unknown message kind %q", b)
	}
	*k = kind
	return nil
}

// ParseMessageKind looks a kind up by its wire name.
func ParseMessageKind(name string) (MessageKind, bool) {
	for k := MsgInvalid + 1; k < messageKindCount; k++ {
		if messageKindNames[k] == name {
			return k, true
		}
	}
	return MsgInvalid, false
}

// Phase is the lifecycle step of a gesture message.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseStart
	PhaseUpdate
	PhaseEnd
)

// lifecycleKinds is indexed by [operation][group][phase-1].
var lifecycleKinds = [3][2][3]MessageKind{
	OpDrag: {
		{MsgDragStart, MsgDragUpdate, MsgDragEnd},
		{MsgGroupDragStart, MsgGroupDragUpdate, MsgGroupDragEnd},
	},
	OpResize: {
		{MsgResizeStart, MsgResizeUpdate, MsgResizeEnd},
		{MsgGroupResizeStart, MsgGroupResizeUpdate, MsgGroupResizeEnd},
	},
	OpRotate: {
		{MsgRotateStart, MsgRotateUpdate, MsgRotateEnd},
		{MsgGroupRotateStart, MsgGroupRotateUpdate, MsgGroupRotateEnd},
	},
}

// LifecycleKind returns the message kind for a gesture phase.
func LifecycleKind(op Operation, group bool, phase Phase) MessageKind {
	if op > OpRotate || phase == PhaseNone || phase > PhaseEnd {
		return MsgInvalid
	}
	g := 0
	if group {
		g = 1
	}
	return lifecycleKinds[op][g][phase-1]
}

// Lifecycle decomposes a gesture kind. ok is false for non-gesture kinds.
func (k MessageKind) Lifecycle() (op Operation, group bool, phase Phase, ok bool) {
	if k < MsgDragStart || k > MsgGroupRotateEnd {
		return 0, false, PhaseNone, false
	}
	i := int(k - MsgDragStart)
	return Operation(i / 6), (i/3)%2 == 1, Phase(i%3 + 1), true
}

// Change records one object's geometry before and after a gesture.
type Change struct {
	ID  string            `json:"id"`
	Old document.Geometry `json:"old"`
	New document.Geometry `json:"new"`
}

// Message is a fire-and-forget bus message. Only the fields relevant to
// Kind are set.
type Message struct {
	Kind      MessageKind `json:"kind"`
	SessionID string      `json:"sessionId,omitempty"`
	Targets   []string    `json:"targets,omitempty"`

	Position *Point         `json:"position,omitempty"`
	Size     *document.Size `json:"size,omitempty"`
	Angle    *float64       `json:"angle,omitempty"`
	Bounds   *Rect          `json:"bounds,omitempty"`
	Handle   HandleKind     `json:"handle,omitempty"`

	// Per-object results for group updates and for every end message.
	Changes []Change `json:"changes,omitempty"`

	Guides       []GuideLine `json:"guides,omitempty"`
	HoverFrameID string      `json:"hoverFrameId,omitempty"`

	// MsgFrameChanged: the new containing frame ("" when detached).
	FrameID string `json:"frameId,omitempty"`

	Selection   []string `json:"selection,omitempty"`
	ZoomPercent float64  `json:"zoomPercent,omitempty"`
	Anchor      *Point   `json:"anchor,omitempty"`
	Delta       *Point   `json:"delta,omitempty"`
}

// Handler receives bus messages.
type Handler func(Message)

type subscription struct {
	id    int
	kinds map[MessageKind]bool // nil means every kind
	fn    Handler
}

// Bus dispatches messages synchronously, in publish order, to subscribers
// in subscription order. A message published from inside a handler is
// queued and delivered after the current one has reached every subscriber.
// Bus is not safe for concurrent use.
type Bus struct {
	subs        []subscription
	nextID      int
	queue       []Message
	dispatching bool
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for the given kinds, or for every kind when none
// are given. The returned func removes the subscription.
func (b *Bus) Subscribe(fn Handler, kinds ...MessageKind) func() {
	b.nextID++
	s := subscription{id: b.nextID, fn: fn}
	if len(kinds) > 0 {
		s.kinds = make(map[MessageKind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	b.subs = append(b.subs, s)

	id := s.id
	return func() {
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers msg. Messages with an invalid kind are dropped.
func (b *Bus) Publish(msg Message) {
	if !msg.Kind.Valid() {
		return
	}
	b.queue = append(b.queue, msg)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]

		subs := b.subs
		for _, s := range subs {
			if s.kinds == nil || s.kinds[next.Kind] {
				s.fn(next)
			}
		}
	}
}
