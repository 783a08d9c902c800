package engine

import (
	"github.com/google/uuid"

	"github.com/inamate/board/internal/document"
)

// Operation is the kind of gesture a session performs.
type Operation uint8

const (
	OpDrag Operation = iota
	OpResize
	OpRotate
)

func (op Operation) String() string {
	switch op {
	case OpDrag:
		return "drag"
	case OpResize:
		return "resize"
	case OpRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Mode tells whether a session acts on one object or on a selection group.
type Mode uint8

const (
	ModeSingle Mode = iota
	ModeGroup
)

func (m Mode) String() string {
	if m == ModeGroup {
		return "group"
	}
	return "single"
}

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// Session is the state shared by every gesture: who is being transformed,
// what they looked like when the pointer went down, and where it went down.
// It lives for exactly one pointer gesture and is never persisted.
type Session struct {
	ID           string
	Op           Operation
	Mode         Mode
	Targets      []string
	Start        map[string]document.Geometry
	StartPointer Point // CSS pixels
	StartBounds  Bounds
	Handle       HandleKind // resize only
}

func newSession(op Operation, targets []*document.SceneObject, pointer Point) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		Op:           op,
		Mode:         ModeSingle,
		Targets:      make([]string, 0, len(targets)),
		Start:        make(map[string]document.Geometry, len(targets)),
		StartPointer: pointer,
	}
	if len(targets) > 1 {
		s.Mode = ModeGroup
	}
	for _, o := range targets {
		s.Targets = append(s.Targets, o.ID)
		s.Start[o.ID] = o.Geometry()
	}
	s.StartBounds, _ = SelectionBounds(targets)
	return s
}

func (s *Session) group() bool { return s.Mode == ModeGroup }

func (s *Session) kind(phase Phase) MessageKind {
	return LifecycleKind(s.Op, s.group(), phase)
}

// message returns a lifecycle message header for this session.
func (s *Session) message(phase Phase) Message {
	return Message{
		Kind:      s.kind(phase),
		SessionID: s.ID,
		Targets:   append([]string(nil), s.Targets...),
	}
}

// gesture is one active controller. Exactly one exists while a pointer
// gesture is in progress.
type gesture interface {
	session() *Session
	update(p Point, mods Modifiers)
	end(p Point, mods Modifiers)
}
