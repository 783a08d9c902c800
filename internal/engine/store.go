package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/typeid"
)

var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrDuplicateObject = errors.New("duplicate object id")
	ErrInvalidFrameRef = errors.New("frame reference does not name a frame")
	ErrInvalidObject   = errors.New("invalid object")
)

// Store holds the objects of one board in render order. It is the scene
// collaborator the engine reads and mutates geometry through. The lock
// guards the object list; geometry fields are written only by the engine
// session that owns them. Notifications are published after the lock is
// released so handlers may read the store.
type Store struct {
	mu      sync.RWMutex
	board   document.Board // metadata only; Objects is nil
	objects []*document.SceneObject
	byID    map[string]*document.SceneObject

	bus       *Bus
	frameBase int
	minSize   float64
}

// NewStore creates an empty store publishing structural notifications on
// bus.
func NewStore(bus *Bus, opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		byID:      make(map[string]*document.SceneObject),
		bus:       bus,
		frameBase: opts.FrameZBase,
		minSize:   opts.MinObjectSize,
	}
}

func (s *Store) publish(msg Message) {
	if s.bus != nil {
		s.bus.Publish(msg)
	}
}

// Load replaces the store's contents with a copy of b. Objects keep their
// z-index order; geometry is sanitised and frame references that do not
// name a frame on the board are cleared.
func (s *Store) Load(b *document.Board) error {
	objs := make([]*document.SceneObject, 0, len(b.Objects))
	byID := make(map[string]*document.SceneObject, len(b.Objects))
	for _, o := range b.Objects {
		if o == nil {
			continue
		}
		if o.ID == "" || !o.Type.Valid() {
			return fmt.Errorf("load board %s: %w: id %q type %q", b.ID, ErrInvalidObject, o.ID, o.Type)
		}
		if _, dup := byID[o.ID]; dup {
			return fmt.Errorf("load board %s: %w: %s", b.ID, ErrDuplicateObject, o.ID)
		}
		c := o.Clone()
		document.Sanitize(c, s.minSize)
		objs = append(objs, c)
		byID[c.ID] = c
	}
	for _, o := range objs {
		if id, ok := o.Properties.FrameID(); ok {
			if f, found := byID[id]; !found || f.Type != document.ObjectTypeFrame || o.Type == document.ObjectTypeFrame {
				o.SetFrameID("")
			}
		}
	}
	slices.SortStableFunc(objs, func(a, b *document.SceneObject) int { return a.ZIndex - b.ZIndex })

	s.mu.Lock()
	s.board = *b
	s.board.Objects = nil
	s.objects = NormalizeZOrder(objs, s.frameBase)
	s.byID = byID
	ids := s.idsLocked()
	s.mu.Unlock()

	s.publish(Message{Kind: MsgObjectsReordered, Targets: ids})
	return nil
}

// Snapshot returns a deep copy of the board in render order.
func (s *Store) Snapshot() *document.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.board
	b.Objects = make([]*document.SceneObject, 0, len(s.objects))
	for _, o := range s.objects {
		b.Objects = append(b.Objects, o.Clone())
	}
	return &b
}

// BoardID returns the id of the loaded board.
func (s *Store) BoardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.ID
}

// Object returns the live object with the given id.
func (s *Store) Object(id string) (*document.SceneObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byID[id]
	return o, ok
}

// Objects returns the live objects in render order, back to front.
func (s *Store) Objects() []*document.SceneObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *Store) idsLocked() []string {
	ids := make([]string, len(s.objects))
	for i, o := range s.objects {
		ids[i] = o.ID
	}
	return ids
}

// Create adds a copy of o on top of the render order and returns the
// stored object. An empty id gets a fresh typeid for the object's kind.
func (s *Store) Create(o *document.SceneObject) (*document.SceneObject, error) {
	if o == nil || !o.Type.Valid() {
		return nil, fmt.Errorf("create object: %w", ErrInvalidObject)
	}
	c := o.Clone()
	if c.ID == "" {
		c.ID = typeid.NewObjectID(string(c.Type))
	}
	document.Sanitize(c, s.minSize)

	s.mu.Lock()
	if _, dup := s.byID[c.ID]; dup {
		s.mu.Unlock()
		return nil, fmt.Errorf("create object: %w: %s", ErrDuplicateObject, c.ID)
	}
	if err := s.checkFrameRefLocked(c); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("create object %s: %w", c.ID, err)
	}
	s.byID[c.ID] = c
	s.objects = NormalizeZOrder(append(s.objects, c), s.frameBase)
	s.mu.Unlock()

	s.publish(Message{Kind: MsgObjectCreated, Targets: []string{c.ID}})
	return c, nil
}

func (s *Store) checkFrameRefLocked(o *document.SceneObject) error {
	id, ok := o.Properties.FrameID()
	if !ok {
		return nil
	}
	f, found := s.byID[id]
	if !found || f.Type != document.ObjectTypeFrame || o.Type == document.ObjectTypeFrame || id == o.ID {
		return fmt.Errorf("%w: %s", ErrInvalidFrameRef, id)
	}
	return nil
}

// Delete removes objects. Children of a deleted frame are detached and a
// MsgFrameChanged is published for each of them.
func (s *Store) Delete(ids ...string) error {
	s.mu.Lock()
	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("delete object: %w: %s", ErrObjectNotFound, id)
		}
	}

	var detached []string
	for _, id := range ids {
		delete(s.byID, id)
	}
	s.objects = slices.DeleteFunc(s.objects, func(o *document.SceneObject) bool {
		_, keep := s.byID[o.ID]
		return !keep
	})
	for _, o := range s.objects {
		if f, ok := o.Properties.FrameID(); ok && slices.Contains(ids, f) {
			o.SetFrameID("")
			detached = append(detached, o.ID)
		}
	}
	s.objects = NormalizeZOrder(s.objects, s.frameBase)
	s.mu.Unlock()

	s.publish(Message{Kind: MsgObjectDeleted, Targets: slices.Clone(ids)})
	for _, id := range detached {
		s.publish(Message{Kind: MsgFrameChanged, Targets: []string{id}})
	}
	return nil
}

// BringToFront moves objects to the top of their partition, keeping their
// relative order. Frames stay behind all other content.
func (s *Store) BringToFront(ids ...string) error {
	return s.reorder(ids, true)
}

// SendToBack moves objects to the bottom of their partition.
func (s *Store) SendToBack(ids ...string) error {
	return s.reorder(ids, false)
}

func (s *Store) reorder(ids []string, front bool) error {
	s.mu.Lock()
	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("reorder: %w: %s", ErrObjectNotFound, id)
		}
	}
	var moved, rest []*document.SceneObject
	for _, o := range s.objects {
		if slices.Contains(ids, o.ID) {
			moved = append(moved, o)
		} else {
			rest = append(rest, o)
		}
	}
	if front {
		s.objects = append(rest, moved...)
	} else {
		s.objects = append(moved, rest...)
	}
	s.objects = NormalizeZOrder(s.objects, s.frameBase)
	order := s.idsLocked()
	s.mu.Unlock()

	s.publish(Message{Kind: MsgObjectsReordered, Targets: order})
	return nil
}

// Update writes geometry for one object from outside a session, such as a
// property panel edit.
func (s *Store) Update(id string, g document.Geometry) error {
	s.mu.Lock()
	o, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("update object: %w: %s", ErrObjectNotFound, id)
	}
	o.SetGeometry(g, s.minSize)
	s.mu.Unlock()

	s.publish(Message{Kind: MsgObjectUpdated, Targets: []string{id}})
	return nil
}

// SetFrame attaches id to frameID, or detaches it when frameID is empty.
func (s *Store) SetFrame(id, frameID string) error {
	s.mu.Lock()
	o, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("set frame: %w: %s", ErrObjectNotFound, id)
	}
	if frameID != "" {
		ref := &document.SceneObject{ID: o.ID, Type: o.Type, Properties: document.Properties{document.PropFrameID: frameID}}
		if err := s.checkFrameRefLocked(ref); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("set frame %s: %w", id, err)
		}
	}
	changed := o.SetFrameID(frameID)
	s.mu.Unlock()

	if changed {
		s.publish(Message{Kind: MsgFrameChanged, Targets: []string{id}, FrameID: frameID})
	}
	return nil
}

// SetVersion records the version the board was last saved as.
func (s *Store) SetVersion(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Version = v
}
