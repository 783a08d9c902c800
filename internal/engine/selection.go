package engine

import "slices"

// SelectionSet is an ordered set of selected object ids. Every change is
// announced with MsgSelectionChanged, and ids of deleted objects are
// dropped when MsgObjectDeleted arrives.
type SelectionSet struct {
	ids []string
	bus *Bus
}

// NewSelectionSet creates an empty selection publishing on bus.
func NewSelectionSet(bus *Bus) *SelectionSet {
	s := &SelectionSet{bus: bus}
	if bus != nil {
		bus.Subscribe(func(msg Message) { s.Remove(msg.Targets...) }, MsgObjectDeleted)
	}
	return s
}

// Selected returns the selected ids in selection order.
func (s *SelectionSet) Selected() []string {
	return slices.Clone(s.ids)
}

func (s *SelectionSet) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Select replaces the selection. Duplicates and empty ids are dropped.
func (s *SelectionSet) Select(ids []string) {
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	s.set(next)
}

// Add appends ids that are not selected yet.
func (s *SelectionSet) Add(ids ...string) {
	s.Select(append(slices.Clone(s.ids), ids...))
}

// Remove deselects ids.
func (s *SelectionSet) Remove(ids ...string) {
	s.set(slices.DeleteFunc(slices.Clone(s.ids), func(id string) bool {
		return slices.Contains(ids, id)
	}))
}

func (s *SelectionSet) Clear() {
	s.set(nil)
}

func (s *SelectionSet) set(next []string) {
	if slices.Equal(s.ids, next) {
		return
	}
	s.ids = next
	if s.bus != nil {
		s.bus.Publish(Message{Kind: MsgSelectionChanged, Selection: slices.Clone(next)})
	}
}
