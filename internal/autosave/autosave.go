// Package autosave tracks whether a board changed since it was last saved
// and flushes snapshots to a sink.
package autosave

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
)

// Source is the board being edited.
type Source interface {
	Snapshot() *document.Board
	SetVersion(v int)
}

// Sink stores a snapshot and returns the version it was stored as.
type Sink interface {
	Save(ctx context.Context, b *document.Board) (int, error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, b *document.Board) (int, error)

func (f SinkFunc) Save(ctx context.Context, b *document.Board) (int, error) { return f(ctx, b) }

// Saver marks the board dirty on committed changes: the end of every
// gesture, frame attachment changes and structural mutations. Live update
// ticks never mark it dirty.
type Saver struct {
	src  Source
	sink Sink
	log  *slog.Logger

	mu    sync.Mutex
	dirty bool
}

func New(src Source, sink Sink, log *slog.Logger) *Saver {
	if log == nil {
		log = slog.Default()
	}
	return &Saver{src: src, sink: sink, log: log}
}

// Subscribe starts tracking changes published on bus.
func (s *Saver) Subscribe(bus *engine.Bus) func() {
	return bus.Subscribe(s.observe)
}

func (s *Saver) observe(msg engine.Message) {
	if _, _, phase, ok := msg.Kind.Lifecycle(); ok {
		if phase == engine.PhaseEnd {
			s.setDirty(true)
		}
		return
	}
	switch msg.Kind {
	case engine.MsgFrameChanged, engine.MsgObjectCreated, engine.MsgObjectUpdated, engine.MsgObjectDeleted,
		engine.MsgObjectsReordered:
		s.setDirty(true)
	}
}

func (s *Saver) setDirty(v bool) {
	s.mu.Lock()
	s.dirty = v
	s.mu.Unlock()
}

func (s *Saver) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkClean forgets pending changes, e.g. right after a board is loaded.
func (s *Saver) MarkClean() { s.setDirty(false) }

// Flush saves the board if it changed. Changes committed while the save
// is in flight mark the board dirty again; a failed save leaves it dirty.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.mu.Unlock()

	b := s.src.Snapshot()
	v, err := s.sink.Save(ctx, b)
	if err != nil {
		s.setDirty(true)
		s.log.Error("save board", "board", b.ID, "error", err)
		return fmt.Errorf("save board %s: %w", b.ID, err)
	}
	s.src.SetVersion(v)
	s.log.Info("board saved", "board", b.ID, "version", v)
	return nil
}
