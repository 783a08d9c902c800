package engine

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/inamate/board/internal/document"
)

const eps = 1e-6

func approx(a, b float64) bool { return math.Abs(a-b) <= eps }

func approxPoint(a, b Point) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }

func approxRect(a, b Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Width, b.Width) && approx(a.Height, b.Height)
}

func obj(id string, typ document.ObjectType, x, y, w, h float64) *document.SceneObject {
	return &document.SceneObject{ID: id, Type: typ, Position: Point{X: x, Y: y}, Width: w, Height: h}
}

func withProps(o *document.SceneObject, props document.Properties) *document.SceneObject {
	o.Properties = props
	return o
}

func withRotation(o *document.SceneObject, deg float64) *document.SceneObject {
	o.Rotation = deg
	return o
}

// recorder collects every bus message.
type recorder struct {
	msgs []Message
}

func (r *recorder) record(m Message) { r.msgs = append(r.msgs, m) }

func (r *recorder) reset() { r.msgs = nil }

func (r *recorder) count(k MessageKind) int {
	n := 0
	for _, m := range r.msgs {
		if m.Kind == k {
			n++
		}
	}
	return n
}

func (r *recorder) last(k MessageKind) (Message, bool) {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Kind == k {
			return r.msgs[i], true
		}
	}
	return Message{}, false
}

func (r *recorder) kinds() []MessageKind {
	out := make([]MessageKind, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Kind
	}
	return out
}

type fixture struct {
	bus   *Bus
	store *Store
	sel   *SelectionSet
	eng   *Engine
	rec   *recorder
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture wires a store, a selection and an engine at scale 1 and
// resolution 1, so CSS pixels equal world units.
func newFixture(t *testing.T, text TextMeasurer, objs ...*document.SceneObject) *fixture {
	t.Helper()
	bus := NewBus()
	store := NewStore(bus, DefaultOptions())
	sel := NewSelectionSet(bus)
	for _, o := range objs {
		if _, err := store.Create(o); err != nil {
			t.Fatalf("Create(%s) error = %v", o.ID, err)
		}
	}
	eng := New(Deps{Scene: store, Selection: sel, Bus: bus, Text: text, Logger: quietLogger()}, DefaultOptions())
	rec := &recorder{}
	bus.Subscribe(rec.record)
	return &fixture{bus: bus, store: store, sel: sel, eng: eng, rec: rec}
}

func (f *fixture) get(t *testing.T, id string) *document.SceneObject {
	t.Helper()
	o, ok := f.store.Object(id)
	if !ok {
		t.Fatalf("object %q not found", id)
	}
	return o
}
