package engine

import (
	"testing"

	"github.com/inamate/board/internal/document"
)

func TestSceneAccessors(t *testing.T) {
	s := NewStore(nil, DefaultOptions())
	s.Create(withRotation(obj("a", document.ObjectTypeShape, 3, 4, 10, 20), 30))

	if p, ok := PositionOf(s, "a"); !ok || p != (Point{X: 3, Y: 4}) {
		t.Errorf("PositionOf() = %v, %v", p, ok)
	}
	if sz, ok := SizeOf(s, "a"); !ok || sz != (document.Size{Width: 10, Height: 20}) {
		t.Errorf("SizeOf() = %v, %v", sz, ok)
	}
	if r, ok := RotationOf(s, "a"); !ok || r != 30 {
		t.Errorf("RotationOf() = %v, %v", r, ok)
	}
	if _, ok := PositionOf(s, "missing"); ok {
		t.Error("PositionOf(missing) ok = true")
	}
}

func TestLookupAllSkipsMissingAndDuplicates(t *testing.T) {
	s := NewStore(nil, DefaultOptions())
	s.Create(obj("a", document.ObjectTypeShape, 0, 0, 1, 1))
	s.Create(obj("b", document.ObjectTypeShape, 0, 0, 1, 1))

	got := lookupAll(s, []string{"b", "x", "a", "b"})
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("lookupAll() = %v", ids(got))
	}
}

func TestRenderRegistry(t *testing.T) {
	r := NewRenderRegistry[int]()
	r.Bind("a", 1)
	r.Bind("b", 2)

	// Rebinding a handle moves it to the new object.
	r.Bind("c", 1)
	if _, ok := r.Handle("a"); ok {
		t.Error("a kept handle 1 after it was rebound")
	}
	if id, ok := r.ObjectID(1); !ok || id != "c" {
		t.Errorf("ObjectID(1) = %q, %v, want c", id, ok)
	}

	// Rebinding an object releases its old handle.
	r.Bind("b", 3)
	if _, ok := r.ObjectID(2); ok {
		t.Error("handle 2 still bound")
	}

	r.Unbind("c")
	if _, ok := r.ObjectID(1); ok {
		t.Error("handle 1 still bound after Unbind")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}
