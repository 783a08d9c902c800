package engine

import (
	"testing"

	"github.com/inamate/board/internal/document"
)

func TestContainingFrame(t *testing.T) {
	low := obj("low", document.ObjectTypeFrame, 0, 0, 100, 100)
	low.ZIndex = 1
	high := obj("high", document.ObjectTypeFrame, 50, 0, 100, 100)
	high.ZIndex = 5
	shape := obj("shape", document.ObjectTypeShape, 0, 0, 500, 500)
	shape.ZIndex = 9
	objs := []*document.SceneObject{high, low, shape}

	type tc struct {
		p       Point
		exclude []string
		wantID  string
	}

	tests := map[string]tc{
		"only one frame":           {p: Point{X: 10, Y: 10}, wantID: "low"},
		"overlap picks higher z":   {p: Point{X: 75, Y: 50}, wantID: "high"},
		"edge is inside":           {p: Point{X: 150, Y: 100}, wantID: "high"},
		"non frames never contain": {p: Point{X: 300, Y: 300}},
		"excluded frame skipped":   {p: Point{X: 75, Y: 50}, exclude: []string{"high"}, wantID: "low"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, ok := ContainingFrame(tt.p, objs, tt.exclude...)
			if tt.wantID == "" {
				if ok {
					t.Errorf("ContainingFrame(%v) = %s, want none", tt.p, f.ID)
				}
				return
			}
			if !ok || f.ID != tt.wantID {
				t.Errorf("ContainingFrame(%v) = %v, want %s", tt.p, f, tt.wantID)
			}
		})
	}
}

func TestUpdateContainment(t *testing.T) {
	frame := obj("f", document.ObjectTypeFrame, 0, 0, 100, 100)
	child := obj("c", document.ObjectTypeShape, 40, 40, 20, 20)
	objs := []*document.SceneObject{frame, child}

	id, changed := UpdateContainment(child, objs)
	if id != "f" || !changed {
		t.Fatalf("UpdateContainment() = %q, %v, want f, true", id, changed)
	}
	if got, _ := child.Properties.FrameID(); got != "f" {
		t.Errorf("frameId = %q, want f", got)
	}

	if _, changed := UpdateContainment(child, objs); changed {
		t.Error("second UpdateContainment() changed = true, want false")
	}

	child.Position = Point{X: 140, Y: 40}
	id, changed = UpdateContainment(child, objs)
	if id != "" || !changed {
		t.Fatalf("UpdateContainment() after move = %q, %v, want \"\", true", id, changed)
	}
	if _, ok := child.Properties.FrameID(); ok {
		t.Error("frameId still set after leaving the frame")
	}

	inner := obj("inner", document.ObjectTypeFrame, 10, 10, 10, 10)
	if _, changed := UpdateContainment(inner, append(objs, inner)); changed {
		t.Error("frame attached to another frame")
	}
}

func TestNormalizeZOrder(t *testing.T) {
	objs := []*document.SceneObject{
		obj("s1", document.ObjectTypeShape, 0, 0, 1, 1),
		obj("f1", document.ObjectTypeFrame, 0, 0, 1, 1),
		obj("t1", document.ObjectTypeText, 0, 0, 1, 1),
		obj("f2", document.ObjectTypeFrame, 0, 0, 1, 1),
		obj("n1", document.ObjectTypeNote, 0, 0, 1, 1),
	}

	got := NormalizeZOrder(objs, -1000)

	wantOrder := []string{"f1", "f2", "s1", "t1", "n1"}
	wantZ := []int{-1000, -999, 0, 1, 2}
	for i, o := range got {
		if o.ID != wantOrder[i] || o.ZIndex != wantZ[i] {
			t.Errorf("position %d = %s z=%d, want %s z=%d", i, o.ID, o.ZIndex, wantOrder[i], wantZ[i])
		}
	}
}

func TestFrameChildren(t *testing.T) {
	objs := []*document.SceneObject{
		obj("f", document.ObjectTypeFrame, 0, 0, 100, 100),
		withProps(obj("a", document.ObjectTypeShape, 0, 0, 1, 1), document.Properties{document.PropFrameID: "f"}),
		withProps(obj("b", document.ObjectTypeShape, 0, 0, 1, 1), document.Properties{document.PropFrameID: "other"}),
		withProps(obj("c", document.ObjectTypeNote, 0, 0, 1, 1), document.Properties{document.PropFrameID: "f"}),
	}

	got := FrameChildren("f", objs)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("FrameChildren() = %v, want [a c]", got)
	}
}
