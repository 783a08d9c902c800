package engine

import (
	"testing"

	"github.com/inamate/board/internal/document"
)

func TestSelectionBounds(t *testing.T) {
	type tc struct {
		objs   []*document.SceneObject
		want   Bounds
		wantOK bool
	}

	tests := map[string]tc{
		"empty": {
			objs:   nil,
			wantOK: false,
		},
		"single keeps rotation out of the rect": {
			objs:   []*document.SceneObject{withRotation(obj("a", document.ObjectTypeShape, 10, 20, 100, 50), 30)},
			want:   Bounds{Rect: Rect{X: 10, Y: 20, Width: 100, Height: 50}, Rotation: 30},
			wantOK: true,
		},
		"group is the union": {
			objs: []*document.SceneObject{
				obj("a", document.ObjectTypeShape, 0, 0, 10, 10),
				obj("b", document.ObjectTypeShape, 20, 20, 10, 10),
			},
			want:   Bounds{Rect: Rect{X: 0, Y: 0, Width: 30, Height: 30}},
			wantOK: true,
		},
		"group resolves member rotation first": {
			objs: []*document.SceneObject{
				withRotation(obj("a", document.ObjectTypeShape, 0, 0, 100, 20), 90),
				obj("b", document.ObjectTypeShape, 100, 0, 10, 10),
			},
			// a rotated a quarter turn spans x 40..60, y -40..60.
			want:   Bounds{Rect: Rect{X: 40, Y: -40, Width: 70, Height: 100}},
			wantOK: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := SelectionBounds(tt.objs)
			if ok != tt.wantOK {
				t.Fatalf("SelectionBounds() ok = %v, want %v", ok, tt.wantOK)
			}
			if !approxRect(got.Rect, tt.want.Rect) || got.Rotation != tt.want.Rotation {
				t.Errorf("SelectionBounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWorldAABB_Rotated(t *testing.T) {
	o := withRotation(obj("a", document.ObjectTypeShape, 0, 0, 10, 10), 45)
	got := WorldAABB(o)

	half := 5 * 1.4142135623730951
	want := Rect{X: 5 - half, Y: 5 - half, Width: 2 * half, Height: 2 * half}
	if !approxRect(got, want) {
		t.Errorf("WorldAABB() = %+v, want %+v", got, want)
	}
}
