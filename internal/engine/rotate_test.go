package engine

import (
	"math"
	"testing"

	"github.com/inamate/board/internal/document"
)

func TestRotate_Single(t *testing.T) {
	at := func(deg float64) Point {
		r := toRadians(deg)
		return Point{X: 50 + 100*math.Cos(r), Y: 50 + 100*math.Sin(r)}
	}

	type tc struct {
		start float64
		to    Point
		mods  Modifiers
		want  float64
	}

	tests := map[string]tc{
		"quarter turn":            {to: Point{X: 50, Y: 150}, want: 90},
		"counter-clockwise wraps": {to: Point{X: 50, Y: -50}, want: 270},
		"adds to start rotation":  {start: 30, to: Point{X: 50, Y: 150}, want: 120},
		"wraps past a full turn":  {start: 300, to: Point{X: 50, Y: 150}, want: 30},
		"shift snaps":             {to: at(44), mods: ModShift, want: 45},
		"free without shift":      {to: at(44), want: 44},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil, withRotation(obj("s", document.ObjectTypeShape, 0, 0, 100, 100), tt.start))

			if !f.eng.BeginRotate([]string{"s"}, Point{X: 150, Y: 50}) {
				t.Fatal("BeginRotate() = false")
			}
			start, ok := f.rec.last(MsgRotateStart)
			if !ok || start.Angle == nil || !approx(*start.Angle, tt.start) {
				t.Errorf("rotate:start = %+v, want angle %v", start, tt.start)
			}

			f.eng.PointerMove(tt.to, tt.mods)
			upd, ok := f.rec.last(MsgRotateUpdate)
			if !ok || upd.Angle == nil || !approx(*upd.Angle, tt.want) {
				t.Errorf("rotate:update = %+v, want angle %v", upd, tt.want)
			}

			f.eng.PointerUp(tt.to, tt.mods)
			if got := f.get(t, "s").Rotation; !approx(got, tt.want) {
				t.Errorf("rotation = %v, want %v", got, tt.want)
			}
			if got := f.get(t, "s").Position; got != (Point{}) {
				t.Errorf("position moved to %v", got)
			}
		})
	}
}

func TestRotate_FromHandle(t *testing.T) {
	f := newFixture(t, nil, obj("s", document.ObjectTypeShape, 0, 0, 100, 100))
	f.sel.Select([]string{"s"})

	d := 20 / math.Sqrt2
	res := f.eng.PointerDown(Point{X: 100 + d, Y: -d}, 0)
	if res.Handle != HandleRotate || !res.Started {
		t.Fatalf("PointerDown() = %+v, want started rotate", res)
	}
	if s, ok := f.eng.Active(); !ok || s.Op != OpRotate {
		t.Fatalf("Active() = %+v, %v, want rotate session", s, ok)
	}
}

func TestRotate_GroupIsRigid(t *testing.T) {
	f := newFixture(t, nil,
		obj("a", document.ObjectTypeShape, 0, 0, 10, 10),
		obj("b", document.ObjectTypeShape, 20, 0, 10, 10),
	)

	f.eng.BeginRotate([]string{"a", "b"}, Point{X: 115, Y: 5})
	f.eng.PointerMove(Point{X: 15, Y: 105}, 0)

	upd, ok := f.rec.last(MsgGroupRotateUpdate)
	if !ok || len(upd.Changes) != 2 {
		t.Fatalf("group:rotate:update = %+v, want two changes", upd)
	}
	f.eng.PointerUp(Point{X: 15, Y: 105}, 0)

	want := map[string]Point{"a": {X: 10, Y: -10}, "b": {X: 10, Y: 10}}
	for id, pos := range want {
		o := f.get(t, id)
		if !approxPoint(o.Position, pos) {
			t.Errorf("%s position = %v, want %v", id, o.Position, pos)
		}
		if !approx(o.Rotation, 90) {
			t.Errorf("%s rotation = %v, want 90", id, o.Rotation)
		}
	}
	if f.rec.count(MsgGroupRotateEnd) != 1 {
		t.Errorf("group:rotate:end published %d times, want 1", f.rec.count(MsgGroupRotateEnd))
	}
}

func TestRotate_RequiresEveryMemberRotatable(t *testing.T) {
	type tc struct {
		ids    []string
		wantOK bool
	}

	tests := map[string]tc{
		"lone frame":      {ids: []string{"f"}},
		"frame and shape": {ids: []string{"f", "s"}},
		"file and shape":  {ids: []string{"x", "s"}},
		"shape":           {ids: []string{"s"}, wantOK: true},
		"shape and note":  {ids: []string{"s", "n"}, wantOK: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			newBoard := func() *fixture {
				return newFixture(t, nil,
					obj("f", document.ObjectTypeFrame, 0, 0, 100, 100),
					obj("s", document.ObjectTypeShape, 10, 10, 20, 20),
					obj("n", document.ObjectTypeNote, 40, 10, 20, 20),
					obj("x", document.ObjectTypeFile, 300, 0, 20, 20),
				)
			}

			f := newBoard()
			if got := f.eng.BeginRotate(tt.ids, Point{X: 100, Y: 20}); got != tt.wantOK {
				t.Fatalf("BeginRotate(%v) = %v, want %v", tt.ids, got, tt.wantOK)
			}
			f.eng.PointerUp(Point{X: 20, Y: 100}, 0)
			if !tt.wantOK {
				for _, id := range tt.ids {
					if got := f.get(t, id).Rotation; got != 0 {
						t.Errorf("%s rotation = %v, want 0", id, got)
					}
				}
			}

			f = newBoard()
			f.sel.Select(tt.ids)
			ov := f.eng.Overlay()
			if got := ov.RotateHandle != nil; got != tt.wantOK {
				t.Fatalf("rotate handle shown = %v, want %v", got, tt.wantOK)
			}
			d := DefaultOptions().RotateHandleOffset / math.Sqrt2
			res := f.eng.PointerDown(Point{X: ov.Box.X + ov.Box.Width + d, Y: ov.Box.Y - d}, 0)
			if rotating := res.Handle == HandleRotate && res.Started; rotating != tt.wantOK {
				t.Errorf("PointerDown() at the rotation corner = %+v, want rotate started %v", res, tt.wantOK)
			}
		})
	}
}
