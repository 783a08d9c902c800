package engine

import "testing"

func TestDetectGuides_LeftEdgeSymmetry(t *testing.T) {
	opts := GuideOptions{Threshold: 5, Margin: 10, Max: 4}
	tall := Rect{X: 0, Y: 0, Width: 100, Height: 60}
	small := Rect{X: 0, Y: 200, Width: 50, Height: 30}

	type tc struct {
		moving, other Rect
		want          int
	}

	tests := map[string]tc{
		"small dragged onto tall":     {moving: small, other: tall, want: 1},
		"tall dragged onto small":     {moving: tall, other: small, want: 1},
		"within threshold":            {moving: small.Offset(5, 0), other: tall, want: 1},
		"within threshold other side": {moving: tall.Offset(-5, 0), other: small, want: 1},
		"beyond threshold":            {moving: small.Offset(6, 0), other: tall, want: 0},
		"beyond threshold other side": {moving: tall.Offset(-6, 0), other: small, want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := DetectGuides(tt.moving, []Rect{tt.other}, opts)
			if len(got) != tt.want {
				t.Fatalf("DetectGuides() = %d guides %+v, want %d", len(got), got, tt.want)
			}
			if tt.want == 0 {
				return
			}
			g := got[0]
			if g.Orientation != Vertical || g.Coordinate != tt.other.X {
				t.Errorf("guide = %+v, want vertical at %v", g, tt.other.X)
			}
			wantStart := min(tt.moving.Top(), tt.other.Top()) - opts.Margin
			wantEnd := max(tt.moving.Bottom(), tt.other.Bottom()) + opts.Margin
			if g.Start != wantStart || g.End != wantEnd {
				t.Errorf("guide extent = [%v, %v], want [%v, %v]", g.Start, g.End, wantStart, wantEnd)
			}
		})
	}
}

func TestDetectGuides_AllSixAndCap(t *testing.T) {
	same := Rect{X: 10, Y: 10, Width: 40, Height: 40}

	got := DetectGuides(same, []Rect{same}, GuideOptions{Threshold: 1, Max: 10})
	if len(got) != 6 {
		t.Fatalf("DetectGuides() = %d guides, want 6", len(got))
	}
	wantCoords := []float64{10, 50, 30, 10, 50, 30}
	for i, g := range got {
		wantOrient := Vertical
		if i >= 3 {
			wantOrient = Horizontal
		}
		if g.Orientation != wantOrient || g.Coordinate != wantCoords[i] {
			t.Errorf("guide %d = %+v, want %s at %v", i, g, wantOrient, wantCoords[i])
		}
	}

	capped := DetectGuides(same, []Rect{same, same}, GuideOptions{Threshold: 1, Max: 4})
	if len(capped) != 4 {
		t.Errorf("capped DetectGuides() = %d guides, want 4", len(capped))
	}
}
