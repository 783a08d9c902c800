package engine

import "math"

// Orientation is the axis a guide line runs along.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// GuideLine is a transient alignment hint. Coordinate is the x of a
// vertical line or the y of a horizontal one; Start and End are its extent
// along the other axis. All values are world units.
type GuideLine struct {
	Orientation Orientation `json:"orientation"`
	Coordinate  float64     `json:"coordinate"`
	Start       float64     `json:"start"`
	End         float64     `json:"end"`
}

// GuideOptions controls DetectGuides.
type GuideOptions struct {
	Threshold float64 // maximum distance, world units
	Margin    float64 // added to both ends of each line
	Max       int     // cap on lines returned
}

// DetectGuides compares the moving rect against each other rect for six
// coincidences: left, right and center-x (vertical lines), then top,
// bottom and center-y (horizontal lines). Each match within the threshold
// yields one line at the other rect's coordinate spanning both rects.
// Lines come back in first-found order, capped at opts.Max.
func DetectGuides(moving Rect, others []Rect, opts GuideOptions) []GuideLine {
	if opts.Max <= 0 {
		return nil
	}

	var guides []GuideLine
	add := func(g GuideLine) bool {
		guides = append(guides, g)
		return len(guides) >= opts.Max
	}

	near := func(a, b float64) bool {
		return math.Abs(a-b) <= opts.Threshold
	}

	for _, o := range others {
		vStart := math.Min(moving.Top(), o.Top()) - opts.Margin
		vEnd := math.Max(moving.Bottom(), o.Bottom()) + opts.Margin
		hStart := math.Min(moving.Left(), o.Left()) - opts.Margin
		hEnd := math.Max(moving.Right(), o.Right()) + opts.Margin

		mc, oc := moving.Center(), o.Center()

		vertical := [3][2]float64{
			{moving.Left(), o.Left()},
			{moving.Right(), o.Right()},
			{mc.X, oc.X},
		}
		for _, pair := range vertical {
			if near(pair[0], pair[1]) {
				if add(GuideLine{Orientation: Vertical, Coordinate: pair[1], Start: vStart, End: vEnd}) {
					return guides
				}
			}
		}

		horizontal := [3][2]float64{
			{moving.Top(), o.Top()},
			{moving.Bottom(), o.Bottom()},
			{mc.Y, oc.Y},
		}
		for _, pair := range horizontal {
			if near(pair[0], pair[1]) {
				if add(GuideLine{Orientation: Horizontal, Coordinate: pair[1], Start: hStart, End: hEnd}) {
					return guides
				}
			}
		}
	}
	return guides
}
