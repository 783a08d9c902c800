package engine

// Options tunes the transform engine. Pixel values are CSS pixels; they
// stay constant on screen regardless of zoom.
type Options struct {
	Resolution float64 // device pixels per CSS pixel
	MinZoom    float64
	MaxZoom    float64

	GuideThreshold float64 // px distance at which edges/centers count as aligned
	GuideMargin    float64 // world units added to both ends of a guide line
	MaxGuides      int

	HandleSize         float64 // side of a corner handle square
	HandleInset        float64 // how far a corner handle's center sits inside the box corner
	EdgeZone           float64 // thickness of the invisible edge drag zones
	RotateHandleOffset float64 // diagonal distance of the rotation handle from the top-right corner

	MinObjectSize   float64 // world units
	TextProbe       string  // narrowest line a text object may be resized to
	DefaultFontSize float64
	FrameZBase      int     // z-index given to the backmost frame
	RotationSnap    float64 // degrees; applied when Shift is held
}

// DefaultOptions returns the defaults used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Resolution:         1,
		MinZoom:            0.1,
		MaxZoom:            8,
		GuideThreshold:     5,
		GuideMargin:        10,
		MaxGuides:          4,
		HandleSize:         8,
		HandleInset:        4,
		EdgeZone:           8,
		RotateHandleOffset: 20,
		MinObjectSize:      1,
		TextProbe:          "Www",
		DefaultFontSize:    16,
		FrameZBase:         -100000,
		RotationSnap:       15,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Resolution <= 0 {
		o.Resolution = d.Resolution
	}
	if o.MinZoom <= 0 {
		o.MinZoom = d.MinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = d.MaxZoom
	}
	if o.GuideThreshold <= 0 {
		o.GuideThreshold = d.GuideThreshold
	}
	if o.GuideMargin < 0 {
		o.GuideMargin = d.GuideMargin
	}
	if o.MaxGuides <= 0 {
		o.MaxGuides = d.MaxGuides
	}
	if o.HandleSize <= 0 {
		o.HandleSize = d.HandleSize
	}
	if o.HandleInset < 0 {
		o.HandleInset = d.HandleInset
	}
	if o.EdgeZone <= 0 {
		o.EdgeZone = d.EdgeZone
	}
	if o.RotateHandleOffset <= 0 {
		o.RotateHandleOffset = d.RotateHandleOffset
	}
	if o.MinObjectSize <= 0 {
		o.MinObjectSize = d.MinObjectSize
	}
	if o.TextProbe == "" {
		o.TextProbe = d.TextProbe
	}
	if o.DefaultFontSize <= 0 {
		o.DefaultFontSize = d.DefaultFontSize
	}
	if o.FrameZBase == 0 {
		o.FrameZBase = d.FrameZBase
	}
	if o.RotationSnap <= 0 {
		o.RotationSnap = d.RotationSnap
	}
	return o
}
