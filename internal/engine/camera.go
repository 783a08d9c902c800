package engine

import "math"

// Camera is the world-to-screen transform of the rendering surface.
// Screen coordinates are device pixels.
type Camera struct {
	Scale     float64 `json:"scale"`
	Translate Point   `json:"translate"`
}

// Viewport pairs a camera snapshot with the resolution factor (device
// pixels per CSS pixel). All conversions are pure.
type Viewport struct {
	Camera     Camera
	Resolution float64
}

func (v Viewport) scale() float64 {
	if v.Camera.Scale <= 0 || math.IsNaN(v.Camera.Scale) || math.IsInf(v.Camera.Scale, 0) {
		return 1
	}
	return v.Camera.Scale
}

func (v Viewport) resolution() float64 {
	if v.Resolution <= 0 || math.IsNaN(v.Resolution) || math.IsInf(v.Resolution, 0) {
		return 1
	}
	return v.Resolution
}

// WorldToScreen converts world coordinates to device pixels.
func (v Viewport) WorldToScreen(p Point) Point {
	s := v.scale()
	return Point{X: v.Camera.Translate.X + p.X*s, Y: v.Camera.Translate.Y + p.Y*s}
}

// WorldToScreenMatrix is WorldToScreen as an affine matrix, for hosts that
// set a canvas transform once per frame.
func (v Viewport) WorldToScreenMatrix() Matrix2D {
	s := v.scale()
	return Translate(v.Camera.Translate.X, v.Camera.Translate.Y).Multiply(Scale(s, s))
}

// ScreenToWorld converts device pixels to world coordinates.
func (v Viewport) ScreenToWorld(p Point) Point {
	s := v.scale()
	return Point{X: (p.X - v.Camera.Translate.X) / s, Y: (p.Y - v.Camera.Translate.Y) / s}
}

// WorldToCSS converts world coordinates to CSS pixels.
func (v Viewport) WorldToCSS(p Point) Point {
	return scalePt(v.WorldToScreen(p), 1/v.resolution())
}

// CSSToWorld converts CSS pixels to world coordinates.
func (v Viewport) CSSToWorld(p Point) Point {
	return v.ScreenToWorld(scalePt(p, v.resolution()))
}

// CSSDeltaToWorld converts a CSS-pixel displacement to a world displacement.
// Translation does not apply to deltas.
func (v Viewport) CSSDeltaToWorld(d Point) Point {
	return scalePt(d, v.resolution()/v.scale())
}

// WorldLengthToCSS converts a world length to CSS pixels.
func (v Viewport) WorldLengthToCSS(l float64) float64 {
	return l * v.scale() / v.resolution()
}

// CSSLengthToWorld converts a CSS-pixel length to world units.
func (v Viewport) CSSLengthToWorld(l float64) float64 {
	return l * v.resolution() / v.scale()
}

// WorldRectToCSS converts an axis-aligned world rect to CSS pixels.
func (v Viewport) WorldRectToCSS(r Rect) Rect {
	tl := v.WorldToCSS(Point{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, Width: v.WorldLengthToCSS(r.Width), Height: v.WorldLengthToCSS(r.Height)}
}

// CSSRectToWorld converts an axis-aligned CSS rect to world space.
func (v Viewport) CSSRectToWorld(r Rect) Rect {
	tl := v.CSSToWorld(Point{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, Width: v.CSSLengthToWorld(r.Width), Height: v.CSSLengthToWorld(r.Height)}
}

// CameraSource gives read access to the current camera.
type CameraSource interface {
	Camera() Camera
}

// Surface owns the camera on behalf of the rendering surface. It applies
// pan and zoom notifications and clamps the scale to [minZoom, maxZoom].
// The transform engine only reads it.
type Surface struct {
	camera  Camera
	minZoom float64
	maxZoom float64
}

// NewSurface creates a surface at scale 1 with no translation.
func NewSurface(minZoom, maxZoom float64) *Surface {
	if minZoom <= 0 {
		minZoom = 0.1
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	return &Surface{camera: Camera{Scale: 1}, minZoom: minZoom, maxZoom: maxZoom}
}

// Camera returns a snapshot of the current camera.
func (s *Surface) Camera() Camera {
	return s.camera
}

// SetCamera replaces the camera, clamping its scale.
func (s *Surface) SetCamera(c Camera) {
	c.Scale = s.clamp(c.Scale)
	s.camera = c
}

// Pan moves the camera by a screen-pixel offset.
func (s *Surface) Pan(dx, dy float64) {
	s.camera.Translate.X += dx
	s.camera.Translate.Y += dy
}

// ZoomAt changes the scale by factor, keeping the world point under the
// screen point fixed.
func (s *Surface) ZoomAt(screen Point, factor float64) {
	s.zoomTo(screen, s.camera.Scale*factor)
}

// SetZoomPercent sets the scale to pct/100 around a screen anchor.
func (s *Surface) SetZoomPercent(pct float64, anchor Point) {
	s.zoomTo(anchor, pct/100)
}

func (s *Surface) zoomTo(anchor Point, scale float64) {
	vp := Viewport{Camera: s.camera, Resolution: 1}
	world := vp.ScreenToWorld(anchor)

	s.camera.Scale = s.clamp(scale)

	// Keep the anchored world point under the cursor
	s.camera.Translate.X = anchor.X - world.X*s.camera.Scale
	s.camera.Translate.Y = anchor.Y - world.Y*s.camera.Scale
}

func (s *Surface) clamp(scale float64) float64 {
	if math.IsNaN(scale) || scale <= 0 {
		return s.camera.Scale
	}
	return math.Max(s.minZoom, math.Min(s.maxZoom, scale))
}

// Subscribe applies MsgZoomChanged and MsgPan notifications from bus to
// the camera. Subscribe the surface before anything that reads the camera
// in response to the same notifications.
func (s *Surface) Subscribe(bus *Bus) func() {
	return bus.Subscribe(func(msg Message) {
		switch msg.Kind {
		case MsgZoomChanged:
			anchor := Point{}
			if msg.Anchor != nil {
				anchor = *msg.Anchor
			}
			s.SetZoomPercent(msg.ZoomPercent, anchor)
		case MsgPan:
			if msg.Delta != nil {
				s.Pan(msg.Delta.X, msg.Delta.Y)
			}
		}
	}, MsgZoomChanged, MsgPan)
}
