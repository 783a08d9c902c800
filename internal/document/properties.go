package document

import "maps"

// Property keys understood by the transform engine.
const (
	PropFrameID      = "frameId"
	PropText         = "text"
	PropFontSize     = "fontSize"
	PropResizePolicy = "resizePolicy"
)

// ResizePolicy controls how a frame is anchored when it is resized.
type ResizePolicy string

const (
	ResizeAnchored  ResizePolicy = "anchored"
	ResizeSymmetric ResizePolicy = "symmetric"
	ResizeLocked    ResizePolicy = "locked"
)

// Properties holds type-specific data. Values come from JSON so numbers
// are float64.
type Properties map[string]any

// Clone returns a shallow copy of p.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

func (p Properties) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok && v != ""
}

func (p Properties) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// FrameID returns the id of the frame that contains the object, if any.
func (p Properties) FrameID() (string, bool) {
	return p.String(PropFrameID)
}

func (p Properties) Text() string {
	s, _ := p.String(PropText)
	return s
}

// FontSize returns the font size in world units, or fallback when unset.
func (p Properties) FontSize(fallback float64) float64 {
	if v, ok := p.Float(PropFontSize); ok && v > 0 {
		return v
	}
	return fallback
}

func (p Properties) ResizePolicy() ResizePolicy {
	s, _ := p.String(PropResizePolicy)
	switch ResizePolicy(s) {
	case ResizeSymmetric, ResizeLocked:
		return ResizePolicy(s)
	default:
		return ResizeAnchored
	}
}

// SetFrameID sets or clears (id == "") the containing frame reference.
// It reports whether the stored value changed.
func (o *SceneObject) SetFrameID(id string) bool {
	cur, _ := o.Properties.FrameID()
	if cur == id {
		return false
	}
	if id == "" {
		delete(o.Properties, PropFrameID)
		return true
	}
	if o.Properties == nil {
		o.Properties = Properties{}
	}
	o.Properties[PropFrameID] = id
	return true
}
