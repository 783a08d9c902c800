package document

import (
	"encoding/json"
	"math"
)

type ObjectType string

const (
	ObjectTypeFrame   ObjectType = "frame"
	ObjectTypeShape   ObjectType = "shape"
	ObjectTypeText    ObjectType = "text"
	ObjectTypeNote    ObjectType = "note"
	ObjectTypeImage   ObjectType = "image"
	ObjectTypeDrawing ObjectType = "drawing"
	ObjectTypeFile    ObjectType = "file"
	ObjectTypeComment ObjectType = "comment"
	ObjectTypeEmoji   ObjectType = "emoji"
)

// Valid reports whether t is one of the known object kinds.
func (t ObjectType) Valid() bool {
	switch t {
	case ObjectTypeFrame, ObjectTypeShape, ObjectTypeText, ObjectTypeNote,
		ObjectTypeImage, ObjectTypeDrawing, ObjectTypeFile, ObjectTypeComment,
		ObjectTypeEmoji:
		return true
	}
	return false
}

// Resizable reports whether the overlay exposes resize handles for t.
// Files have a fixed size.
func (t ObjectType) Resizable() bool {
	return t != ObjectTypeFile
}

// Rotatable reports whether the overlay exposes a rotation handle for t.
func (t ObjectType) Rotatable() bool {
	return t != ObjectTypeFile && t != ObjectTypeFrame
}

// TextBearing reports whether resizing t is constrained by its text content.
func (t ObjectType) TextBearing() bool {
	return t == ObjectTypeText || t == ObjectTypeNote
}

// AspectLocked reports whether corner resizes keep the aspect ratio by default.
func (t ObjectType) AspectLocked() bool {
	return t == ObjectTypeImage || t == ObjectTypeEmoji
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SceneObject is one placed item on the board. Position is the top-left
// corner of the unrotated rectangle in world space; Rotation is in degrees
// around the rectangle's center.
type SceneObject struct {
	ID         string     `json:"id"`
	Type       ObjectType `json:"type"`
	Position   Point      `json:"position"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rotation   float64    `json:"rotation"`
	ZIndex     int        `json:"zIndex"`
	Properties Properties `json:"properties,omitempty"`
}

// Size returns the object's width and height.
func (o *SceneObject) Size() Size {
	return Size{Width: o.Width, Height: o.Height}
}

// Center returns the world-space center of the object's rectangle.
func (o *SceneObject) Center() Point {
	return Point{X: o.Position.X + o.Width/2, Y: o.Position.Y + o.Height/2}
}

// Clone returns a deep copy of the object.
func (o *SceneObject) Clone() *SceneObject {
	c := *o
	c.Properties = o.Properties.Clone()
	return &c
}

// Geometry is the part of a SceneObject the transform engine may change.
type Geometry struct {
	Position Point   `json:"position"`
	Size     Size    `json:"size"`
	Rotation float64 `json:"rotation"`
}

// Geometry snapshots the object's position, size and rotation.
func (o *SceneObject) Geometry() Geometry {
	return Geometry{Position: o.Position, Size: o.Size(), Rotation: o.Rotation}
}

// SetGeometry writes g back to the object, sanitising it first.
func (o *SceneObject) SetGeometry(g Geometry, minSize float64) {
	o.Position = g.Position
	o.Width = g.Size.Width
	o.Height = g.Size.Height
	o.Rotation = g.Rotation
	Sanitize(o, minSize)
}

// Sanitize clamps malformed geometry in place: NaN, infinite or sub-minimum
// sizes become minSize, and NaN or infinite coordinates become zero.
func Sanitize(o *SceneObject, minSize float64) {
	if minSize <= 0 {
		minSize = 1
	}
	o.Width = clampSize(o.Width, minSize)
	o.Height = clampSize(o.Height, minSize)
	o.Position.X = finite(o.Position.X)
	o.Position.Y = finite(o.Position.Y)
	o.Rotation = finite(o.Rotation)
}

func clampSize(v, minSize float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < minSize {
		return minSize
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Board is a serialisable snapshot of a whole board. Objects are stored in
// render order, back to front.
type Board struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Version   int            `json:"version"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	Objects   []*SceneObject `json:"objects"`
}

// NewEmptyBoard creates a board with no objects. Timestamps are stamped on
// first save.
func NewEmptyBoard(boardID, name string) *Board {
	return &Board{
		ID:      boardID,
		Name:    name,
		Version: 1,
		Objects: []*SceneObject{},
	}
}

// Parse decodes a board snapshot.
func Parse(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.Objects == nil {
		b.Objects = []*SceneObject{}
	}
	return &b, nil
}
