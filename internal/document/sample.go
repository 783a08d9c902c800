package document

import (
	"time"

	"github.com/inamate/board/internal/typeid"
)

// NewSampleBoard builds a small board with a frame holding two children,
// a loose text block and an image.
func NewSampleBoard(boardID string) *Board {
	now := time.Now().UTC().Format(time.RFC3339)

	frameID := typeid.NewObjectID(string(ObjectTypeFrame))
	noteID := typeid.NewObjectID(string(ObjectTypeNote))
	shapeID := typeid.NewObjectID(string(ObjectTypeShape))
	textID := typeid.NewObjectID(string(ObjectTypeText))
	imageID := typeid.NewObjectID(string(ObjectTypeImage))

	return &Board{
		ID:        boardID,
		Name:      "Untitled board",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		Objects: []*SceneObject{
			{
				ID:       frameID,
				Type:     ObjectTypeFrame,
				Position: Point{X: 100, Y: 100},
				Width:    640,
				Height:   400,
				Properties: Properties{
					"title":          "Sprint plan",
					PropResizePolicy: string(ResizeAnchored),
				},
			},
			{
				ID:       noteID,
				Type:     ObjectTypeNote,
				Position: Point{X: 140, Y: 160},
				Width:    200,
				Height:   200,
				Properties: Properties{
					PropText:     "Ship the resize handles",
					PropFontSize: 18.0,
					PropFrameID:  frameID,
					"color":      "#fff475",
				},
			},
			{
				ID:       shapeID,
				Type:     ObjectTypeShape,
				Position: Point{X: 420, Y: 200},
				Width:    160,
				Height:   100,
				Rotation: 15,
				Properties: Properties{
					"shape":     "rectangle",
					"fill":      "#e94560",
					PropFrameID: frameID,
				},
			},
			{
				ID:       textID,
				Type:     ObjectTypeText,
				Position: Point{X: 820, Y: 120},
				Width:    240,
				Height:   24,
				Properties: Properties{
					PropText:     "Loose notes live outside frames",
					PropFontSize: 16.0,
				},
			},
			{
				ID:       imageID,
				Type:     ObjectTypeImage,
				Position: Point{X: 820, Y: 220},
				Width:    320,
				Height:   180,
				Properties: Properties{
					"src": "/assets/sample.png",
				},
			},
		},
	}
}
