package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixBoard    = "board"
	PrefixSnapshot = "snap"
	PrefixFrame    = "frame"
	PrefixShape    = "shape"
	PrefixText     = "text"
	PrefixNote     = "note"
	PrefixImage    = "img"
	PrefixDrawing  = "draw"
	PrefixFile     = "file"
	PrefixComment  = "cmt"
	PrefixEmoji    = "emoji"
	PrefixObject   = "obj"
)

var kindPrefixes = map[string]string{
	"frame":   PrefixFrame,
	"shape":   PrefixShape,
	"text":    PrefixText,
	"note":    PrefixNote,
	"image":   PrefixImage,
	"drawing": PrefixDrawing,
	"file":    PrefixFile,
	"comment": PrefixComment,
	"emoji":   PrefixEmoji,
}

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewBoardID() string    { return New(PrefixBoard) }
func NewSnapshotID() string { return New(PrefixSnapshot) }

// NewObjectID returns an id whose prefix names the object kind, falling
// back to "obj" for kinds without a dedicated prefix.
func NewObjectID(kind string) string {
	if p, ok := kindPrefixes[kind]; ok {
		return New(p)
	}
	return New(PrefixObject)
}

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
