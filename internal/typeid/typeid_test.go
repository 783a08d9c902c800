package typeid

import (
	"strings"
	"testing"
)

func TestNewObjectID(t *testing.T) {
	tests := map[string]string{
		"frame":   PrefixFrame,
		"image":   PrefixImage,
		"comment": PrefixComment,
		"unknown": PrefixObject,
	}

	for kind, prefix := range tests {
		t.Run(kind, func(t *testing.T) {
			id := NewObjectID(kind)
			if !strings.HasPrefix(id, prefix+"_") {
				t.Errorf("NewObjectID(%q) = %q, want prefix %q", kind, id, prefix)
			}
			if err := Validate(id, prefix); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type tc struct {
		id      string
		prefix  string
		wantErr bool
	}

	tests := map[string]tc{
		"board id":     {id: NewBoardID(), prefix: PrefixBoard},
		"wrong prefix": {id: NewSnapshotID(), prefix: PrefixBoard, wantErr: true},
		"garbage":      {id: "board_???", prefix: PrefixBoard, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := Validate(tt.id, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q, %q) error = %v, wantErr %v", tt.id, tt.prefix, err, tt.wantErr)
			}
		})
	}
}
