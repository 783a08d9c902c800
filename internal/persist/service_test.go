package persist

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/typeid"
)

func newTestService(db *fakeDB) *Service {
	s := NewService(New(db))
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestService_SaveBumpsVersion(t *testing.T) {
	db := &fakeDB{}
	svc := newTestService(db)
	ctx := context.Background()
	b := document.NewEmptyBoard("board_a", "A")

	for want := 1; want <= 3; want++ {
		got, err := svc.Save(ctx, b)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if got != want {
			t.Errorf("Save() version = %d, want %d", got, want)
		}
	}
	if b.Version != 1 || b.UpdatedAt != "" {
		t.Errorf("Save() modified its argument: %+v", b)
	}

	last := db.snaps[len(db.snaps)-1]
	if err := typeid.Validate(last.ID, typeid.PrefixSnapshot); err != nil {
		t.Errorf("snapshot id: %v", err)
	}
	var stored document.Board
	if err := json.Unmarshal(last.Document, &stored); err != nil {
		t.Fatalf("stored document: %v", err)
	}
	if stored.Version != 3 || stored.UpdatedAt != "2026-03-01T12:00:00Z" || stored.CreatedAt != stored.UpdatedAt {
		t.Errorf("stored board = %+v", stored)
	}
}

func TestService_SaveRetriesOnVersionConflict(t *testing.T) {
	type tc struct {
		races       int // inserts made by a concurrent writer, one per attempt
		wantVersion int
		wantErr     error
	}

	tests := map[string]tc{
		"no concurrent writer": {wantVersion: 1},
		"one racing writer":    {races: 1, wantVersion: 2},
		"two racing writers":   {races: 2, wantVersion: 3},
		"writer always ahead":  {races: saveAttempts, wantErr: ErrVersionConflict},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			left := tt.races
			db := &fakeDB{race: func(db *fakeDB, boardID string) {
				if left > 0 {
					left--
					db.insertLatest(boardID)
				}
			}}
			svc := newTestService(db)

			got, err := svc.Save(context.Background(), document.NewEmptyBoard("board_a", "A"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Save() error = %v, want %v", err, tt.wantErr)
				}
				if len(db.snaps) != tt.races {
					t.Errorf("stored %d snapshots, want only the %d concurrent ones", len(db.snaps), tt.races)
				}
				return
			}
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if got != tt.wantVersion {
				t.Errorf("Save() version = %d, want %d", got, tt.wantVersion)
			}

			last := db.snaps[len(db.snaps)-1]
			var stored document.Board
			if err := json.Unmarshal(last.Document, &stored); err != nil {
				t.Fatalf("stored document: %v", err)
			}
			if int(last.Version) != tt.wantVersion || stored.Version != tt.wantVersion {
				t.Errorf("stored version row %d document %d, want %d", last.Version, stored.Version, tt.wantVersion)
			}
		})
	}
}

func TestService_Load(t *testing.T) {
	db := &fakeDB{}
	svc := newTestService(db)
	ctx := context.Background()

	if _, err := svc.Load(ctx, "board_a"); !errors.Is(err, ErrBoardNotFound) {
		t.Fatalf("Load() of a missing board error = %v, want %v", err, ErrBoardNotFound)
	}

	b := document.NewEmptyBoard("board_a", "A")
	b.Objects = append(b.Objects, &document.SceneObject{ID: "s", Type: document.ObjectTypeShape, Width: 5, Height: 5})
	svc.Save(ctx, b)
	svc.Save(ctx, b)

	got, err := svc.Load(ctx, "board_a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Version != 2 || len(got.Objects) != 1 || got.Objects[0].ID != "s" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestService_DatabaseErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newTestService(&fakeDB{err: boom})
	ctx := context.Background()

	if _, err := svc.Load(ctx, "board_a"); !errors.Is(err, boom) || errors.Is(err, ErrBoardNotFound) {
		t.Errorf("Load() error = %v, want wrapped %v", err, boom)
	}
	if _, err := svc.Save(ctx, document.NewEmptyBoard("board_a", "A")); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want wrapped %v", err, boom)
	}
}

func TestQueries_Migrate(t *testing.T) {
	db := &fakeDB{}
	if err := New(db).Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if db.execs != 1 {
		t.Errorf("Exec called %d times, want 1", db.execs)
	}
}
