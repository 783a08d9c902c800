package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/typeid"
)

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrVersionConflict = errors.New("snapshot version conflict")
)

// saveAttempts bounds how often Save re-reads the latest version after a
// concurrent writer took the one it picked.
const saveAttempts = 3

// uniqueViolation is the Postgres SQLSTATE for a UNIQUE constraint failure.
const uniqueViolation = "23505"

// Service stores boards as versioned JSON snapshots.
type Service struct {
	queries *Queries
	now     func() time.Time
}

func NewService(queries *Queries) *Service {
	return &Service{queries: queries, now: time.Now}
}

// Load returns the latest snapshot of a board.
func (s *Service) Load(ctx context.Context, boardID string) (*document.Board, error) {
	snap, err := s.queries.GetLatestSnapshot(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	b, err := document.Parse(snap.Document)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", snap.ID, err)
	}
	b.Version = int(snap.Version)
	return b, nil
}

// Save writes b as the next snapshot version and returns that version.
// b is not modified. When concurrent saves pick the same version, the
// loser re-reads and retries; ErrVersionConflict is returned once the
// attempts run out.
func (s *Service) Save(ctx context.Context, b *document.Board) (int, error) {
	for range saveAttempts {
		version, err := s.saveNext(ctx, b)
		if !isUniqueViolation(err) {
			return version, err
		}
		slog.Debug("snapshot version taken, retrying", "board", b.ID)
	}
	return 0, fmt.Errorf("save board %s: %w", b.ID, ErrVersionConflict)
}

func (s *Service) saveNext(ctx context.Context, b *document.Board) (int, error) {
	next := int32(1)
	cur, err := s.queries.GetLatestSnapshot(ctx, b.ID)
	switch {
	case err == nil:
		next = cur.Version + 1
	case !errors.Is(err, pgx.ErrNoRows):
		return 0, fmt.Errorf("get latest snapshot: %w", err)
	}

	out := *b
	out.Version = int(next)
	out.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if out.CreatedAt == "" {
		out.CreatedAt = out.UpdatedAt
	}
	data, err := json.Marshal(&out)
	if err != nil {
		return 0, fmt.Errorf("marshal board: %w", err)
	}

	_, err = s.queries.CreateSnapshot(ctx, CreateSnapshotParams{
		ID:       typeid.NewSnapshotID(),
		BoardID:  b.ID,
		Version:  next,
		Document: data,
	})
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	return int(next), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
