package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB keeps snapshots in memory and answers the two snapshot queries.
type fakeDB struct {
	snaps []Snapshot
	err   error // returned by every call when set
	execs int

	// race runs before each insert, standing in for a concurrent writer.
	race func(db *fakeDB, boardID string)
}

type fakeRow struct {
	snap Snapshot
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.snap.ID
	*dest[1].(*string) = r.snap.BoardID
	*dest[2].(*int32) = r.snap.Version
	*dest[3].(*[]byte) = r.snap.Document
	*dest[4].(*time.Time) = r.snap.CreatedAt
	return nil
}

func (db *fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	db.execs++
	return pgconn.NewCommandTag("CREATE TABLE"), db.err
}

func (db *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	if db.err != nil {
		return fakeRow{err: db.err}
	}
	switch sql {
	case getLatestSnapshot:
		var latest *Snapshot
		for i := range db.snaps {
			s := &db.snaps[i]
			if s.BoardID == args[0].(string) && (latest == nil || s.Version > latest.Version) {
				latest = s
			}
		}
		if latest == nil {
			return fakeRow{err: pgx.ErrNoRows}
		}
		return fakeRow{snap: *latest}
	case createSnapshot:
		if db.race != nil {
			db.race(db, args[1].(string))
		}
		for _, s := range db.snaps {
			if s.BoardID == args[1].(string) && s.Version == args[2].(int32) {
				return fakeRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "board_snapshots_board_id_version_key"}}
			}
		}
		s := Snapshot{
			ID:        args[0].(string),
			BoardID:   args[1].(string),
			Version:   args[2].(int32),
			Document:  args[3].([]byte),
			CreatedAt: time.Unix(0, 0),
		}
		db.snaps = append(db.snaps, s)
		return fakeRow{snap: s}
	}
	return fakeRow{err: errors.New("unexpected query")}
}

// insertLatest appends a snapshot one version past the current latest.
func (db *fakeDB) insertLatest(boardID string) {
	v := int32(0)
	for _, s := range db.snaps {
		if s.BoardID == boardID && s.Version > v {
			v = s.Version
		}
	}
	db.snaps = append(db.snaps, Snapshot{ID: "snapshot_other", BoardID: boardID, Version: v + 1, Document: []byte(`{}`)})
}
