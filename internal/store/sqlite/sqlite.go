package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode for better concurrency on read-heavy dashboard traffic.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqStore{db: db} }

type sqStore struct{ db *sql.DB }

func (s *sqStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health probing for the SQLite-backed store.
func (s *sqStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the time_entries table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS time_entries (
            entry_id      TEXT PRIMARY KEY,
            actor_id      TEXT NOT NULL,
            entry_date    TEXT NOT NULL,
            start_time    TEXT NOT NULL,
            end_time      TEXT NOT NULL,
            hours_worked  REAL NOT NULL DEFAULT 0,
            city          TEXT,
            state         TEXT,
            notes         TEXT,
            creation_time TEXT NOT NULL,
            update_time   TEXT NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_time_entries_actor_date
            ON time_entries (actor_id, entry_date);
    `)
	return err
}

type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	id := m.EntryID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := e.db.ExecContext(ctx, `
        INSERT INTO time_entries (entry_id, actor_id, entry_date, start_time, end_time, hours_worked, city, state, notes, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
    `, id, m.ActorID, m.Date, m.StartTime, m.EndTime, m.HoursWorked, m.City, m.State, m.Notes,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = id
	out.CreationTime = now
	out.UpdateTime = now
	return &out, nil
}

func (e *entries) Update(ctx context.Context, m *model.TimeEntry) error {
	now := time.Now().UTC()
	_, err := e.db.ExecContext(ctx, `
        UPDATE time_entries
        SET entry_date=?, start_time=?, end_time=?, hours_worked=?, city=?, state=?, notes=?, update_time=?
        WHERE entry_id=? AND actor_id=?
    `, m.Date, m.StartTime, m.EndTime, m.HoursWorked, m.City, m.State, m.Notes,
		now.Format(time.RFC3339Nano), m.EntryID, m.ActorID)
	return err
}

func (e *entries) GetByID(ctx context.Context, actorID, entryID string) (*model.TimeEntry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, actor_id, entry_date, start_time, end_time, hours_worked, city, state, notes, creation_time, update_time
        FROM time_entries WHERE entry_id=? AND actor_id=?
    `, entryID, actorID)
	out, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	return out, err
}

func (e *entries) List(ctx context.Context, req model.ListEntriesRequest) ([]*model.TimeEntry, error) {
	q := `
        SELECT entry_id, actor_id, entry_date, start_time, end_time, hours_worked, city, state, notes, creation_time, update_time
        FROM time_entries WHERE actor_id=?`
	args := []interface{}{req.ActorID}
	if req.From != "" {
		q += ` AND entry_date >= ?`
		args = append(args, req.From)
	}
	if req.To != "" {
		q += ` AND entry_date <= ?`
		args = append(args, req.To)
	}
	q += ` ORDER BY entry_date ASC, start_time ASC`

	rows, err := e.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.TimeEntry
	for rows.Next() {
		out, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, out)
	}
	return res, rows.Err()
}

func (e *entries) Delete(ctx context.Context, actorID, entryID string) error {
	// Affected-row count ignored; see store.Entries contract.
	_, err := e.db.ExecContext(ctx, `
        DELETE FROM time_entries WHERE entry_id=? AND actor_id=?
    `, entryID, actorID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(r rowScanner) (*model.TimeEntry, error) {
	var out model.TimeEntry
	var created, updated string
	if err := r.Scan(
		&out.EntryID, &out.ActorID, &out.Date, &out.StartTime, &out.EndTime,
		&out.HoursWorked, &out.City, &out.State, &out.Notes,
		&created, &updated,
	); err != nil {
		return nil, err
	}
	out.CreationTime, _ = time.Parse(time.RFC3339Nano, created)
	out.UpdateTime, _ = time.Parse(time.RFC3339Nano, updated)
	return &out, nil
}
