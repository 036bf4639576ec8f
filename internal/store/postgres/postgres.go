package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health probing for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the time_entries table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS time_entries (
            entry_id      UUID PRIMARY KEY,
            actor_id      TEXT NOT NULL,
            entry_date    DATE NOT NULL,
            start_time    TEXT NOT NULL,
            end_time      TEXT NOT NULL,
            hours_worked  NUMERIC(5,2) NOT NULL DEFAULT 0,
            city          TEXT,
            state         TEXT,
            notes         TEXT,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now(),
            update_time   TIMESTAMPTZ NOT NULL DEFAULT now()
        );
        CREATE INDEX IF NOT EXISTS idx_time_entries_actor_date
            ON time_entries (actor_id, entry_date);
    `)
	return err
}

// --- Entries ---
type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	id := m.EntryID
	if id == "" {
		id = uuid.New().String()
	}
	var created, updated time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO time_entries (entry_id, actor_id, entry_date, start_time, end_time, hours_worked, city, state, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING creation_time, update_time
    `, id, m.ActorID, m.Date, m.StartTime, m.EndTime, m.HoursWorked, m.City, m.State, m.Notes)
	if err := row.Scan(&created, &updated); err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = id
	out.CreationTime = created
	out.UpdateTime = updated
	return &out, nil
}

func (e *entries) Update(ctx context.Context, m *model.TimeEntry) error {
	// Filtered by actor: an unmatched id+owner pair affects zero rows and is
	// still success, mirroring Delete.
	_, err := e.db.ExecContext(ctx, `
        UPDATE time_entries
        SET entry_date=$3, start_time=$4, end_time=$5, hours_worked=$6, city=$7, state=$8, notes=$9, update_time=now()
        WHERE entry_id=$1 AND actor_id=$2
    `, m.EntryID, m.ActorID, m.Date, m.StartTime, m.EndTime, m.HoursWorked, m.City, m.State, m.Notes)
	return err
}

func (e *entries) GetByID(ctx context.Context, actorID, entryID string) (*model.TimeEntry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, actor_id, to_char(entry_date,'YYYY-MM-DD'), start_time, end_time, hours_worked, city, state, notes, creation_time, update_time
        FROM time_entries WHERE entry_id=$1 AND actor_id=$2
    `, entryID, actorID)
	out, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	return out, err
}

func (e *entries) List(ctx context.Context, req model.ListEntriesRequest) ([]*model.TimeEntry, error) {
	q := `
        SELECT entry_id, actor_id, to_char(entry_date,'YYYY-MM-DD'), start_time, end_time, hours_worked, city, state, notes, creation_time, update_time
        FROM time_entries WHERE actor_id=$1`
	args := []interface{}{req.ActorID}
	if req.From != "" {
		args = append(args, req.From)
		q += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if req.To != "" {
		args = append(args, req.To)
		q += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	q += " ORDER BY entry_date ASC, start_time ASC"

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
	// The affected-row count is deliberately ignored: deleting a nonexistent
	// or non-owned id succeeds without removing anything, so callers cannot
	// probe for another actor's rows.
	_, err := e.db.ExecContext(ctx, `
        DELETE FROM time_entries WHERE entry_id=$1 AND actor_id=$2
    `, entryID, actorID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(r rowScanner) (*model.TimeEntry, error) {
	var out model.TimeEntry
	if err := r.Scan(
		&out.EntryID, &out.ActorID, &out.Date, &out.StartTime, &out.EndTime,
		&out.HoursWorked, &out.City, &out.State, &out.Notes,
		&out.CreationTime, &out.UpdateTime,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
