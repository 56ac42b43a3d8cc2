// Package flightlog records device status samples in a SQLite database.
//
// Every connected period is a flight with its own id. Samples keep the phase
// and battery in columns for querying and the whole status as a msgpack blob.
package flightlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/vmihailenco/msgpack/v5"

	"github.com/einherij/bebop/pkg/bebop"
)

var ErrNoFlight = errors.New("flightlog: no flight in progress")

type Log struct {
	db *sql.DB

	mu     sync.Mutex
	flight string
}

// Open opens (or creates) the log at path in WAL journal mode.
func Open(path string) (*Log, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("flightlog: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("flightlog: ping: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

// Migrate creates the schema. It is idempotent.
func (l *Log) Migrate(ctx context.Context) error {
	for _, stmt := range []string{ddlFlights, ddlSamples} {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("flightlog: migrate: %w", err)
		}
	}
	return nil
}

const ddlFlights = `
CREATE TABLE IF NOT EXISTS flights (
    id         TEXT    PRIMARY KEY,
    target     TEXT    NOT NULL,
    started_at INTEGER NOT NULL,          -- Unix milliseconds
    ended_at   INTEGER                    -- NULL while in progress
);
`

const ddlSamples = `
CREATE TABLE IF NOT EXISTS samples (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    flight_id   TEXT    NOT NULL REFERENCES flights (id),
    phase       TEXT    NOT NULL,
    battery     INTEGER NOT NULL,          -- -1 when unknown
    payload     BLOB    NOT NULL,          -- msgpack encoded bebop.Status
    recorded_at INTEGER NOT NULL           -- Unix milliseconds
);
CREATE INDEX IF NOT EXISTS idx_samples_flight ON samples (flight_id, recorded_at DESC);
`

// Begin starts a new flight and makes it the current one.
func (l *Log) Begin(ctx context.Context, target string, at time.Time) (string, error) {
	id := uuid.NewString()
	if _, err := l.db.ExecContext(ctx,
		`INSERT INTO flights (id, target, started_at) VALUES (?, ?, ?)`,
		id, target, at.UnixMilli(),
	); err != nil {
		return "", fmt.Errorf("flightlog: begin flight: %w", err)
	}
	l.mu.Lock()
	l.flight = id
	l.mu.Unlock()
	return id, nil
}

// End closes the current flight, if any.
func (l *Log) End(ctx context.Context, at time.Time) error {
	l.mu.Lock()
	id := l.flight
	l.flight = ""
	l.mu.Unlock()
	if id == "" {
		return nil
	}
	if _, err := l.db.ExecContext(ctx,
		`UPDATE flights SET ended_at = ? WHERE id = ?`, at.UnixMilli(), id,
	); err != nil {
		return fmt.Errorf("flightlog: end flight %s: %w", id, err)
	}
	return nil
}

func (l *Log) Flight() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flight
}

// Record appends a sample to the current flight.
func (l *Log) Record(ctx context.Context, st bebop.Status) error {
	id := l.Flight()
	if id == "" {
		return ErrNoFlight
	}
	payload, err := msgpack.Marshal(&st)
	if err != nil {
		return fmt.Errorf("flightlog: encode status: %w", err)
	}
	if _, err := l.db.ExecContext(ctx,
		`INSERT INTO samples (flight_id, phase, battery, payload, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		id, st.Phase, st.Battery, payload, st.At.UnixMilli(),
	); err != nil {
		return fmt.Errorf("flightlog: record: %w", err)
	}
	return nil
}

type Sample struct {
	ID         int64
	Flight     string
	Phase      string
	Battery    int
	RecordedAt time.Time
	Status     bebop.Status
}

// Recent returns up to n samples of a flight, newest first.
func (l *Log) Recent(ctx context.Context, flight string, n int) ([]Sample, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, flight_id, phase, battery, payload, recorded_at
		   FROM samples WHERE flight_id = ?
		  ORDER BY recorded_at DESC, id DESC LIMIT ?`,
		flight, n,
	)
	if err != nil {
		return nil, fmt.Errorf("flightlog: query samples: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var (
			s       Sample
			payload []byte
			at      int64
		)
		if err := rows.Scan(&s.ID, &s.Flight, &s.Phase, &s.Battery, &payload, &at); err != nil {
			return nil, fmt.Errorf("flightlog: scan sample: %w", err)
		}
		if err := msgpack.Unmarshal(payload, &s.Status); err != nil {
			return nil, fmt.Errorf("flightlog: decode sample %d: %w", s.ID, err)
		}
		s.RecordedAt = time.UnixMilli(at)
		out = append(out, s)
	}
	return out, rows.Err()
}

type Flight struct {
	ID        string
	Target    string
	StartedAt time.Time
	EndedAt   time.Time
	Samples   int
}

// Flights lists recorded flights, newest first.
func (l *Log) Flights(ctx context.Context) ([]Flight, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT f.id, f.target, f.started_at, COALESCE(f.ended_at, 0), COUNT(s.id)
		   FROM flights f LEFT JOIN samples s ON s.flight_id = f.id
		  GROUP BY f.id ORDER BY f.started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("flightlog: query flights: %w", err)
	}
	defer rows.Close()

	var out []Flight
	for rows.Next() {
		var (
			f              Flight
			started, ended int64
		)
		if err := rows.Scan(&f.ID, &f.Target, &started, &ended, &f.Samples); err != nil {
			return nil, fmt.Errorf("flightlog: scan flight: %w", err)
		}
		f.StartedAt = time.UnixMilli(started)
		if ended != 0 {
			f.EndedAt = time.UnixMilli(ended)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
