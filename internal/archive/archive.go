// Package archive keeps encoded form submissions in a SQLite database.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no submission has the id.
var ErrNotFound = errors.New("archive: submission not found")

const defaultListLimit = 20

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Submission is one archived encoded form value.
type Submission struct {
	ID        string            `json:"id"`
	Form      string            `json:"form"`
	Payload   map[string]string `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
}

// Archive stores submissions. It is safe for concurrent use.
type Archive struct {
	db     *sql.DB
	logger *slog.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Option configures an Archive.
type Option func(*Archive)

// WithLogger routes archive diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Open opens or creates the database at path, creating parent directories.
func Open(path string, options ...Option) (*Archive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("archive: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("archive: create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}

	a := &Archive{
		db:      db,
		logger:  slog.Default(),
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: migrate: %w", err)
	}
	return a, nil
}

func (a *Archive) migrate() error {
	_, err := a.db.Exec(`
	CREATE TABLE IF NOT EXISTS submissions (
		id         TEXT PRIMARY KEY,
		form       TEXT NOT NULL,
		payload    TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_submissions_form ON submissions(form, created_at DESC);
	`)
	return err
}

func (a *Archive) newID(now time.Time) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), a.entropy).String()
}

// Save archives payload under formName and returns the stored submission.
func (a *Archive) Save(ctx context.Context, formName string, payload map[string]string) (Submission, error) {
	formName = strings.TrimSpace(formName)
	if formName == "" {
		return Submission{}, errors.New("archive: form name is required")
	}
	if payload == nil {
		payload = map[string]string{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Submission{}, fmt.Errorf("archive: encode payload: %w", err)
	}

	now := time.Now().UTC()
	sub := Submission{
		ID:        a.newID(now),
		Form:      formName,
		Payload:   copyPayload(payload),
		CreatedAt: now,
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO submissions (id, form, payload, created_at) VALUES (?, ?, ?, ?)`,
		sub.ID, sub.Form, string(encoded), now.Format(timeLayout),
	)
	if err != nil {
		return Submission{}, fmt.Errorf("archive: insert: %w", err)
	}
	a.logger.Debug("submission archived", "id", sub.ID, "form", sub.Form, "keys", len(payload))
	return sub, nil
}

// Get returns the submission with id.
func (a *Archive) Get(ctx context.Context, id string) (Submission, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, form, payload, created_at FROM submissions WHERE id = ?`, strings.TrimSpace(id))
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sub, err
}

// List returns the newest submissions of formName first. A blank formName
// lists every form; a non-positive limit uses the default of 20.
func (a *Archive) List(ctx context.Context, formName string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, form, payload, created_at FROM submissions`
	var args []any
	if name := strings.TrimSpace(formName); name != "" {
		query += ` WHERE form = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(s scanner) (Submission, error) {
	var (
		sub       Submission
		payload   string
		createdAt string
	)
	if err := s.Scan(&sub.ID, &sub.Form, &payload, &createdAt); err != nil {
		return Submission{}, err
	}
	if err := json.Unmarshal([]byte(payload), &sub.Payload); err != nil {
		return Submission{}, fmt.Errorf("archive: decode payload %s: %w", sub.ID, err)
	}
	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Submission{}, fmt.Errorf("archive: parse created_at %s: %w", sub.ID, err)
	}
	sub.CreatedAt = created
	return sub, nil
}

func copyPayload(payload map[string]string) map[string]string {
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
