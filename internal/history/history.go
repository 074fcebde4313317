// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package history keeps evaluated expressions in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by a Store after Close.
var ErrClosed = errors.New("history store is closed")

// Entry is one evaluated expression.
type Entry struct {
	ID         uuid.UUID
	Expression string
	Magnitude  string
	Unit       string
	Rules      []string // qualified names of the rules applied, in order
	CreatedAt  time.Time
}

// Result is the magnitude and unit joined for display.
func (e Entry) Result() string {
	if e.Unit == "" {
		return e.Magnitude
	}
	return e.Magnitude + " " + e.Unit
}

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id TEXT PRIMARY KEY,
	expression TEXT NOT NULL,
	magnitude TEXT NOT NULL,
	unit TEXT NOT NULL DEFAULT '',
	rules TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
`

// Open opens (creating if needed) the database at path and its schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug("opened history", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Save records e, assigning an id and timestamp when they are unset.
func (s *Store) Save(ctx context.Context, e Entry) (Entry, error) {
	if s.db == nil {
		return Entry{}, ErrClosed
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO history (id, expression, magnitude, unit, rules, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID.String(), e.Expression, e.Magnitude, e.Unit, strings.Join(e.Rules, ","), e.CreatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to save %q: %w", e.Expression, err)
	}

	s.logger.Debug("saved history", "id", e.ID, "expression", e.Expression)
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	query := `
	SELECT id, expression, magnitude, unit, rules, created_at
	FROM history
	ORDER BY created_at DESC
	LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			id    string
			rules string
		)
		if err := rows.Scan(&id, &e.Expression, &e.Magnitude, &e.Unit, &rules, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad history id %q: %w", id, err)
		}
		if rules != "" {
			e.Rules = strings.Split(rules, ",")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
