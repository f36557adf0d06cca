// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/pkg/types"
)

// Store materializes a corpus into a SQLite index with FTS5 full-text
// search over titles, topics, and sources. The index is a derived
// artifact: Materialize replaces its contents wholesale from a built
// corpus, it is never the store of record.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot index database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id INTEGER,
			slug TEXT NOT NULL,
			title TEXT,
			difficulty TEXT,
			acceptance_rate REAL,
			frequency REAL,
			url TEXT,
			source TEXT NOT NULL,
			is_premium TEXT,
			timeframe TEXT,
			topics TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_source ON questions(source)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='questions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE questions_fts USING fts5(title, topics, source, content=questions, content_rowid=rowid)`,
			`CREATE TRIGGER questions_ai AFTER INSERT ON questions BEGIN
				INSERT INTO questions_fts(rowid, title, topics, source) VALUES (new.rowid, new.title, new.topics, new.source);
			END`,
			`CREATE TRIGGER questions_ad AFTER DELETE ON questions BEGIN
				INSERT INTO questions_fts(questions_fts, rowid, title, topics, source) VALUES('delete', old.rowid, old.title, old.topics, old.source);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Materialize replaces the index contents with the given corpus in one
// transaction. Running it twice over the same corpus leaves the same row
// count, so rebuild jobs are idempotent.
func (s *Store) Materialize(ctx context.Context, c *corpus.Corpus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clearing questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (id, slug, title, difficulty, acceptance_rate, frequency, url, source, is_premium, timeframe, topics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range c.Questions {
		_, err := stmt.ExecContext(ctx,
			q.ID, q.Slug, q.Title, string(q.Difficulty), q.AcceptanceRate,
			q.Frequency, q.URL, q.Source, q.IsPremium, string(q.Timeframe),
			strings.Join(q.Topics, ", "),
		)
		if err != nil {
			return fmt.Errorf("inserting question %s: %w", q.Slug, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of indexed questions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	return n, nil
}

// IndexEntry is one full-text search hit from the snapshot index.
type IndexEntry struct {
	Slug       string           `json:"slug"`
	Title      string           `json:"title"`
	Source     string           `json:"source"`
	Difficulty types.Difficulty `json:"difficulty"`
}

// Search runs an FTS5 match over titles, topics, and sources and returns
// up to limit entries ranked by relevance.
func (s *Store) Search(ctx context.Context, match string, limit int) ([]IndexEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT q.slug, q.title, q.source, q.difficulty
		 FROM questions_fts
		 JOIN questions q ON q.rowid = questions_fts.rowid
		 WHERE questions_fts MATCH ?
		 ORDER BY questions_fts.rank
		 LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var entries []IndexEntry
	for rows.Next() {
		var e IndexEntry
		var difficulty string
		if err := rows.Scan(&e.Slug, &e.Title, &e.Source, &difficulty); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Difficulty = types.Difficulty(difficulty)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
