// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package blocks persists question/answer blocks and their tag links in a
// SQLite database and answers multi-tag intersection queries.
package blocks

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/recall-engine/pkg/types"
)

const dbFile = "recall.db"

// Store manages the block store SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the block store database at DataDir/recall.db.
// The connection enforces foreign keys, runs in WAL mode with full
// synchronous durability, and waits up to five seconds on a locked
// database before reporting a busy error.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3",
		dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_synchronous=FULL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS blocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS block_tags (
			block_id INTEGER NOT NULL REFERENCES blocks(id) ON DELETE CASCADE,
			tag_id INTEGER NOT NULL REFERENCES tags(id),
			UNIQUE(block_id, tag_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_block_tags_tag_id ON block_tags(tag_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// CreateBlock inserts a block with its tags in a single transaction and
// returns the stored block. Question and answer must be non-empty after
// trimming; violations are reported as a ValidationError before any
// storage access. Duplicate (question, answer) pairs are allowed and
// always produce a new block. Tag names are upserted into the catalog and
// linked idempotently; the returned tag list is sorted by name.
func (s *Store) CreateBlock(ctx context.Context, question, answer string, rawTags []string) (*types.Block, error) {
	q := strings.TrimSpace(question)
	a := strings.TrimSpace(answer)
	if q == "" || a == "" {
		return nil, ValidationError("both question and answer are required")
	}

	tagList := NormalizeTags(rawTags)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO blocks (question, answer) VALUES (?, ?)`, q, a)
	if err != nil {
		return nil, fmt.Errorf("inserting block: %w", err)
	}
	blockID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading block id: %w", err)
	}

	for _, name := range tagList {
		tagID, err := upsertTag(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO block_tags (block_id, tag_id) VALUES (?, ?)`,
			blockID, tagID,
		); err != nil {
			return nil, fmt.Errorf("linking tag %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing block: %w", err)
	}

	tags, err := s.blockTagsSorted(ctx, blockID)
	if err != nil {
		return nil, err
	}

	return &types.Block{ID: blockID, Question: q, Answer: a, Tags: tags}, nil
}

// upsertTag creates the tag if absent and returns its id. Uniqueness on
// tags.name is case-sensitive: the loser of a concurrent insert race
// observes the winner's row on the follow-up lookup.
func upsertTag(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name,
	); err != nil {
		return 0, fmt.Errorf("upserting tag %q: %w", name, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM tags WHERE name = ?`, name,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("looking up tag %q: %w", name, err)
	}
	return id, nil
}

// blockTagsSorted returns the block's linked tag names sorted by name.
func (s *Store) blockTagsSorted(ctx context.Context, blockID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.name FROM tags t
		 JOIN block_tags bt ON bt.tag_id = t.id
		 WHERE bt.block_id = ?
		 ORDER BY t.name`, blockID)
	if err != nil {
		return nil, fmt.Errorf("reading block tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning tag name: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// DeleteBlock removes the block with the given id. It returns true when a
// row was deleted and false when no block had that identity. Links are
// removed by the foreign-key cascade; tags stay in the catalog even when
// the deleted block was their only reference.
func (s *Store) DeleteBlock(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting block %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading delete count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing delete: %w", err)
	}

	return affected > 0, nil
}
