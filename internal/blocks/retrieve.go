// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blocks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/recall-engine/pkg/types"
)

// ListBlocks returns every block with its aggregated tag list, ordered by
// id descending (most recently created first). Blocks without tags appear
// with an empty tag list.
func (s *Store) ListBlocks(ctx context.Context) ([]types.Block, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.question, b.answer, t.name
		 FROM blocks b
		 LEFT JOIN block_tags bt ON bt.block_id = b.id
		 LEFT JOIN tags t ON t.id = bt.tag_id
		 ORDER BY b.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer rows.Close()

	return collectBlocks(rows)
}

// ListTagNames returns every tag name in the catalog in insertion order.
// The catalog is unique by name, so no deduplication is applied.
func (s *Store) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindByAllTags returns the blocks whose tag set is a superset of the
// requested selection, compared case-insensitively, ordered by id
// descending. Each match carries its full tag list, not just the matched
// subset. An empty selection matches nothing: filtering by no tags is a
// valid request with an empty result, not a request for everything.
func (s *Store) FindByAllTags(ctx context.Context, selection []string) ([]types.Block, error) {
	sel := NormalizeSelection(selection)
	if len(sel) == 0 {
		return []types.Block{}, nil
	}

	placeholders := strings.Repeat("?,", len(sel)-1) + "?"
	args := make([]any, 0, len(sel)+1)
	for _, name := range sel {
		args = append(args, name)
	}
	args = append(args, len(sel))

	query := fmt.Sprintf(
		`WITH matching AS (
			SELECT bt.block_id
			FROM block_tags bt
			JOIN tags t ON t.id = bt.tag_id
			WHERE lower(t.name) IN (%s)
			GROUP BY bt.block_id
			HAVING COUNT(DISTINCT lower(t.name)) = ?
		)
		SELECT b.id, b.question, b.answer, t2.name
		FROM matching m
		JOIN blocks b ON b.id = m.block_id
		LEFT JOIN block_tags bt2 ON bt2.block_id = b.id
		LEFT JOIN tags t2 ON t2.id = bt2.tag_id
		ORDER BY b.id DESC`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying blocks by tags: %w", err)
	}
	defer rows.Close()

	return collectBlocks(rows)
}

// collectBlocks aggregates (id, question, answer, tag) rows into blocks.
// Rows for the same block must be adjacent, which the id-ordered queries
// guarantee. Tag names are deduplicated by trimmed value in first-seen
// order; aggregating row-wise instead of through GROUP_CONCAT keeps tag
// names containing commas intact.
func collectBlocks(rows *sql.Rows) ([]types.Block, error) {
	results := []types.Block{}
	seen := map[string]struct{}{}

	for rows.Next() {
		var (
			id       int64
			question string
			answer   string
			tagName  sql.NullString
		)
		if err := rows.Scan(&id, &question, &answer, &tagName); err != nil {
			return nil, fmt.Errorf("scanning block row: %w", err)
		}

		if len(results) == 0 || results[len(results)-1].ID != id {
			results = append(results, types.Block{
				ID: id, Question: question, Answer: answer, Tags: []string{},
			})
			seen = map[string]struct{}{}
		}

		if !tagName.Valid {
			continue
		}
		name := strings.TrimSpace(tagName.String)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		last := &results[len(results)-1]
		last.Tags = append(last.Tags, name)
	}

	return results, rows.Err()
}
