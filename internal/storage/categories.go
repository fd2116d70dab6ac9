package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SyncCategories makes the catalog contain names in the given order. Existing
// rows keep their ids; categories absent from names are left in place since
// stored posts may reference them.
func (s *SQLiteStorage) SyncCategories(ctx context.Context, names []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for _, name := range names {
		if err := validateString(name, "category name"); err != nil {
			return err
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i, name := range names {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO categories (name, position) VALUES (?, ?)
				ON CONFLICT(name) DO UPDATE SET position = excluded.position`,
				name, i); err != nil {
				return fmt.Errorf("failed to upsert category %q: %w", name, err)
			}
		}
		slog.Debug("synced categories", "count", len(names))
		return nil
	})
}

// GetCategories returns category names in catalog order.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return names, nil
}

// CountPostsByCategory returns, for every category, how many posts detected it.
func (s *SQLiteStorage) CountPostsByCategory(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, COUNT(pc.post_id)
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		GROUP BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

// ensureCategory returns the id of name, creating it at the end of the catalog.
func ensureCategory(ctx context.Context, q queryable, name string) (int64, error) {
	if _, err := q.ExecContext(ctx, `
		INSERT OR IGNORE INTO categories (name, position)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM categories))`, name); err != nil {
		return 0, fmt.Errorf("failed to create category %q: %w", name, err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	return id, nil
}
