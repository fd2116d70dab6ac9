// Package testutil provides shared helpers for tests that need a real database.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/sentimind/internal/service"
	"github.com/Veraticus/sentimind/internal/storage"
)

// TestDB represents a migrated in-memory test database.
type TestDB struct {
	Storage    service.Storage
	t          *testing.T
	Categories []string
}

// SetupTestDB creates a new in-memory test database seeded with categories.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, model.DefaultTaxonomy()...)
func SetupTestDB(t *testing.T, categories ...string) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(categories) > 0 {
		if err := store.SyncCategories(ctx, categories); err != nil {
			t.Fatalf("failed to seed categories: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage:    store,
		Categories: categories,
		t:          t,
	}
}

// MustCount returns how many stored posts detected category, failing the test on error.
func (db *TestDB) MustCount(category string) int {
	db.t.Helper()
	counts, err := db.Storage.CountPostsByCategory(context.Background())
	if err != nil {
		db.t.Fatalf("failed to count posts: %v", err)
	}
	return counts[category]
}
