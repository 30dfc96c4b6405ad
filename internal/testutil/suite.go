// internal/testutil/suite.go - shared setup for package tests
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"jgpos/internal/catalog"
	"jgpos/internal/storage"
)

// Suite provisions a real sqlite-backed store in a temp directory, one
// database per test, removed on cleanup.
type Suite struct {
	Store   *storage.SQLite
	Catalog *catalog.Catalog
	Dir     string
}

func NewSuite(t *testing.T) *Suite {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, fmt.Sprintf("test_%d.db", time.Now().UnixNano()))

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return &Suite{
		Store:   store,
		Catalog: catalog.New(store),
		Dir:     dir,
	}
}

// SeedProducts writes the given products as the full catalog.
func (s *Suite) SeedProducts(t *testing.T, products []catalog.Product) {
	t.Helper()
	if err := s.Catalog.SaveProducts(context.Background(), products); err != nil {
		t.Fatalf("Failed to seed products: %v", err)
	}
}

// SampleProducts returns a small fixed catalog for tests.
func SampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Name: "Cement Bag", Price: 250, Category: "Construction", Stock: 5, MinStock: 2},
		{ID: "2", Name: "Plywood Sheet", Price: 480.50, Category: "Construction", Stock: 0, MinStock: 1},
		{ID: "3", Name: "Nails 1kg", Price: 85.25, Category: "Hardware", Stock: 40, MinStock: 10},
	}
}
