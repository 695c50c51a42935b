package recipe

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE recipes (id TEXT PRIMARY KEY, persona_id TEXT NOT NULL DEFAULT '', data TEXT NOT NULL, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	sample := Recipe{
		ID:           "r1",
		Name:         "Garlic Pasta",
		Ingredients:  []string{"pasta", "garlic"},
		Instructions: []string{"Boil", "Toss"},
		PersonaID:    "alex",
	}

	t.Run("SaveAndGet", func(t *testing.T) {
		repo := NewRepository(newTestDB(t))

		if err := repo.Save(ctx, sample); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.Get(ctx, "r1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected a recipe, got nil")
		}
		if got.Name != "Garlic Pasta" || len(got.Ingredients) != 2 {
			t.Errorf("Round-tripped recipe mismatch: %+v", got)
		}
	})

	t.Run("SaveRequiresID", func(t *testing.T) {
		repo := NewRepository(newTestDB(t))

		if err := repo.Save(ctx, Recipe{Name: "No ID"}); err == nil {
			t.Fatal("Expected error saving a recipe without an ID")
		}
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		repo := NewRepository(newTestDB(t))

		if err := repo.Save(ctx, sample); err != nil {
			t.Fatal(err)
		}
		updated := sample
		updated.Name = "Garlic Butter Pasta"
		if err := repo.Save(ctx, updated); err != nil {
			t.Fatal(err)
		}

		got, err := repo.Get(ctx, "r1")
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "Garlic Butter Pasta" {
			t.Errorf("Expected updated name, got %q", got.Name)
		}
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("Expected 1 row after replace, got %d", count)
		}
	})

	t.Run("GetMissingReturnsNil", func(t *testing.T) {
		repo := NewRepository(newTestDB(t))

		got, err := repo.Get(ctx, "nope")
		if err != nil {
			t.Fatalf("Expected no error for missing recipe, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for missing recipe, got %+v", got)
		}
	})

	t.Run("GetByIDsSkipsMissing", func(t *testing.T) {
		repo := NewRepository(newTestDB(t))

		if err := repo.Save(ctx, sample); err != nil {
			t.Fatal(err)
		}

		got, err := repo.GetByIDs(ctx, []string{"r1", "missing"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Errorf("Expected 1 recipe, got %d", len(got))
		}
	})
}
