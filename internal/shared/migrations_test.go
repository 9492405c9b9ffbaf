package shared

import (
	"path/filepath"
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("schema_migrations table should exist: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one applied migration")
		}

		if _, err := db.Exec("SELECT 1 FROM recent_tracks LIMIT 1"); err != nil {
			t.Errorf("recent_tracks table should exist: %v", err)
		}

		// A second run is a no-op.
		if err := RunMigrations(db); err != nil {
			t.Errorf("re-running migrations should succeed: %v", err)
		}

		var rerunCount int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rerunCount); err != nil {
			t.Fatalf("failed to count migrations: %v", err)
		}
		if rerunCount != count {
			t.Errorf("re-running migrations should not re-apply, got %d vs %d", rerunCount, count)
		}
	})

	t.Run("RollbackMigration", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM recent_tracks LIMIT 1"); err == nil {
			t.Error("recent_tracks table should be dropped after rollback")
		}
	})

	t.Run("RollbackWithNothingApplied", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("rolling back with no applied migrations should fail")
		}
	})

	t.Run("LoadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}
		if len(migrations) == 0 {
			t.Fatal("expected embedded migrations")
		}
		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration %d missing up or down script", m.Version)
			}
		}
	})
}
