package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
	"github.com/cmlabs-hris/training-backend-go/migrations"
)

// These tests run against a real database named by TEST_DATABASE_URL and are
// skipped without it. The schema is migrated up once per run.
var testDB *database.DB

var tables = []string{
	"change_logs",
	"training_results",
	"training_sessions",
	"training_programs",
	"employees",
	"newhire_resignations",
	"newhire_meetings",
	"newhire_trainees",
	"newhire_teams",
	"refresh_tokens",
	"users",
}

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgres integration tests")
		os.Exit(0)
	}

	if err := migrateUp(dsn); err != nil {
		fmt.Println("migrate test database:", err)
		os.Exit(1)
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(context.Background(), dsn, database.DefaultPoolConfig)
	if err != nil {
		fmt.Println("connect to test database:", err)
		os.Exit(1)
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func migrateUp(dsn string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// truncate empties every table the repositories write to.
func truncate(t *testing.T) {
	t.Helper()
	_, err := testDB.Pool.Exec(context.Background(), "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE")
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func postgresBackend() store.Backend {
	return store.Backend{
		Employees:  postgresql.NewEmployeeRepository(testDB),
		Programs:   postgresql.NewProgramRepository(testDB),
		Sessions:   postgresql.NewSessionRepository(testDB),
		Results:    postgresql.NewResultRepository(testDB),
		NewHire:    postgresql.NewNewHireRepository(testDB),
		Dashboard:  postgresql.NewDashboardRepository(testDB),
		ChangeLogs: postgresql.NewChangeLogRepository(testDB),
		Tx:         postgresql.NewTransactor(testDB),
	}
}
