package migrations_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-backoffice/internal/database/migrations"
	"ms-backoffice/internal/mapper"
	"ms-backoffice/internal/store"
)

const migrationsDir = "../../../migrations"

func TestDefaultOptions(t *testing.T) {
	opts := migrations.DefaultOptions()
	assert.Equal(t, "./migrations", opts.MigrationsDir)
	assert.False(t, opts.SeedData)
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "backoffice",
				"POSTGRES_PASSWORD": "backoffice",
				"POSTGRES_DB":       "backoffice",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}
	t.Cleanup(func() { pg.Terminate(ctx) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://backoffice:backoffice@%s:%s/backoffice?sslmode=disable", host, port.Port())
}

func run(t *testing.T, dsn string, fn func(r *migrations.Runner) error, seed bool) {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	r := migrations.NewRunner(db, migrations.MigrateOptions{MigrationsDir: migrationsDir, SeedData: seed}, nil)
	defer r.Close()
	require.NoError(t, fn(r))
}

func TestMigrationsPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}
	dsn := startPostgres(t)
	ctx := context.Background()

	run(t, dsn, func(r *migrations.Runner) error {
		if err := r.RunMigrations(); err != nil {
			return err
		}
		v, err := r.Version()
		assert.Equal(t, migrations.SchemaVersion, v)
		return err
	}, false)

	run(t, dsn, func(r *migrations.Runner) error {
		if err := r.RunMigrations(); err != nil {
			return err
		}
		v, err := r.Version()
		assert.Equal(t, uint(2), v)
		return err
	}, true)

	sqldb, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()
	s := store.New(bunDB)

	rows, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	m := mapper.New(nil)
	events := m.Events(rows)
	byID := map[string]mapper.Event{}
	for _, e := range events {
		byID[e.ID] = e
	}
	assert.Equal(t, "Harbor Hall, Lisbon", byID["evt-1"].Location)
	assert.ElementsMatch(t, []string{"Music", "Outdoor"}, byID["evt-1"].Tags)
	assert.Equal(t, "Free", byID["evt-2"].Price)
	assert.Equal(t, "Unknown", byID["evt-2"].OrganizerName)

	payments, err := s.ListPayments(ctx, "evt-1")
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	tickets, err := s.ListTickets(ctx, "evt-1")
	require.NoError(t, err)
	attendees := m.Attendees(tickets)
	require.Len(t, attendees, 3)
	for _, a := range attendees {
		if a.ID == "tk-2" {
			assert.True(t, a.CheckedIn)
			assert.Equal(t, 2, a.ScanCount)
		}
	}

	run(t, dsn, func(r *migrations.Runner) error { return r.MigrateTo(migrations.SchemaVersion) }, false)
	rows, err = s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	run(t, dsn, func(r *migrations.Runner) error { return r.MigrateDown() }, false)
	_, err = s.ListEvents(ctx)
	assert.Error(t, err)
}
