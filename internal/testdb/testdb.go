// AngelaMos | 2026
// testdb.go

// Package testdb gives repository tests a migrated postgres schema of their
// own. Tests skip unless TEST_DATABASE_URL is set.
package testdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garage-saas/migrations"
)

const EnvURL = "TEST_DATABASE_URL"

var unsafeIdent = regexp.MustCompile(`[^a-z0-9_]+`)

// Open drops and recreates a schema named after the running test, applies
// every migration into it and returns a pool whose search_path points
// there.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set", EnvURL)
	}

	schema := schemaName(t.Name())
	base, err := pgx.ParseConfig(url)
	require.NoError(t, err)

	admin := sqlx.NewDb(stdlib.OpenDB(*base), "pgx")
	t.Cleanup(func() {
		_, _ = admin.Exec(`DROP SCHEMA IF EXISTS ` + schema + ` CASCADE`) //nolint:errcheck // test cleanup
		_ = admin.Close()                                               //nolint:errcheck // test cleanup
	})

	_, err = admin.Exec(`DROP SCHEMA IF EXISTS ` + schema + ` CASCADE`)
	require.NoError(t, err)
	_, err = admin.Exec(`CREATE SCHEMA ` + schema)
	require.NoError(t, err)

	scoped := base.Copy()
	scoped.RuntimeParams["search_path"] = schema

	m, err := migrations.NewMigrator(stdlib.OpenDB(*scoped))
	require.NoError(t, err)
	upErr := m.Up()
	srcErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		require.NoError(t, upErr)
	}
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	db := sqlx.NewDb(stdlib.OpenDB(*scoped), "pgx")
	db.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = db.Close() }) //nolint:errcheck // test cleanup

	return db
}

// schemaName joins the package directory and test name, since go test
// runs each package from its own directory.
func schemaName(testName string) string {
	pkg := "pkg"
	if wd, err := os.Getwd(); err == nil {
		pkg = filepath.Base(wd)
	}
	return "t_" + ident(pkg, 15) + "_" + ident(testName, 40)
}

func ident(s string, limit int) string {
	s = unsafeIdent.ReplaceAllString(strings.ToLower(s), "_")
	if len(s) > limit {
		s = s[:limit]
	}
	return strings.Trim(s, "_")
}

// CreateGarage inserts an active garage with a placeholder password hash.
func CreateGarage(t *testing.T, db *sqlx.DB, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowxContext(context.Background(), `
		INSERT INTO garages (garage_name, owner_name, email, phone, password)
		VALUES ($1, 'Owner', $2, '0790000000', 'x')
		RETURNING garage_id`, fmt.Sprintf("Garage %s", email), email).Scan(&id)
	require.NoError(t, err)
	return id
}
