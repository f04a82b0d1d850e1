package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/trendr/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*Bolt, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.bolt")

	db, err := NewBolt(dbPath, 1024)
	require.NoError(t, err)

	return db, func() { _ = db.Close() }
}

// media returns every medium available in this environment, each with a
// 1KiB value limit.
func media(t *testing.T) map[string]Medium {
	t.Helper()

	dir := t.TempDir()

	bolt, err := NewBolt(filepath.Join(dir, "kv.bolt"), 1024)
	require.NoError(t, err)

	lite, err := NewSQLite(filepath.Join(dir, "kv.db"), 1024)
	require.NoError(t, err)

	out := map[string]Medium{"bolt": bolt, "sqlite": lite}

	if dsn := os.Getenv("TRENDR_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := NewPostgres(dsn, 1024)
		require.NoError(t, err)
		require.NoError(t, pg.db.Where("1 = 1").Delete(&KVEntry{}).Error)
		out["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, m := range out {
			_ = m.Close()
		}
	})

	return out
}

func TestMedium_GetSetRemove(t *testing.T) {
	for name, m := range media(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Ping())

			_, ok, err := m.Get("missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, m.Set("k", "v1"))
			require.NoError(t, m.Set("k", "v2"))

			v, ok, err := m.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "v2", v)

			require.NoError(t, m.Remove("k"))
			require.NoError(t, m.Remove("k"))

			_, ok, err = m.Get("k")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestMedium_QuotaExceeded(t *testing.T) {
	for name, m := range media(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Set("k", "small"))

			err := m.Set("k", strings.Repeat("x", 1025))
			require.ErrorIs(t, err, ErrQuotaExceeded)

			v, _, err := m.Get("k")
			require.NoError(t, err)
			require.Equal(t, "small", v)
		})
	}
}

func TestBolt_Unlimited(t *testing.T) {
	db, err := NewBolt(filepath.Join(t.TempDir(), "big.bolt"), 0)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Set("k", strings.Repeat("x", 1<<16)))
}

func TestBolt_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.bolt")

	db, err := NewBolt(path, 0)
	require.NoError(t, err)
	require.NoError(t, db.Set("k", "kept"))
	require.NoError(t, db.Close())

	db, err = NewBolt(path, 0)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	v, ok, err := db.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "kept", v)
}

func TestSQLite_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	db, err := NewSQLite(path, 0)
	require.NoError(t, err)

	version, err := NewMigrator(db.db).CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, 1, version)
	require.NoError(t, db.Close())

	db, err = NewSQLite(path, 0)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	version, err = NewMigrator(db.db).CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, 1, version)
}

func TestMigrator_DownReversesUp(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "down.db"), 0)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Set("k", "v"))

	migrator := NewMigrator(db.db)
	require.NoError(t, migrator.MigrateDown())

	version, err := migrator.CurrentVersion()
	require.NoError(t, err)
	require.Zero(t, version)

	var tables int
	require.NoError(t, db.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&tables))
	require.Zero(t, tables)

	require.ErrorContains(t, migrator.MigrateDown(), "no migrations to roll back")

	require.NoError(t, migrator.MigrateUp())

	_, ok, err := db.Get("k")
	require.NoError(t, err)
	require.False(t, ok, "rolled back data must not survive")
}

func TestMigrator_LoadMigrations(t *testing.T) {
	migrations, err := NewMigrator(nil).LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	require.Equal(t, 1, migrations[0].Version)
	require.Equal(t, "create kv", migrations[0].Description)
	require.Contains(t, migrations[0].UpSQL, "CREATE TABLE IF NOT EXISTS kv")
	require.NotEmpty(t, migrations[0].DownSQL)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StoreConfig
		want    any
		wantErr bool
	}{
		{name: "bolt", cfg: config.StoreConfig{Driver: config.DriverBolt, Path: filepath.Join(dir, "a.bolt")}, want: &Bolt{}},
		{name: "sqlite", cfg: config.StoreConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "a.db")}, want: &SQLite{}},
		{name: "unknown", cfg: config.StoreConfig{Driver: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Open(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			defer func() { _ = m.Close() }()
			require.IsType(t, tt.want, m)
		})
	}
}
