package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/chordsheet/constants"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultDBPath, cfg.Database.Path)
	assert.Equal(t, constants.DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, constants.DefaultBackupTable, cfg.Backup.Table)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFileAndEnv(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "chordsheet.toml")
	contents := `
[database]
path = "/tmp/sheets.db"

[server]
addr = ":9999"
allowed_origins = ["http://localhost:3000"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	t.Setenv("CHORDSHEET_BACKUP_TABLE", "from-env")
	t.Setenv("CHORDSHEET_SERVER_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/sheets.db", cfg.Database.Path)
	assert.Equal(t, ":7000", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "from-env", cfg.Backup.Table)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
