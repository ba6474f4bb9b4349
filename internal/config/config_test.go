package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Paths.Output = "out"
	cfg.Statements.Tolerance = 0.5
	cfg.Server.Addr = "127.0.0.1:8080"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Paths.Output)
	assert.Equal(t, "uploads", cfg.Paths.Upload)
	assert.Equal(t, []string{"Comptes_Cleans.xlsx", "Financial_Statements.xlsx", "Plan_Comptable.xlsx", "Summary.xlsx"}, cfg.Outputs.Names())
	assert.Equal(t, "01.01.2023", cfg.Period.DefaultStart)
	assert.Equal(t, "31.12.2023", cfg.Period.DefaultEnd)
	assert.InDelta(t, 0.01, cfg.Statements.Tolerance, 1e-9)
	assert.Equal(t, "2979", cfg.Statements.PlugNumber)
	assert.Equal(t, "Résultat de l’exercice", cfg.Statements.PlugName)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, int64(16*1024*1024), cfg.Server.UploadLimit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, DefaultUploadLimit, cfg.Server.UploadLimit)
	assert.Equal(t, "Summary.xlsx", cfg.Outputs.Summary)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:      ":7000",
		EnvOutputDir: " /srv/out ",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/srv/out", cfg.Paths.Output)
	assert.Equal(t, "uploads", cfg.Paths.Upload)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "statements: Financial_Statements.xlsx")
	assert.Contains(t, contents, "plug_number: \"2979\"")
	assert.Contains(t, contents, "upload_limit: 16777216")
}
