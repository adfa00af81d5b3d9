package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BuiltInDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 0.10, cfg.InterestRate)
	assert.Equal(t, 10, cfg.Years)
	assert.Equal(t, 10000, cfg.Iterations)
	assert.Equal(t, "localhost:8080", cfg.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roi-atlas.yaml")
	content := "currency: EUR\niterations: 500\naddr: 0.0.0.0:9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 500, cfg.Iterations)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, 10, cfg.Years, "unset keys keep their defaults")
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
