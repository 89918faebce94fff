package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
scheme: elgamal
group: P-256
hash: sha256
honesty_checks: 10
cache_ttl: 30s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, SchemeElGamal, cfg.Scheme)
	assert.Equal(t, "P-256", cfg.Group)
	assert.Equal(t, 10, cfg.HonestyChecks)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)

	_, bitSpace, err := cfg.HashFunc()
	require.NoError(t, err)
	assert.Equal(t, 256, bitSpace)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "scheme: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cases := map[string]func(*Config){
		"scheme":   func(c *Config) { c.Scheme = "paillier" },
		"keyBits":  func(c *Config) { c.KeyBits = 8 },
		"group":    func(c *Config) { c.Scheme = SchemeElGamal; c.Group = "bn254" },
		"hash":     func(c *Config) { c.Hash = "md5" },
		"honesty":  func(c *Config) { c.HonestyChecks = -1 },
		"workers":  func(c *Config) { c.Workers = 0 },
		"cacheTTL": func(c *Config) { c.CacheTTL = 0 },
		"logLevel": func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
