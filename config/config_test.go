package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.NumWorkers())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"zero top n", func(c *Config) { c.TopN = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"empty export dir", func(c *Config) { c.ExportDir = "" }},
		{"empty root", func(c *Config) { c.Roots = []string{"/tmp", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNumWorkersExplicit(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	assert.Equal(t, 3, cfg.NumWorkers())
}
