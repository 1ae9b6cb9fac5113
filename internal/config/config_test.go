package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "index.html")
	require.NoError(t, os.WriteFile(file, []byte("<html></html>"), 0644))

	baseConfig := func() *Config { // Helper to create a baseline valid config
		return &Config{
			RootDirectory: root,
			Port:          DefaultPort,
			BindAddress:   DefaultBindAddress,
		}
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"valid kernel assigned port", func(c *Config) { c.Port = 0 }, ""},
		{"valid upper port", func(c *Config) { c.Port = 65535 }, ""},
		{"valid loopback bind", func(c *Config) { c.BindAddress = "127.0.0.1" }, ""},
		{"missing root", func(c *Config) { c.RootDirectory = "" }, "root directory is required"},
		{"relative root", func(c *Config) { c.RootDirectory = "portfolio" }, "root directory must be an absolute path: portfolio"},
		{"unclean root", func(c *Config) { c.RootDirectory = root + "/sub/.." }, "root directory must be a clean path: " + root + "/sub/.."},
		{"nonexistent root", func(c *Config) { c.RootDirectory = filepath.Join(root, "missing") }, "root directory does not exist: " + filepath.Join(root, "missing")},
		{"root is a file", func(c *Config) { c.RootDirectory = file }, "root directory is not a directory: " + file},
		{"negative port", func(c *Config) { c.Port = -1 }, "port must be between 0 and 65535"},
		{"port too large", func(c *Config) { c.Port = 65536 }, "port must be between 0 and 65535"},
		{"hostname bind", func(c *Config) { c.BindAddress = "localhost" }, `bind address must be an IP address: "localhost"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorMsg, err.Error())
		})
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultBindAddress, cfg.BindAddress)
	assert.True(t, filepath.IsAbs(cfg.RootDirectory))
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{BindAddress: "0.0.0.0", Port: 8080}
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())

	cfg = &Config{BindAddress: "::1", Port: 9000}
	assert.Equal(t, "[::1]:9000", cfg.Addr())
}
