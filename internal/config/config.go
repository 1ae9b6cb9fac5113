package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DefaultPort is the fixed port the server listens on.
	DefaultPort = 8080
	// DefaultBindAddress binds every interface so the LAN can reach the server.
	DefaultBindAddress = "0.0.0.0"
)

// Config holds the server configuration. It is built once at startup and
// passed explicitly to every component; nothing reads it from package state.
type Config struct {
	RootDirectory string
	Port          int
	BindAddress   string
}

// Default returns the fixed configuration: the directory holding the running
// executable is served on all interfaces at DefaultPort.
func Default() (*Config, error) {
	root, err := executableDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		RootDirectory: root,
		Port:          DefaultPort,
		BindAddress:   DefaultBindAddress,
	}, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("could not locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Validate checks if the configuration values are valid.
// A Port of 0 asks the kernel for a free port.
func (c *Config) Validate() error {
	if c.RootDirectory == "" {
		return fmt.Errorf("root directory is required")
	}
	if !filepath.IsAbs(c.RootDirectory) {
		return fmt.Errorf("root directory must be an absolute path: %s", c.RootDirectory)
	}
	if filepath.Clean(c.RootDirectory) != c.RootDirectory {
		return fmt.Errorf("root directory must be a clean path: %s", c.RootDirectory)
	}

	info, err := os.Stat(c.RootDirectory)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("root directory does not exist: %s", c.RootDirectory)
		}
		return fmt.Errorf("error accessing root directory: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root directory is not a directory: %s", c.RootDirectory)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}

	if net.ParseIP(c.BindAddress) == nil {
		return fmt.Errorf("bind address must be an IP address: %q", c.BindAddress)
	}

	return nil
}

// Addr returns the host:port the listener binds.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}
