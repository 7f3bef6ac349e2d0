// Package config loads taskmaster settings from defaults, an optional TOML
// file, the environment and global command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultDBPath         = "tasks.db"
	DefaultConfigFile     = "taskmaster.toml"
	DefaultRequestTimeout = 10 * time.Second
	// DefaultNATSPort keeps the embedded NATS server off the network. Modules
	// talk to it over an in-process connection.
	DefaultNATSPort = 0

	// Bounds of a configured NATS listener port.
	MinNATSPort = 1024
	MaxNATSPort = 65535
)

// Environment variables.
const (
	EnvConfig         = "TASKMASTER_CONFIG"
	EnvDBPath         = "TASKMASTER_DB_PATH"
	EnvDBDebug        = "TASKMASTER_DB_DEBUG"
	EnvVerbose        = "TASKMASTER_VERBOSE"
	EnvNATSPort       = "TASKMASTER_NATS_PORT"
	EnvRequestTimeout = "TASKMASTER_REQUEST_TIMEOUT"
)

// Config holds the settings of one invocation.
type Config struct {
	DBPath         string        `toml:"db_path"`
	DBDebug        bool          `toml:"db_debug"`
	Verbose        bool          `toml:"verbose"`
	NATSPort       int           `toml:"nats_port"`
	RequestTimeout time.Duration `toml:"request_timeout"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:         DefaultDBPath,
		NATSPort:       DefaultNATSPort,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Load builds the configuration from args (without the program name) and
// returns the arguments left after the global flags.
func Load(args []string, usage io.Writer) (*Config, []string, error) {
	fs := flag.NewFlagSet("taskmaster", flag.ContinueOnError)
	fs.SetOutput(usage)
	dbPath := fs.String("db", DefaultDBPath, "Path of the SQLite task database")
	configFile := fs.String("config", "", "Path of a TOML config file")
	verbose := fs.Bool("verbose", false, "Log application events")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := Default()

	path, explicit := *configFile, set["config"]
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultConfigFile
		}
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, nil, err
	}

	if set["db"] {
		cfg.DBPath = *dbPath
	}
	if set["verbose"] {
		cfg.Verbose = *verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

// loadFile merges the TOML file at path. A missing file is only an error when
// it was asked for explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.ConfigFile = path
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvDBDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDBDebug, err)
		}
		c.DBDebug = b
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	if v := os.Getenv(EnvNATSPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvNATSPort, err)
		}
		c.NATSPort = port
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.NATSPort != DefaultNATSPort && (c.NATSPort < MinNATSPort || c.NATSPort > MaxNATSPort) {
		return fmt.Errorf("invalid NATS port %d: must be 0 (no listener) or between %d and %d",
			c.NATSPort, MinNATSPort, MaxNATSPort)
	}
	return nil
}
