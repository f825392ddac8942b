package app

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"zetra/internal/store"
)

// Storage backends selectable with storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	// ConfigFileName is looked up inside the home directory.
	ConfigFileName = "config.yaml"

	// DefaultListen is the HTTP server's loopback address.
	DefaultListen = "127.0.0.1:3000"

	defaultHomeDir = ".zetra"
	defaultDBName  = "zetra.db"
)

// Environment variables read by Load.
const (
	EnvHome           = "ZETRA_HOME"
	EnvStorageBackend = "ZETRA_STORAGE_BACKEND"
	EnvStorageKey     = "ZETRA_STORAGE_KEY"
	EnvStorageDSN     = "ZETRA_STORAGE_DSN"
	EnvLogLevel       = "ZETRA_LOG_LEVEL"
	EnvServerListen   = "ZETRA_SERVER_LISTEN"
	EnvPort           = "PORT"
)

// ErrInvalidConfig is returned when the merged configuration is unusable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds runtime wiring options.
type Config struct {
	Home    string        `yaml:"home"`    // data directory, e.g. $HOME/.zetra
	Storage StorageConfig `yaml:"storage"` // where the profile lives
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"` // file|sqlite|memory
	Key     string `yaml:"key"`     // storage key of the profile document
	DSN     string `yaml:"dsn"`     // sqlite path; defaults to <home>/zetra.db
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoadOptions controls where Load looks. Zero values pick the defaults.
type LoadOptions struct {
	// EnvFile is the dotenv file to read; empty means ".env". A missing file
	// is ignored.
	EnvFile string
	// Getenv looks up environment variables; nil means os.Getenv.
	Getenv func(string) string
	// Overrides is applied last, field by field, for non-empty values. Its
	// Home also selects where config.yaml is read from.
	Overrides Config
}

// Default returns the built-in configuration rooted at home.
func Default(home string) Config {
	return Config{
		Home: home,
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     store.DefaultStorageKey.String(),
		},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Listen: DefaultListen},
	}
}

// DefaultHome returns ~/.zetra.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultHomeDir), nil
}

// Load merges every configuration source and validates the result.
func Load(opts LoadOptions) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, envFile, err)
	}
	// Real environment wins over the dotenv file.
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	home := firstNonEmpty(opts.Overrides.Home, lookup(EnvHome))
	if home == "" {
		if home, err = DefaultHome(); err != nil {
			return Config{}, err
		}
	}

	cfg := Default(home)
	if err := cfg.mergeFile(filepath.Join(home, ConfigFileName)); err != nil {
		return Config{}, err
	}
	cfg.mergeEnv(lookup)
	cfg.merge(opts.Overrides)

	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	c.merge(fileCfg)
	return nil
}

func (c *Config) mergeEnv(lookup func(string) string) {
	if port := lookup(EnvPort); port != "" {
		host, _, err := net.SplitHostPort(c.Server.Listen)
		if err != nil || host == "" {
			host = "127.0.0.1"
		}
		c.Server.Listen = net.JoinHostPort(host, port)
	}
	c.merge(Config{
		Home: lookup(EnvHome),
		Storage: StorageConfig{
			Backend: lookup(EnvStorageBackend),
			Key:     lookup(EnvStorageKey),
			DSN:     lookup(EnvStorageDSN),
		},
		Log:    LogConfig{Level: lookup(EnvLogLevel)},
		Server: ServerConfig{Listen: lookup(EnvServerListen)},
	})
}

// merge copies the non-empty fields of o onto c.
func (c *Config) merge(o Config) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&c.Home, o.Home)
	set(&c.Storage.Backend, o.Storage.Backend)
	set(&c.Storage.Key, o.Storage.Key)
	set(&c.Storage.DSN, o.Storage.DSN)
	set(&c.Log.Level, o.Log.Level)
	set(&c.Server.Listen, o.Server.Listen)
}

func (c *Config) finish() error {
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendSQLite:
		if c.Storage.DSN == "" {
			c.Storage.DSN = filepath.Join(c.Home, defaultDBName)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q (want file, sqlite or memory)", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: empty storage key", ErrInvalidConfig)
	}
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("%w: server.listen %q: %v", ErrInvalidConfig, c.Server.Listen, err)
	}
	return nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
