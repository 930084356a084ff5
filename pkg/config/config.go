// Package config loads coursemap settings from a TOML file.
//
// The file lives at ~/.config/coursemap/config.toml (respecting
// XDG_CONFIG_HOME) and every field is optional:
//
//	output = "subject_data.json"
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "file"      # file | redis | mongo
//	dir = ""              # file backend, defaults to XDG data dir
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//
// Command-line flags override config values, which override the built-in
// defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lmarten/coursemap/pkg/errors"
)

// appName is used for XDG directory names.
const appName = "coursemap"

// Defaults for every configurable value.
const (
	DefaultOutput     = "subject_data.json"
	DefaultServerAddr = ":8080"
	DefaultBackend    = "file"
	DefaultRedisAddr  = "localhost:6379"
	DefaultMongoURI   = "mongodb://localhost:27017"
)

// Config holds all coursemap settings.
type Config struct {
	// Output is the default path the group command writes to.
	Output string `toml:"output"`

	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri"`
}

// Default returns a config populated with the built-in defaults.
func Default() Config {
	return Config{
		Output: DefaultOutput,
		Server: ServerConfig{Addr: DefaultServerAddr},
		Store: StoreConfig{
			Backend:   DefaultBackend,
			RedisAddr: DefaultRedisAddr,
			MongoURI:  DefaultMongoURI,
		},
	}
}

// Load reads the config file at path and merges it over the defaults.
// An empty path means the standard location; a missing file is not an
// error and yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Dir returns the config directory using XDG standard (~/.config/coursemap/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DataDir returns the data directory using XDG standard
// (~/.local/share/coursemap/). The file store keeps snapshots here unless
// configured otherwise.
func DataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
