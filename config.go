package chordbind

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EngineOptions holds the tunable parameters of an Engine/Driver pair:
// how long to wait for a disambiguating key before flushing, and how
// deep a chain of Remap bindings may recurse before the engine gives up
// and surfaces the remaining keys as Unhandled. It deliberately does not
// cover binding registration or persistence; see SPEC_FULL.md §4.2.
type EngineOptions struct {
	FlushTimeout  time.Duration `toml:"flush_timeout"`
	MaxRemapDepth int           `toml:"max_remap_depth"`
}

// DefaultEngineOptions returns the options NewEngine and Driver use when
// none are loaded from a config file.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		FlushTimeout:  300 * time.Millisecond,
		MaxRemapDepth: 64,
	}
}

// ConfigPath returns the default tuning-config file path, respecting
// XDG_CONFIG_HOME when set.
func ConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "chordbind.toml")
}

// LoadEngineOptions loads tuning parameters from a TOML file, starting
// from DefaultEngineOptions and overriding whatever fields are present.
// A missing file is not an error: it yields the defaults unchanged.
func LoadEngineOptions(path string) (EngineOptions, error) {
	opts := DefaultEngineOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}

	var raw struct {
		FlushTimeoutMS int `toml:"flush_timeout_ms"`
		MaxRemapDepth  int `toml:"max_remap_depth"`
	}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return opts, err
	}
	if raw.FlushTimeoutMS > 0 {
		opts.FlushTimeout = time.Duration(raw.FlushTimeoutMS) * time.Millisecond
	}
	if raw.MaxRemapDepth > 0 {
		opts.MaxRemapDepth = raw.MaxRemapDepth
	}
	return opts, nil
}
