// Package config loads runtime options from hostlink.toml.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// BinderConfig holds the member-binding options.
type BinderConfig struct {
	// AllowPrivateBinding lets rules use non-public property getters.
	AllowPrivateBinding bool `toml:"allow_private_binding"`
}

// NamespaceConfig holds the namespace tracker options.
type NamespaceConfig struct {
	// Bootstrap controls whether the built-in modules register on first
	// lookup. Disable only for hosts that supply their own foundation set.
	Bootstrap bool `toml:"bootstrap"`
	// Modules names extra demo modules to register at startup (CLI only).
	Modules []string `toml:"modules"`
}

// Config is the whole hostlink.toml surface.
type Config struct {
	Binder    BinderConfig    `toml:"binder"`
	Namespace NamespaceConfig `toml:"namespace"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Namespace: NamespaceConfig{Bootstrap: true},
	}
}

// Load parses a hostlink.toml. A missing file yields the defaults; a present
// file only overrides the sections it defines.
func Load(path string) (Config, error) {
	cfg := Default()
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("binder") {
		cfg.Binder = raw.Binder
	}
	if meta.IsDefined("namespace") {
		if meta.IsDefined("namespace", "bootstrap") {
			cfg.Namespace.Bootstrap = raw.Namespace.Bootstrap
		}
		if meta.IsDefined("namespace", "modules") {
			cfg.Namespace.Modules = raw.Namespace.Modules
		}
	}
	return cfg, nil
}
