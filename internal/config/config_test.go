package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostlink.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if !cfg.Namespace.Bootstrap {
		t.Fatalf("default must bootstrap")
	}
	if cfg.Binder.AllowPrivateBinding {
		t.Fatalf("private binding must default off")
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
[binder]
allow_private_binding = true

[namespace]
bootstrap = false
modules = ["geometry"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Binder.AllowPrivateBinding {
		t.Fatalf("allow_private_binding not applied")
	}
	if cfg.Namespace.Bootstrap {
		t.Fatalf("bootstrap override not applied")
	}
	if len(cfg.Namespace.Modules) != 1 || cfg.Namespace.Modules[0] != "geometry" {
		t.Fatalf("modules = %v", cfg.Namespace.Modules)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[namespace]
modules = ["geometry"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// An undefined key keeps its default even when its section is present.
	if !cfg.Namespace.Bootstrap {
		t.Fatalf("bootstrap default lost")
	}
	if len(cfg.Namespace.Modules) != 1 {
		t.Fatalf("modules = %v", cfg.Namespace.Modules)
	}
	if cfg.Binder.AllowPrivateBinding {
		t.Fatalf("binder section must stay default")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "[binder\nallow_private_binding = true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
