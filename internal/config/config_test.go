package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Target != "generic" {
		t.Fatalf("expected default target 'generic', got %q", cfg.Target)
	}
	if cfg.Optimize || cfg.HidePrelude {
		t.Fatalf("expected optimize and hidePrelude to default to false")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pecco.yaml")
	content := "target: x86_64\noptimize: true\nprelude: custom_prelude.pecco\nhidePrelude: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}
	if cfg.Target != "x86_64" || !cfg.Optimize || cfg.Prelude != "custom_prelude.pecco" || !cfg.HidePrelude {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pecco.yaml")
	if err := os.WriteFile(path, []byte("optimize: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}
	if cfg.Target != "generic" {
		t.Fatalf("expected target to keep its default 'generic', got %q", cfg.Target)
	}
	if !cfg.Optimize {
		t.Fatalf("expected optimize to be overridden to true")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
