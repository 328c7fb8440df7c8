package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
name: demo
source_dirs:
  - lib
  - app
warnings_as_errors: true
suppress:
  - A100
`), "corvid.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if len(cfg.SourceDirs) != 2 || cfg.SourceDirs[0] != "lib" {
		t.Errorf("SourceDirs = %v", cfg.SourceDirs)
	}
	if !cfg.WarningsAsErrors {
		t.Error("WarningsAsErrors not set")
	}
	if !cfg.Suppressed("A100") || cfg.Suppressed("A001") {
		t.Errorf("Suppress = %v", cfg.Suppress)
	}
	if !cfg.ShouldLower() {
		t.Error("lowering should default to enabled")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("name: demo\n"), "corvid.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.SourceDirs) != 1 || cfg.SourceDirs[0] != "src" {
		t.Errorf("SourceDirs = %v, want [src]", cfg.SourceDirs)
	}
}

func TestParseConfigRejectsBadSuppressCode(t *testing.T) {
	_, err := ParseConfig([]byte("suppress: [nope]\n"), "corvid.yaml")
	if err == nil || !strings.Contains(err.Error(), "not a diagnostic code") {
		t.Errorf("err = %v", err)
	}
}

func TestLowerCanBeDisabled(t *testing.T) {
	cfg, err := ParseConfig([]byte("lower: false\n"), "corvid.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ShouldLower() {
		t.Error("lower: false was ignored")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "corvid.yaml")
	if err := os.WriteFile(path, []byte("name: demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}
}

func TestFindConfigMissing(t *testing.T) {
	found, err := FindConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Errorf("found %q, want empty", found)
	}
}
