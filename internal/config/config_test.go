package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".plc.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadDefaultsMatchCodegenDefaultOptions(t *testing.T) {
	opts, err := config.Default().GenOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != codegen.DefaultOptions() {
		t.Fatalf("expected defaults to match codegen.DefaultOptions(), got %+v", opts)
	}
}

func TestLoadLazyVtableInit(t *testing.T) {
	path := writeConfig(t, "vtableInit: lazy\nindent: \"  \"\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := cfg.GenOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.VtableInit != codegen.VtableLazy {
		t.Fatalf("expected lazy vtable init, got %v", opts.VtableInit)
	}
	if opts.Indent != "  " {
		t.Fatalf("expected a two-space indent, got %q", opts.Indent)
	}
}

func TestLoadRejectsFlattenFieldLayout(t *testing.T) {
	path := writeConfig(t, "fieldLayout: flatten\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading the file itself: %v", err)
	}
	if _, err := cfg.GenOptions(); err == nil {
		t.Fatalf("expected an error for the unimplemented flatten field layout")
	}
}

func TestLoadRejectsUnknownVtableStrategy(t *testing.T) {
	path := writeConfig(t, "vtableInit: eager\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading the file itself: %v", err)
	}
	if _, err := cfg.GenOptions(); err == nil {
		t.Fatalf("expected an error for an unknown vtable strategy")
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
