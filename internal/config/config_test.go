package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[lexer]
max_indent = 64
block_strings = false

[check]
jobs = 3
exclude = ["vendor/*"]
`)
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Path = path
	want.Lexer = LexerConfig{MaxIndent: 64, BlockStrings: false}
	want.Check.Jobs = 3
	want.Check.Exclude = []string{"vendor/*"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		target error
		substr string
	}{
		{"no sections", "title = 'x'\n", ErrConfigSectionMissing, ""},
		{"unknown key", "[lexer]\nmax_indnet = 3\n", ErrUnknownKey, "lexer.max_indnet"},
		{"bad format", "[output]\nformat = 'xml'\n", nil, "[output].format"},
		{"bad color", "[output]\ncolor = 'always'\n", nil, "[output].color"},
		{"negative jobs", "[check]\njobs = -1\n", nil, "[check].jobs"},
		{"bad extension", "[check]\nextensions = ['jsonnet']\n", nil, "must start with"},
		{"bad glob", "[check]\nexclude = ['[']\n", nil, "[check].exclude"},
		{"syntax", "[lexer\n", nil, "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("err = %v, want %v", err, tt.target)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("err = %q, want it to mention %q", err, tt.substr)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[output]\nformat = 'json'\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", found, ok, err)
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}

	cfg, err := Resolve("", nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "json" || cfg.Path != path {
		t.Errorf("Resolve = %+v", cfg)
	}
}

func TestResolveDefaults(t *testing.T) {
	// t.TempDir lives under the system temp dir, which has no config above it
	cfg, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Skipf("a %s exists above the temp dir: %s", FileName, cfg.Path)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveExplicit(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.toml"), ""); err == nil {
		t.Fatal("missing explicit config must fail")
	}
}
