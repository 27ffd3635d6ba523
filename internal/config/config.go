// Package config finds and decodes jsonnetlex.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Find.
const FileName = "jsonnetlex.toml"

var (
	// ErrConfigSectionMissing indicates a config file without any known section.
	ErrConfigSectionMissing = errors.New("missing [lexer], [output] or [check] section")
	// ErrUnknownKey indicates keys the decoder did not recognise.
	ErrUnknownKey = errors.New("unknown configuration key")
)

// LexerConfig is the [lexer] section.
type LexerConfig struct {
	MaxIndent    int  `toml:"max_indent"`
	BlockStrings bool `toml:"block_strings"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// CheckConfig is the [check] section.
type CheckConfig struct {
	Jobs       int      `toml:"jobs"`
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

// Config is the whole file. Path is empty for the built-in defaults.
type Config struct {
	Path   string       `toml:"-"`
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
	Check  CheckConfig  `toml:"check"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			MaxIndent:    4096,
			BlockStrings: true,
		},
		Output: OutputConfig{
			Format:         "pretty",
			Color:          "auto",
			MaxDiagnostics: 256,
		},
		Check: CheckConfig{
			Jobs:       0,
			Extensions: []string{".jsonnet", ".libsonnet"},
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("lexer") && !meta.IsDefined("output") && !meta.IsDefined("check") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrConfigSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest FileName
// above startDir, otherwise Default.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

var (
	outputFormats = []string{"pretty", "json", "yaml", "msgpack", "short", "sarif"}
	colorModes    = []string{"auto", "on", "off"}
)

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Lexer.MaxIndent < 0 {
		return fmt.Errorf("[lexer].max_indent must be >= 0, got %d", c.Lexer.MaxIndent)
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("[output].format %q: expected one of %s", c.Output.Format, strings.Join(outputFormats, "|"))
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if !slices.Contains(colorModes, c.Output.Color) {
		return fmt.Errorf("[output].color %q: expected one of %s", c.Output.Color, strings.Join(colorModes, "|"))
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must be >= 0, got %d", c.Check.Jobs)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[check].extensions: %q must start with '.'", ext)
		}
	}
	for _, pat := range c.Check.Exclude {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("[check].exclude %q: %w", pat, err)
		}
	}
	return nil
}
