package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsonnetlex/internal/config"
	"jsonnetlex/internal/diagfmt"
	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/trace"
)

const configFileHint = config.FileName

// settings is the merged view of the config file and command line flags.
// Explicit flags win over file values.
type settings struct {
	cfg            config.Config
	colorStdout    bool
	colorStderr    bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	lexer          lexer.Options
}

var (
	current  *settings
	cleanups []func()
)

func prepareRun(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	s.lexer.Tracer = trace.FromContext(cmd.Context())
	current = s
	return nil
}

func finishRun(*cobra.Command, []string) error {
	runCleanup()
	return nil
}

func runCleanup() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	pf := cmd.Root().PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(configPath, wd)
	if err != nil {
		return nil, err
	}

	if pf.Changed("color") {
		cfg.Output.Color, _ = pf.GetString("color")
	}
	if pf.Changed("max-diagnostics") {
		cfg.Output.MaxDiagnostics, _ = pf.GetInt("max-diagnostics")
	}
	if pf.Changed("max-indent") {
		cfg.Lexer.MaxIndent, _ = pf.GetInt("max-indent")
	}
	if noBlocks, _ := pf.GetBool("no-block-strings"); noBlocks {
		cfg.Lexer.BlockStrings = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{
		cfg:            cfg,
		maxDiagnostics: cfg.Output.MaxDiagnostics,
		lexer: lexer.Options{
			Block:               lexer.BlockOptions{MaxIndent: cfg.Lexer.MaxIndent},
			DisableBlockStrings: !cfg.Lexer.BlockStrings,
		},
	}
	s.quiet, _ = pf.GetBool("quiet")
	s.timings, _ = pf.GetBool("timings")

	switch strings.ToLower(cfg.Output.Color) {
	case "on":
		s.colorStdout, s.colorStderr = true, true
	case "off":
	default:
		s.colorStdout = isTerminal(os.Stdout)
		s.colorStderr = isTerminal(os.Stderr)
	}
	color.NoColor = !s.colorStdout
	return s, nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.colorStderr,
		Context:   2,
		ShowNotes: true,
	}
}

// formatFlag returns the --format flag of cmd or the configured default.
func (s *settings) formatFlag(cmd *cobra.Command, allowed ...string) (string, error) {
	format := s.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}
	// значение из конфига может не подходить команде
	if !cmd.Flags().Changed("format") {
		return allowed[0], nil
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(allowed, "|"))
}
