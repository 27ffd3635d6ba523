package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/diagfmt"
	"jsonnetlex/internal/driver"
	"jsonnetlex/internal/observ"
	"jsonnetlex/internal/trace"
	"jsonnetlex/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path...",
	Short: "Check Jsonnet files for lexical errors",
	Long: `Check lexes every file named on the command line, walking directories for
files with the configured extensions, and reports diagnostics. It exits with
status 1 when any file has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=config or auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short|sarif)")
	checkCmd.Flags().StringSlice("exclude", nil, "glob of paths to skip (repeatable)")
	checkCmd.Flags().StringSlice("ext", nil, "file extensions picked up in directories")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in json and short output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s := current

	format, err := s.formatFlag(cmd, "pretty", "json", "short", "sarif")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	withNotes, _ := cmd.Flags().GetBool("with-notes")

	opts := driver.CheckOptions{
		Jobs:           s.cfg.Check.Jobs,
		Extensions:     s.cfg.Check.Extensions,
		Exclude:        s.cfg.Check.Exclude,
		MaxDiagnostics: s.maxDiagnostics,
		Lexer:          s.lexer,
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if cmd.Flags().Changed("exclude") {
		extra, _ := cmd.Flags().GetStringSlice("exclude")
		opts.Exclude = append(append([]string(nil), opts.Exclude...), extra...)
	}
	if cmd.Flags().Changed("ext") {
		opts.Extensions, _ = cmd.Flags().GetStringSlice("ext")
	}

	useCache, _ := cmd.Flags().GetBool("cache")
	clearCache, _ := cmd.Flags().GetBool("clear-cache")
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("jsonnetlex")
		if err != nil {
			return fmt.Errorf("disk cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("disk cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "check")

	timer := observ.NewTimer()
	idx := timer.Begin("check")
	var result *driver.CheckResult
	if shouldUseTUI(mode) && format == "pretty" && !s.quiet {
		files, _ := driver.CollectFiles(args, opts.Extensions, opts.Exclude)
		result, err = runCheckWithUI(ctx, "checking", files, args, opts)
	} else {
		result, err = driver.CheckPaths(ctx, args, opts)
	}
	if result != nil {
		timer.EndCount(idx, "", len(result.Files))
	} else {
		timer.End(idx, "cancelled")
	}
	span.End("")
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("check cancelled: %w", context.Cause(ctx))
		}
		return err
	}

	bag := result.Merged()
	bag.Sort()
	bag.Dedup()

	reportIdx := timer.Begin("report")
	switch format {
	case "json":
		err = diagfmt.JSON(cmd.OutOrStdout(), bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              s.maxDiagnostics,
			IncludeNotes:     withNotes,
		})
	case "sarif":
		err = diagfmt.Sarif(cmd.OutOrStdout(), bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "jsonnetlex",
			ToolVersion:    version.Normalized(),
			InvocationArgs: os.Args[1:],
		})
	case "short":
		_, err = fmt.Fprint(cmd.OutOrStdout(), diag.FormatShortDiagnostics(bag.Items(), result.FileSet, withNotes))
	default:
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, result.FileSet, s.prettyOpts())
		if !s.quiet {
			printCheckSummary(cmd, result)
		}
	}
	timer.EndCount(reportIdx, format, bag.Len())
	if err != nil {
		return err
	}

	if s.timings {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	if result.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

func printCheckSummary(cmd *cobra.Command, result *driver.CheckResult) {
	var failed, cached, blocks int
	for _, f := range result.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			failed++
		}
		if f.Cached {
			cached++
		}
		blocks += f.Blocks
	}
	msg := fmt.Sprintf("checked %d files, %d text blocks", len(result.Files), blocks)
	if cached > 0 {
		msg += fmt.Sprintf(", %d cached", cached)
	}
	if failed > 0 {
		msg += fmt.Sprintf(", %d with errors", failed)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}
