package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jsonnetlex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jsonnetlex",
	Short: "Jsonnet lexer and text block inspector",
	Long: `jsonnetlex tokenizes Jsonnet sources, lists ||| text blocks with their
indentation templates and checks trees of files for lexical errors`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  prepareRun,
	PersistentPostRunE: finishRun,
}

// exitError carries a process exit code without printing anything.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and persistent flags and executes the root command.
// A failed command exits with status 1, or with the code of an exitError.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Normalized()

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 256, "maximum number of diagnostics to show")
	pf.String("config", "", "path to "+configFileHint+" (default: nearest one above the working directory)")
	pf.Int("max-indent", 0, "longest text block indentation accepted, in codepoints (0=config or 4096)")
	pf.Bool("no-block-strings", false, "lex ||| as || and |")

	// Трассировка
	pf.String("trace", "", "trace output path (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0=off)")

	// Профилирование
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime execution trace to this file")

	err := rootCmd.Execute()
	runCleanup()
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "jsonnetlex: %v\n", err)
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
