package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsonnetlex/internal/diagfmt"
	"jsonnetlex/internal/driver"
	"jsonnetlex/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.jsonnet",
	Short: "Tokenize a Jsonnet source file",
	Long:  `Tokenize breaks down a Jsonnet source file into its constituent tokens. Use - to read stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	s := current

	format, err := s.formatFlag(cmd, "pretty", "json", "yaml", "msgpack")
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	timer := observ.NewTimer()
	result, err := driver.Tokenize(cmd.Context(), filePath, driver.TokenizeOptions{
		MaxDiagnostics: s.maxDiagnostics,
		Lexer:          s.lexer,
		Timer:          timer,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, s.prettyOpts())
	}

	// Выводим токены в выбранном формате
	outIdx := timer.Begin("output")
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		stream := diagfmt.BuildTokenStream(result.File.Path, result.Tokens, s.lexer.Block)
		switch format {
		case "json":
			err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), stream)
		case "yaml":
			err = diagfmt.FormatTokensYAML(cmd.OutOrStdout(), stream)
		case "msgpack":
			err = diagfmt.FormatTokensMsgpack(cmd.OutOrStdout(), stream)
		}
	}
	timer.EndCount(outIdx, format, len(result.Tokens))
	if err != nil {
		return err
	}

	if s.timings {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	return nil
}
