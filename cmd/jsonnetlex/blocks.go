package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsonnetlex/internal/diagfmt"
	"jsonnetlex/internal/driver"
	"jsonnetlex/internal/observ"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks [flags] file.jsonnet",
	Short: "List ||| text blocks of a Jsonnet file",
	Long: `Blocks prints every text block with its position, the indentation
template taken from its first content line and the dedented value`,
	Args: cobra.ExactArgs(1),
	RunE: runBlocks,
}

func init() {
	blocksCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type blocksPayload struct {
	File   string      `json:"file"`
	Blocks []blockJSON `json:"blocks"`
}

type blockJSON struct {
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
	Indent    string `json:"indent"`
	Value     string `json:"value"`
}

func runBlocks(cmd *cobra.Command, args []string) error {
	s := current
	format, err := s.formatFlag(cmd, "pretty", "json")
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	result, err := driver.Tokenize(cmd.Context(), args[0], driver.TokenizeOptions{
		MaxDiagnostics: s.maxDiagnostics,
		Lexer:          s.lexer,
		Timer:          timer,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, s.prettyOpts())
	}

	idx := timer.Begin("blocks")
	blocks := diagfmt.CollectBlocks(result.Tokens, result.FileSet, s.lexer.Block)
	timer.EndCount(idx, "", len(blocks))

	if format == "json" {
		payload := blocksPayload{File: result.File.Path, Blocks: make([]blockJSON, 0, len(blocks))}
		for _, b := range blocks {
			payload.Blocks = append(payload.Blocks, blockJSON{
				StartLine: b.Start.Line,
				StartCol:  b.Start.Col,
				EndLine:   b.End.Line,
				EndCol:    b.End.Col,
				Indent:    b.Indent,
				Value:     b.Value,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(payload)
	} else {
		err = diagfmt.FormatBlocks(cmd.OutOrStdout(), result.File.Path, blocks)
		if err == nil && len(blocks) == 0 && !s.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no text blocks")
		}
	}
	if err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	return nil
}
