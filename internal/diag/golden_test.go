package diag

import (
	"testing"

	"jsonnetlex/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/sample.jsonnet", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     LexBadNumber,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		NewError(LexBadBlockString, source.Span{File: userFile, Start: 0, End: 1}, "first line\nsecond").
			WithNote(source.Span{File: userFile, Start: 2, End: 3}, "note line"),
	}

	expected := "error LEX1006 testdata/sample.jsonnet:1:1 first line second\n" +
		"warning LEX1004 testdata/sample.jsonnet:2:1 another\n" +
		"note LEX1006 testdata/sample.jsonnet:2:1 note line"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsSkipsUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{NewError(LexUnknownChar, source.Span{File: 7}, "ghost")}
	if got := FormatShortDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
