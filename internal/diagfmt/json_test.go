package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.jsonnet", []byte("x\n@\n"))

	bag := diag.NewBag(8)
	d := diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 2, End: 3}, "unknown character")
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 0, End: 1}, "after this"))
	bag.Add(diag.New(diag.SevWarning, diag.LexInfo, source.Span{File: fileID, Start: 0, End: 1}, "second"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 || out.Truncated != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	got := out.Diagnostics[0]
	if got.Code != "LEX1001" || got.Severity != "ERROR" || got.Location.File != "j.jsonnet" {
		t.Errorf("diagnostic = %+v", got)
	}
	if got.Location.StartLine != 2 || got.Location.StartCol != 1 {
		t.Errorf("location = %+v", got.Location)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "after this" {
		t.Errorf("notes = %+v", got.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.jsonnet", []byte("@"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "unknown character"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if loc := out.Diagnostics[0].Location; loc.StartLine != 0 || loc.EndByte != 1 {
		t.Errorf("location = %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Error("notes must be omitted")
	}
}
