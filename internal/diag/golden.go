package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"jsonnetlex/internal/source"
)

// shortLine is one rendered row of the short format.
type shortLine struct {
	sev     string
	code    string
	path    string
	line    uint32
	col     uint32
	message string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.message)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.code, b.code),
	)
}

// FormatShortDiagnostics renders diagnostics one per line, sorted by position:
//
//	error LEX1006 path/to/file.jsonnet:3:7 message
//
// Spans in files unknown to fs are dropped. Used by golden tests and the
// CLI "short" format.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	add := func(sev string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		lines = append(lines, shortLine{
			sev:     sev,
			code:    code.ID(),
			path:    shortPath(fs.Get(sp.File).FormatPath("relative", fs.BaseDir())),
			line:    start.Line,
			col:     start.Col,
			message: strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(lines, compareShort)

	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

func shortPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
