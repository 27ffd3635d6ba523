package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
	"jsonnetlex/internal/trace"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string, opts lexer.Options) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsonnet", []byte(input))
	reporter := &testReporter{}
	opts.Reporter = reporter
	return lexer.New(fs.Get(id), opts), reporter
}

func collect(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"local", "local x = 1; x", []token.Kind{
			token.KwLocal, token.Ident, token.Assign, token.NumberLit, token.Semicolon, token.Ident, token.EOF,
		}},
		{"object fields", "{ a: 1, b:: 2, c::: 3 }", []token.Kind{
			token.LBrace, token.Ident, token.Colon, token.NumberLit, token.Comma,
			token.Ident, token.ColonColon, token.NumberLit, token.Comma,
			token.Ident, token.Colon3, token.NumberLit, token.RBrace, token.EOF,
		}},
		{"keywords", "if true then self.x else super.y", []token.Kind{
			token.KwIf, token.KwTrue, token.KwThen, token.KwSelf, token.Dot, token.Ident,
			token.KwElse, token.KwSuper, token.Dot, token.Ident, token.EOF,
		}},
		{"import forms", "import importstr importbin tailstrict", []token.Kind{
			token.KwImport, token.KwImportstr, token.KwImportbin, token.KwTailstrict, token.EOF,
		}},
		{"operators", "a<=b>=c==d!=e<<f>>g&&h||i&j|k^l%m~n!o", []token.Kind{
			token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.EqEq, token.Ident,
			token.BangEq, token.Ident, token.Shl, token.Ident, token.Shr, token.Ident, token.AndAnd,
			token.Ident, token.OrOr, token.Ident, token.Amp, token.Ident, token.Pipe, token.Ident,
			token.Caret, token.Ident, token.Percent, token.Ident, token.Tilde, token.Ident, token.Bang,
			token.Ident, token.EOF,
		}},
		{"dollar and calls", "$.f(x)[0]", []token.Kind{
			token.Dollar, token.Dot, token.Ident, token.LParen, token.Ident, token.RParen,
			token.LBracket, token.NumberLit, token.RBracket, token.EOF,
		}},
		{"function", "function(a, b=2) a + b - 1 * 2 / 3", []token.Kind{
			token.KwFunction, token.LParen, token.Ident, token.Comma, token.Ident, token.Assign,
			token.NumberLit, token.RParen, token.Ident, token.Plus, token.Ident, token.Minus,
			token.NumberLit, token.Star, token.NumberLit, token.Slash, token.NumberLit, token.EOF,
		}},
		{"text block", "local s = |||\n  hi\n|||; s", []token.Kind{
			token.KwLocal, token.Ident, token.Assign, token.BlockString, token.Semicolon, token.Ident, token.EOF,
		}},
		{"empty", "", []token.Kind{token.EOF}},
		{"only trivia", "  // c\n# d\n/* e */", []token.Kind{token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input, lexer.Options{})
			got := kinds(collect(lx))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	lx, rep := makeTestLexer("0 12 1.5 2e10 1E+3 4e-2 1. 01", lexer.Options{})
	toks := collect(lx)
	want := []string{"0", "12", "1.5", "2e10", "1E+3", "4e-2", "1.", "0", "1", ""}
	if diff := cmp.Diff(want, texts(toks)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	for _, tok := range toks[:len(toks)-1] {
		if tok.Kind != token.NumberLit {
			t.Errorf("%q: kind %v", tok.Text, tok.Kind)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.diagnostics)
	}
}

func TestBadNumber(t *testing.T) {
	lx, rep := makeTestLexer("1e+", lexer.Options{})
	tok := lx.Next()
	if tok.Kind != token.Invalid || tok.Text != "1e+" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	if diff := cmp.Diff([]diag.Code{diag.LexBadNumber}, rep.codes()); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		codes []diag.Code
	}{
		{`"plain"`, token.StringLit, nil},
		{`"esc \" \\ \/ \b \f \n \r \t"`, token.StringLit, nil},
		{`"éꯍ"`, token.StringLit, nil},
		{`"юникод"`, token.StringLit, nil},
		{`"\q"`, token.StringLit, []diag.Code{diag.LexBadEscape}},
		{`"\u12g4"`, token.StringLit, []diag.Code{diag.LexBadEscape}},
		{`"open`, token.Invalid, []diag.Code{diag.LexUnterminatedString}},
		{"\"line\nbreak\"", token.Invalid, []diag.Code{diag.LexUnterminatedString, diag.LexUnterminatedString}},
	}
	for _, tt := range tests {
		lx, rep := makeTestLexer(tt.input, lexer.Options{})
		tok := lx.Next()
		if tok.Kind != tt.kind {
			t.Errorf("%s: kind %v, want %v", tt.input, tok.Kind, tt.kind)
		}
		collect(lx)
		if diff := cmp.Diff(tt.codes, rep.codes(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s: codes (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("# c\n// d\n/* e */ \tx", lexer.Options{})
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "x" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	var got []token.TriviaKind
	for _, tr := range tok.Leading {
		got = append(got, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trivia (-want +got):\n%s", diff)
	}
	if tok.Leading[4].Text != "/* e */" {
		t.Errorf("block comment text %q", tok.Leading[4].Text)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("x /* never", lexer.Options{})
	got := kinds(collect(lx))
	if diff := cmp.Diff([]token.Kind{token.Ident, token.EOF}, got); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]diag.Code{diag.LexUnterminatedBlockComment}, rep.codes()); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("@λ", lexer.Options{})
	toks := collect(lx)
	if diff := cmp.Diff([]string{"@", "λ", ""}, texts(toks)); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]diag.Code{diag.LexUnknownChar, diag.LexUnknownChar}, rep.codes()); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

func TestBlockStringToken(t *testing.T) {
	src := "x: |||\n  a\n  b\n|||,"
	lx, rep := makeTestLexer(src, lexer.Options{})
	toks := collect(lx)
	bs := toks[2]
	if bs.Kind != token.BlockString {
		t.Fatalf("kind %v", bs.Kind)
	}
	if bs.Text != "|||\n  a\n  b\n|||" {
		t.Errorf("text %q", bs.Text)
	}
	if bs.Span.Start != 3 || int(bs.Span.End) != len(src)-1 {
		t.Errorf("span %v", bs.Span)
	}
	if toks[3].Kind != token.Comma {
		t.Errorf("after block: %v", toks[3].Kind)
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("diagnostics: %v", rep.diagnostics)
	}

	got, err := lexer.Unquote(bs.Text, lexer.BlockOptions{})
	if err != nil || got != "a\nb\n" {
		t.Errorf("Unquote = %q, %v", got, err)
	}
}

func TestBadBlockString(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	lx, rep := makeTestLexer("|||\n  a\n b\n|||", lexer.Options{Tracer: ring})
	tok := lx.Next()
	if tok.Kind != token.Invalid || tok.Text != "|||" || tok.Span.Start != 0 || tok.Span.End != 3 {
		t.Fatalf("got %v %q %v", tok.Kind, tok.Text, tok.Span)
	}
	// после неудачи съеден только открывающий |||, остаток лексится заново
	rest := kinds(collect(lx))
	want := []token.Kind{token.Ident, token.Ident, token.Invalid, token.EOF}
	if diff := cmp.Diff(want, rest); diff != "" {
		t.Errorf("rest (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]diag.Code{diag.LexBadBlockString, diag.LexBadBlockString}, rep.codes()); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if d := rep.diagnostics[0]; d.Primary.Start != 0 || d.Primary.End != 3 {
		t.Errorf("diagnostic span %v", d.Primary)
	}
	if msg := rep.diagnostics[0].Message; msg != "malformed block string" {
		t.Errorf("diagnostic message %q", msg)
	}

	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("trace events %+v", events)
	}
	if events[0].Name != "block_string" || events[0].Detail != "bad closer" {
		t.Errorf("first event %+v", events[0])
	}
	if events[1].Detail != "unexpected end of input" {
		t.Errorf("second event %+v", events[1])
	}
}

func TestBlockStringGate(t *testing.T) {
	src := "|||\n  a\n|||"

	lx, _ := makeTestLexer(src, lexer.Options{})
	if tok := lx.NextIn(token.All.Without(token.BlockString)); tok.Kind != token.OrOr {
		t.Fatalf("gated: got %v", tok.Kind)
	}
	if tok := lx.Next(); tok.Kind != token.Pipe {
		t.Fatalf("gated: got %v", tok.Kind)
	}

	lx, _ = makeTestLexer(src, lexer.Options{DisableBlockStrings: true})
	got := kinds(collect(lx))
	want := []token.Kind{token.OrOr, token.Pipe, token.Ident, token.OrOr, token.Pipe, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("disabled (-want +got):\n%s", diff)
	}
}

func TestBlockStringMaxIndentOption(t *testing.T) {
	lx, rep := makeTestLexer("|||\n    a\n|||", lexer.Options{Block: lexer.BlockOptions{MaxIndent: 2}})
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("got %v", tok.Kind)
	}
	if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != diag.LexBadBlockString {
		t.Fatalf("codes %v", rep.codes())
	}
}

func TestPeekThenNext(t *testing.T) {
	lx, _ := makeTestLexer("a b", lexer.Options{})
	p := lx.Peek()
	n := lx.Next()
	if p.Text != "a" || n.Text != "a" {
		t.Fatalf("peek %q next %q", p.Text, n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next %q", n.Text)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x", lexer.Options{})
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("got %v after EOF", tok.Kind)
		}
	}
}
