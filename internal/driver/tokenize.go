package driver

import (
	"context"
	"os"
	"strconv"

	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/observ"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
	"jsonnetlex/internal/trace"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// TokenizeOptions controls a single-file run.
type TokenizeOptions struct {
	MaxDiagnostics int
	// Lexer is passed to the lexer as is, except that Reporter is replaced
	// with one that fills the result bag.
	Lexer lexer.Options
	Timer *observ.Timer // nil disables phase timing
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path ("-" reads stdin) and lexes it up to EOF.
func Tokenize(ctx context.Context, path string, opts TokenizeOptions) (*TokenizeResult, error) {
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	// Создаём FileSet и загружаем файл
	loadIdx := timer.Begin("load")
	fs := source.NewFileSet()
	var (
		fileID source.FileID
		err    error
	)
	if path == StdinPath {
		fileID, err = fs.LoadReader("<stdin>", os.Stdin)
	} else {
		fileID, err = fs.Load(path)
	}
	timer.End(loadIdx, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)

	lexIdx := timer.Begin("lex")
	tokens := lexFile(ctx, file, bag, opts.Lexer)
	timer.EndCount(lexIdx, "", len(tokens))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// lexFile collects every token of file including the final EOF.
// A cancelled ctx makes the cursor report EOF early.
func lexFile(ctx context.Context, file *source.File, bag *diag.Bag, lo lexer.Options) []token.Token {
	tracer := lo.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
		lo.Tracer = tracer
	}
	span := trace.Begin(tracer, trace.ScopeFile, "tokenize", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("path", file.Path)

	lo.Reporter = diag.BagReporter{Bag: bag}
	lx := lexer.NewWithCursor(lexer.NewCursor(file).WithContext(ctx), lo)

	// Токенизация: собираем все токены до EOF
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	span.WithExtra("tokens", strconv.Itoa(len(tokens)))
	span.End("")
	return tokens
}
