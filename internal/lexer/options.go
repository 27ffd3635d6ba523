package lexer

import (
	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/trace"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	// Block configures the text block scanner. Opener is always OpenerConsumed
	// inside the lexer.
	Block BlockOptions
	// DisableBlockStrings lexes "|||" as "||" "|".
	DisableBlockStrings bool
	Tracer              trace.Tracer // nil means trace.Nop
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.report(code, diag.SevError, sp, msg)
}

func (lx *Lexer) tracer() trace.Tracer {
	if lx.opts.Tracer == nil {
		return trace.Nop
	}
	return lx.opts.Tracer
}
