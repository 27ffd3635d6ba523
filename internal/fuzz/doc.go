// Package fuzztests houses Go fuzz harnesses for the jsonnetlex front end
// (source -> lexer, and the text block scanner on its own). Its goal is to
// smoke test robustness and guard against panics or broken token invariants
// on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер и сканер text block.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag,
// internal/testkit.

package fuzztests
