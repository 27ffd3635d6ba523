package testkit_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/testkit"
	"jsonnetlex/internal/token"
)

func lexAll(src string) ([]token.Token, *source.File) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("inv.jsonnet", []byte(src)))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, file
		}
	}
}

func TestCheckTokenInvariants_Holds(t *testing.T) {
	inputs := []string{
		"",
		"local x = 1; x",
		"{\n  a: |||\n    text\n\n    more\n  |||,\n  // c\n  b: \"s\" # t\n}\n",
		"|||\nnot indented\n|||",
		"/* open",
		"\"unterminated\n1.5e3 @",
	}
	for _, in := range inputs {
		toks, file := lexAll(in)
		if err := testkit.CheckTokenInvariants(toks, file, lexer.BlockOptions{}); err != nil {
			t.Errorf("%q: %v", in, err)
		}
	}
}

func TestCheckTokenInvariants_Violations(t *testing.T) {
	toks, file := lexAll("a b")

	noEOF := toks[:len(toks)-1]
	if err := testkit.CheckTokenInvariants(noEOF, file, lexer.BlockOptions{}); err == nil || !strings.Contains(err.Error(), "want EOF") {
		t.Fatalf("missing EOF not detected: %v", err)
	}

	badText := append([]token.Token(nil), toks...)
	badText[0].Text = "z"
	if err := testkit.CheckTokenInvariants(badText, file, lexer.BlockOptions{}); err == nil {
		t.Fatalf("text mismatch not detected")
	}

	gap := append([]token.Token(nil), toks...)
	gap[1].Leading = nil
	if err := testkit.CheckTokenInvariants(gap, file, lexer.BlockOptions{}); err == nil {
		t.Fatalf("gap not detected")
	}
}

func TestCheckTokenInvariants_Testdata(t *testing.T) {
	root := filepath.Join("..", "..", "testdata")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (filepath.Ext(path) != ".jsonnet" && filepath.Ext(path) != ".libsonnet") {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		toks, file := lexAll(string(src))
		if err := testkit.CheckTokenInvariants(toks, file, lexer.BlockOptions{}); err != nil {
			t.Errorf("%s: %v", path, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk testdata: %v", err)
	}
}
