package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
)

// TokenOutput is the serialized form of one token, shared by the
// json, yaml and msgpack encoders.
type TokenOutput struct {
	Kind    string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Text    string      `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Span    source.Span `json:"span" yaml:"span" msgpack:"span"`
	Leading []string    `json:"leading,omitempty" yaml:"leading,omitempty" msgpack:"leading,omitempty"`
	// Value is the dedented content of a text block.
	Value string `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
}

// TokenStream is the top-level document of the structured formats.
type TokenStream struct {
	File   string        `json:"file" yaml:"file" msgpack:"file"`
	Tokens []TokenOutput `json:"tokens" yaml:"tokens" msgpack:"tokens"`
}

// BuildTokenStream converts tokens up to and including EOF.
func BuildTokenStream(path string, tokens []token.Token, opts lexer.BlockOptions) TokenStream {
	out := TokenStream{File: path, Tokens: make([]TokenOutput, 0, len(tokens))}
	for _, tok := range tokens {
		to := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		for _, trivia := range tok.Leading {
			to.Leading = append(to.Leading, trivia.Kind.String())
		}
		if tok.Kind == token.BlockString {
			if v, err := lexer.Unquote(tok.Text, opts); err == nil {
				to.Value = v
			}
		}
		out.Tokens = append(out.Tokens, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, stream TokenStream) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stream)
}

// FormatTokensYAML выводит токены в YAML
func FormatTokensYAML(w io.Writer, stream TokenStream) error {
	data, err := yaml.Marshal(stream)
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatTokensMsgpack пишет поток токенов как один msgpack-документ
func FormatTokensMsgpack(w io.Writer, stream TokenStream) error {
	if err := msgpack.NewEncoder(w).Encode(stream); err != nil {
		return fmt.Errorf("msgpack encode: %w", err)
	}
	return nil
}

// DecodeTokensMsgpack reads back a stream written by FormatTokensMsgpack.
func DecodeTokensMsgpack(r io.Reader) (TokenStream, error) {
	var stream TokenStream
	if err := msgpack.NewDecoder(r).Decode(&stream); err != nil {
		return TokenStream{}, fmt.Errorf("msgpack decode: %w", err)
	}
	return stream, nil
}
