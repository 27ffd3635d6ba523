package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса

// edge cases of the text block scanner that testdata does not spell out
var inlineSeeds = []string{
	"",
	"{ a: |||\n  text\n||| }\n",
	"|||\n\ttab\n\ttab\n|||",
	"|||\n  a\n\n  b\n  |||",
	"|||\n  a\n b\n|||",
	"|||\n  |||\n",
	"|||  \n  trailing hws\n|||",
	"|||\n  unclosed\n",
	"|||x\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range corpusSeeds(filepath.Join("..", "..")) {
		f.Add(s)
	}
}

// corpusSeeds collects testdata sources, README snippets and inline cases
// relative to the repository root.
func corpusSeeds(root string) [][]byte {
	var seeds [][]byte
	// проходим по дереву testdata, добавляем все *.jsonnet и *.libsonnet файлы
	_ = filepath.WalkDir(filepath.Join(root, "testdata"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".jsonnet", ".libsonnet":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		if src, err := os.ReadFile(path); err == nil {
			seeds = append(seeds, clampSeed(src))
		}
		return nil
	})

	// #nosec G304 -- fixed repository location
	if readme, err := os.ReadFile(filepath.Join(root, "README.md")); err == nil {
		for _, snippet := range fencedBlocks(readme, "jsonnet") {
			seeds = append(seeds, clampSeed(snippet))
		}
	}

	for _, s := range inlineSeeds {
		seeds = append(seeds, []byte(s))
	}
	return seeds
}

// fencedBlocks returns the bodies of ```lang fences in markdown, keeping
// the original indentation. Empty fences are skipped.
func fencedBlocks(md []byte, lang string) [][]byte {
	var (
		out  [][]byte
		body [][]byte
		in   bool
	)
	for line := range bytes.Lines(md) {
		fence := bytes.TrimSpace(line)
		if !bytes.HasPrefix(fence, []byte("```")) {
			if in {
				body = append(body, bytes.TrimSuffix(line, []byte{'\n'}))
			}
			continue
		}
		if in && len(body) > 0 {
			out = append(out, bytes.Join(body, []byte{'\n'}))
		}
		in = !in && string(bytes.TrimPrefix(fence, []byte("```"))) == lang
		body = body[:0]
	}
	return out
}

func clampSeed(src []byte) []byte {
	return bytes.Clone(src[:min(len(src), maxSeedBytes)])
}
