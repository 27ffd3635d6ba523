package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every source file of one run and resolves spans against them.
// It is not safe for concurrent writes.
type FileSet struct {
	files   []File
	latest  map[string]FileID // normalized path -> newest id
	baseDir string
}

// NewFileSet creates an empty FileSet relative to the working directory.
func NewFileSet() *FileSet { return NewFileSetWithBase("") }

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: map[string]FileID{}, baseDir: baseDir}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the base directory, falling back to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

// Add stores content as a new file and returns its id. Re-adding a path
// creates a new version; GetLatest then points at it.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id, norm := FileID(n), normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    norm,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[norm] = id
	return id
}

// AddVirtual adds an in-memory file (stdin, test or fuzz input).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk, strips a UTF-8 BOM, folds CRLF and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.addNormalized(path, content, 0), nil
}

// LoadReader is Load for a stream; the file is marked virtual.
func (fs *FileSet) LoadReader(name string, r io.Reader) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	return fs.addNormalized(name, content, FileVirtual), nil
}

func (fs *FileSet) addNormalized(path string, content []byte, flags FileFlags) FileID {
	var bom, crlf bool
	content, bom = removeBOM(content)
	content, crlf = normalizeCRLF(content)
	if bom {
		flags |= FileHadBOM
	}
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags)
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }
func (fs *FileSet) Len() int            { return len(fs.files) }

// GetLatest returns the newest id added under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// Slice returns the source text covered by span.
func (fs *FileSet) Slice(span Span) string {
	return string(fs.files[span.File].Content[span.Start:span.End])
}

// lineBounds returns the byte range of 1-based line n without its '\n'.
func (f *File) lineBounds(n int) (start, end int, ok bool) {
	if n < 1 || n > len(f.LineIdx)+1 {
		return 0, 0, false
	}
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end = len(f.Content)
	if n <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return start, end, true
}

// GetLine возвращает строку с заданным номером (1-based) без завершающего '\n'.
// Для несуществующей строки - пустая строка.
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.lineBounds(int(lineNum))
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the file path according to mode:
// "absolute", "relative", "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
