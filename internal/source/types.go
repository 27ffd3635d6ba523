package source

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how a file entered the set.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // stdin, test or fuzz input
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // CRLF was folded to LF
)

// File is one loaded source with its line index and content hash.
// Content is immutable once added.
type File struct {
	ID      FileID
	Path    string // normalized with forward slashes
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content, the DiskCache key base
	Flags   FileFlags
}

// LineCol is a 1-based line and 1-based byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
