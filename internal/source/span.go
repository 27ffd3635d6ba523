package source

import "strconv"

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID `json:"file" yaml:"file" msgpack:"file"`
	Start uint32 `json:"start" yaml:"start" msgpack:"start"`
	End   uint32 `json:"end" yaml:"end" msgpack:"end"`
}

func (s Span) Empty() bool { return s.Start == s.End }
func (s Span) Len() uint32 { return s.End - s.Start }

// String renders "file:start-end", e.g. "0:4-7".
func (s Span) String() string {
	return strconv.FormatUint(uint64(s.File), 10) + ":" +
		strconv.FormatUint(uint64(s.Start), 10) + "-" +
		strconv.FormatUint(uint64(s.End), 10)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged: s is returned as is.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{File: s.File, Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}
