package diagnostic

import (
	"sort"
	"strings"
)

// LineIndex converts between byte offsets and line/column positions. Line
// starts are computed once, so each lookup is a binary search.
type LineIndex struct {
	source     string
	lineStarts []int
}

// NewLineIndex creates a LineIndex for the given source. LF, CRLF and lone
// CR all end a line.
func NewLineIndex(source string) *LineIndex {
	idx := &LineIndex{
		source:     source,
		lineStarts: []int{0},
	}

	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
		default:
			continue
		}
		if i+1 < len(source) {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}

	return idx
}

// LineCount returns the number of lines in the source.
func (idx *LineIndex) LineCount() int {
	return len(idx.lineStarts)
}

// ByteOffsetToLineColumn converts a byte offset to 0-indexed line and byte
// column. Offsets past the end are clamped.
func (idx *LineIndex) ByteOffsetToLineColumn(offset int) (line, col int) {
	if offset < 0 || len(idx.source) == 0 {
		return 0, 0
	}
	if offset > len(idx.source) {
		offset = len(idx.source)
	}

	line = sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	return line, offset - idx.lineStarts[line]
}

// LineColumnToByteOffset converts a 0-indexed line and byte column to a
// byte offset, clamped to the source.
func (idx *LineIndex) LineColumnToByteOffset(line, col int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(idx.lineStarts) {
		line = len(idx.lineStarts) - 1
	}

	offset := idx.lineStarts[line] + col
	if offset < 0 {
		return 0
	}
	if offset > len(idx.source) {
		return len(idx.source)
	}
	return offset
}

// Line returns the text of the 0-indexed line without its terminator.
func (idx *LineIndex) Line(line int) string {
	if line < 0 || line >= len(idx.lineStarts) {
		return ""
	}
	end := len(idx.source)
	if line+1 < len(idx.lineStarts) {
		end = idx.lineStarts[line+1]
	}
	return strings.TrimRight(idx.source[idx.lineStarts[line]:end], "\r\n")
}
