package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf16"

	"github.com/HugoDaniel/treeshaker/internal/diagnostic"
)

// SourceMap represents a Source Map v3.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// Mapping ties a generated position to a source position. Lines and
// columns count from 0; columns are in UTF-16 code units.
type Mapping struct {
	GenLine int
	GenCol  int
	SrcLine int
	SrcCol  int
}

// Generator builds a source map incrementally. Mappings must be added in
// generated order.
type Generator struct {
	source        string
	lines         *diagnostic.LineIndex
	mappings      []Mapping
	file          string
	sourceName    string
	includeSource bool
}

// NewGenerator creates a new source map generator for the given original source.
func NewGenerator(source string) *Generator {
	return &Generator{
		source: source,
		lines:  diagnostic.NewLineIndex(source),
	}
}

// SetFile sets the generated file name.
func (g *Generator) SetFile(file string) {
	g.file = file
}

// SetSourceName sets the original source file name.
func (g *Generator) SetSourceName(name string) {
	g.sourceName = name
}

// IncludeSourceContent sets whether to include original source in sourcesContent.
func (g *Generator) IncludeSourceContent(include bool) {
	g.includeSource = include
}

// AddMapping maps the generated position genLine:genCol, both 0-based, to
// the byte offset srcOffset of the original source.
func (g *Generator) AddMapping(genLine, genCol, srcOffset int) {
	srcLine, srcCol := g.lines.ByteOffsetToLineColumn(srcOffset)
	lineStart := g.lines.LineColumnToByteOffset(srcLine, 0)
	if lineStart <= srcOffset && srcOffset <= len(g.source) {
		srcCol = len(utf16.Encode([]rune(g.source[lineStart:srcOffset])))
	}
	g.mappings = append(g.mappings, Mapping{
		GenLine: genLine,
		GenCol:  genCol,
		SrcLine: srcLine,
		SrcCol:  srcCol,
	})
}

// Mappings returns the mappings added so far.
func (g *Generator) Mappings() []Mapping {
	return g.mappings
}

// Generate produces the final SourceMap.
func (g *Generator) Generate() *SourceMap {
	sm := &SourceMap{
		Version:  3,
		File:     g.file,
		Sources:  []string{g.sourceName},
		Names:    []string{},
		Mappings: g.encodeMappings(),
	}
	if g.includeSource {
		sm.SourcesContent = []string{g.source}
	}
	return sm
}

// encodeMappings encodes all mappings as VLQ segments of four fields.
func (g *Generator) encodeMappings() string {
	var buf strings.Builder

	// State for delta encoding
	prevGenCol := 0
	prevSrcLine := 0
	prevSrcCol := 0

	currentLine := 0
	firstOnLine := true

	for _, m := range g.mappings {
		// Emit semicolons for skipped lines
		for currentLine < m.GenLine {
			buf.WriteByte(';')
			currentLine++
			prevGenCol = 0
			firstOnLine = true
		}

		if !firstOnLine {
			buf.WriteByte(',')
		}
		firstOnLine = false

		writeVLQ(&buf, m.GenCol-prevGenCol)
		writeVLQ(&buf, 0) // single source
		writeVLQ(&buf, m.SrcLine-prevSrcLine)
		writeVLQ(&buf, m.SrcCol-prevSrcCol)

		prevGenCol = m.GenCol
		prevSrcLine = m.SrcLine
		prevSrcCol = m.SrcCol
	}

	return buf.String()
}

// ToJSON returns the source map as a JSON string.
func (sm *SourceMap) ToJSON() string {
	data, _ := json.Marshal(sm)
	return string(data)
}

// ToDataURI returns the source map as a data URI for inline embedding.
func (sm *SourceMap) ToDataURI() string {
	encoded := base64.StdEncoding.EncodeToString([]byte(sm.ToJSON()))
	return "data:application/json;base64," + encoded
}

// ToComment returns a source map comment for appending to generated code.
func (sm *SourceMap) ToComment(inline bool) string {
	if inline {
		return "//# sourceMappingURL=" + sm.ToDataURI()
	}
	return "//# sourceMappingURL=" + sm.File + ".map"
}
