package treesitter

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// HighlightSpan covers [StartCol, EndCol) of one line, in rune columns.
type HighlightSpan struct {
	StartCol int
	EndCol   int
	Kind     string
}

// Highlighter keeps a syntax tree for one document and answers highlight
// queries for a line window. Parse and Highlights may be called from
// different goroutines.
type Highlighter struct {
	language string
	parser   *sitter.Parser
	query    *sitter.Query

	mu      sync.RWMutex
	tree    *sitter.Tree
	source  []byte
	lines   []int // byte offset of each line start
	version uint64
	parsed  bool
}

// Languages lists the language names New accepts.
func Languages() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize resolves aliases; it returns "" for unknown languages.
func Normalize(language string) string {
	name := strings.ToLower(strings.TrimSpace(language))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if _, ok := grammars[name]; !ok {
		return ""
	}
	return name
}

func New(language string) (*Highlighter, error) {
	name := Normalize(language)
	if name == "" {
		return nil, fmt.Errorf("treesitter: unsupported language %q", language)
	}
	g := grammars[name]
	lang := g.lang()
	query, err := sitter.NewQuery([]byte(g.query), lang)
	if err != nil {
		return nil, fmt.Errorf("treesitter: compile %s query: %w", name, err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Highlighter{
		language: name,
		parser:   parser,
		query:    query,
	}, nil
}

func (h *Highlighter) Language() string {
	return h.language
}

// Version returns the document version of the last successful parse.
func (h *Highlighter) Version() (uint64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version, h.parsed
}

// Parse reparses text when version differs from the last parsed one.
func (h *Highlighter) Parse(ctx context.Context, text string, version uint64) error {
	h.mu.RLock()
	fresh := h.parsed && h.version == version
	h.mu.RUnlock()
	if fresh {
		return nil
	}

	source := []byte(text)
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return fmt.Errorf("treesitter: parse %s: %w", h.language, err)
	}

	h.mu.Lock()
	old := h.tree
	h.tree = tree
	h.source = source
	h.lines = lineOffsets(source)
	h.version = version
	h.parsed = true
	h.mu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Highlights returns spans for rows startLine..endLine inclusive, keyed by
// row. It returns nil before the first parse.
func (h *Highlighter) Highlights(startLine, endLine int) map[int][]HighlightSpan {
	if startLine < 0 || endLine < startLine {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.tree == nil {
		return nil
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.SetPointRange(
		sitter.Point{Row: uint32(startLine), Column: 0},
		sitter.Point{Row: uint32(endLine + 1), Column: 0},
	)
	cursor.Exec(h.query, h.tree.RootNode())

	out := make(map[int][]HighlightSpan)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, h.source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			kind := h.query.CaptureNameForId(capture.Index)
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()
			startRow, endRow := int(start.Row), int(end.Row)
			if endRow < startLine || startRow > endLine {
				continue
			}
			for row := max(startRow, startLine); row <= min(endRow, endLine); row++ {
				startCol := 0
				endCol := math.MaxInt32
				if row == startRow {
					startCol = h.runeCol(row, int(start.Column))
				}
				if row == endRow {
					endCol = h.runeCol(row, int(end.Column))
				}
				if endCol <= startCol {
					continue
				}
				out[row] = append(out[row], HighlightSpan{
					StartCol: startCol,
					EndCol:   endCol,
					Kind:     kind,
				})
			}
		}
	}
	return out
}

// runeCol converts a byte column reported by tree-sitter into a rune column.
func (h *Highlighter) runeCol(row, byteCol int) int {
	if row < 0 || row >= len(h.lines) {
		return byteCol
	}
	start := h.lines[row]
	end := min(start+byteCol, len(h.source))
	return utf8.RuneCount(h.source[start:end])
}

// Close releases the parser, the query and the current tree.
func (h *Highlighter) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tree != nil {
		h.tree.Close()
		h.tree = nil
	}
	h.query.Close()
	h.parser.Close()
}

func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
