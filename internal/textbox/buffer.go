package textbox

import (
	"strings"
	"unicode"
)

// LineBreak is the rune that splits a line on insertion. It is never stored
// inside a line.
const LineBreak = '\n'

// Buffer holds the document as an ordered list of lines. It always has at
// least one line.
type Buffer struct {
	lines   [][]rune
	version uint64
}

func NewBuffer(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

// Version increases on every mutation that changed the text.
func (b *Buffer) Version() uint64 {
	return b.version
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

func (b *Buffer) Line(row int) (string, bool) {
	if row < 0 || row >= len(b.lines) {
		return "", false
	}
	return string(b.lines[row]), true
}

func (b *Buffer) LineLen(row int) (int, bool) {
	if row < 0 || row >= len(b.lines) {
		return 0, false
	}
	return len(b.lines[row]), true
}

func (b *Buffer) CharAt(at Location) (rune, bool) {
	if at.Row < 0 || at.Row >= len(b.lines) {
		return 0, false
	}
	line := b.lines[at.Row]
	if at.Col < 0 || at.Col >= len(line) {
		return 0, false
	}
	return line[at.Col], true
}

func (b *Buffer) MinPos() Location {
	return Location{}
}

func (b *Buffer) MaxPos() Location {
	last := len(b.lines) - 1
	return Location{Row: last, Col: len(b.lines[last])}
}

// IsValid reports whether at addresses an existing row and a column within
// (or at the end of) that row.
func (b *Buffer) IsValid(at Location) bool {
	if at.Row < 0 || at.Row >= len(b.lines) {
		return false
	}
	return at.Col >= 0 && at.Col <= len(b.lines[at.Row])
}

// Clamp pulls at into the current document bounds. NPos clamps to MaxPos.
func (b *Buffer) Clamp(at Location) Location {
	row := clampInt(at.Row, 0, len(b.lines)-1)
	col := clampInt(at.Col, 0, len(b.lines[row]))
	return Location{Row: row, Col: col}
}

// InsertChar inserts c at the given location. LineBreak splits the line;
// other non-printable runes are rejected. The returned location is the
// insertion point; callers advance the cursor themselves.
func (b *Buffer) InsertChar(at Location, c rune) (Location, bool) {
	if !b.IsValid(at) {
		return at, false
	}
	if c == LineBreak {
		b.splitLineAt(at)
		return at, true
	}
	if !isPrintable(c) {
		return at, false
	}
	line := b.lines[at.Row]
	line = append(line, 0)
	copy(line[at.Col+1:], line[at.Col:])
	line[at.Col] = c
	b.lines[at.Row] = line
	b.version++
	return at, true
}

func (b *Buffer) splitLineAt(at Location) {
	line := b.lines[at.Row]
	left := append([]rune(nil), line[:at.Col]...)
	right := append([]rune(nil), line[at.Col:]...)

	newLines := make([][]rune, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:at.Row]...)
	newLines = append(newLines, left, right)
	newLines = append(newLines, b.lines[at.Row+1:]...)
	b.lines = newLines
	b.version++
}

// InsertText inserts text at the given location and returns the location
// just past the inserted text. "\r\n" and lone '\r' count as one line break;
// other non-printable runes are dropped.
func (b *Buffer) InsertText(at Location, text string) (Location, bool) {
	if !b.IsValid(at) {
		return at, false
	}
	parts := splitLines(text)
	if len(parts) == 1 && len(parts[0]) == 0 {
		return at, true
	}

	line := b.lines[at.Row]
	if len(parts) == 1 {
		newLine := make([]rune, 0, len(line)+len(parts[0]))
		newLine = append(newLine, line[:at.Col]...)
		newLine = append(newLine, parts[0]...)
		newLine = append(newLine, line[at.Col:]...)
		b.lines[at.Row] = newLine
		b.version++
		return Location{Row: at.Row, Col: at.Col + len(parts[0])}, true
	}

	first := make([]rune, 0, at.Col+len(parts[0]))
	first = append(first, line[:at.Col]...)
	first = append(first, parts[0]...)

	tail := parts[len(parts)-1]
	last := make([]rune, 0, len(tail)+len(line)-at.Col)
	last = append(last, tail...)
	last = append(last, line[at.Col:]...)

	newLines := make([][]rune, 0, len(b.lines)+len(parts)-1)
	newLines = append(newLines, b.lines[:at.Row]...)
	newLines = append(newLines, first)
	newLines = append(newLines, parts[1:len(parts)-1]...)
	newLines = append(newLines, last)
	newLines = append(newLines, b.lines[at.Row+1:]...)
	b.lines = newLines
	b.version++
	return Location{Row: at.Row + len(parts) - 1, Col: len(tail)}, true
}

// RemoveRange erases [begin, end). It fails without touching the buffer
// unless begin <= end and both are valid locations.
func (b *Buffer) RemoveRange(begin, end Location) bool {
	if !b.IsValid(begin) || !b.IsValid(end) || end.Less(begin) {
		return false
	}
	if begin == end {
		return true
	}

	if begin.Row == end.Row {
		line := b.lines[begin.Row]
		newLine := make([]rune, 0, len(line)-(end.Col-begin.Col))
		newLine = append(newLine, line[:begin.Col]...)
		newLine = append(newLine, line[end.Col:]...)
		b.lines[begin.Row] = newLine
		b.version++
		return true
	}

	// Save the tail of the last line before the rows go away.
	first := b.lines[begin.Row]
	tail := b.lines[end.Row][end.Col:]
	merged := make([]rune, 0, begin.Col+len(tail))
	merged = append(merged, first[:begin.Col]...)
	merged = append(merged, tail...)

	newLines := make([][]rune, 0, len(b.lines)-(end.Row-begin.Row))
	newLines = append(newLines, b.lines[:begin.Row]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, b.lines[end.Row+1:]...)
	b.lines = newLines
	b.version++
	return true
}

// SelectionText returns the text in [begin, end) with lines joined by
// LineBreak. An invalid range yields "".
func (b *Buffer) SelectionText(begin, end Location) string {
	if !b.IsValid(begin) || !b.IsValid(end) || end.Less(begin) {
		return ""
	}
	if begin.Row == end.Row {
		return string(b.lines[begin.Row][begin.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[begin.Row][begin.Col:]))
	for row := begin.Row + 1; row < end.Row; row++ {
		sb.WriteRune(LineBreak)
		sb.WriteString(string(b.lines[row]))
	}
	sb.WriteRune(LineBreak)
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

// Text returns the whole document.
func (b *Buffer) Text() string {
	return joinLines(b.lines)
}

func isPrintable(r rune) bool {
	return unicode.IsPrint(r)
}

func splitLines(text string) [][]rune {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		line := make([]rune, 0, len(p))
		for _, r := range p {
			if isPrintable(r) {
				line = append(line, r)
			}
		}
		lines[i] = line
	}
	return lines
}

func joinLines(lines [][]rune) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteRune(LineBreak)
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
