package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/visionary/internal/config"
)

type styles struct {
	main             tcell.Style
	status           tcell.Style
	lineNumber       tcell.Style
	lineNumberActive tcell.Style
	selection        tcell.Style
	currentLineBg    tcell.Color
	syntax           map[string]tcell.Style
}

func newStyles(theme config.Theme) styles {
	mainFg := parseColor(theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(theme.Background, tcell.ColorBlack)
	statusFg := parseColor(theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(theme.StatuslineBackground, tcell.ColorGray)
	lineNumberFg := parseColor(theme.LineNumberForeground, tcell.ColorGray)
	lineNumberActiveFg := parseColor(theme.LineNumberActiveForeground, mainFg)
	selectionFg := parseColor(theme.SelectionForeground, mainFg)
	selectionBg := parseColor(theme.SelectionBackground, mainBg)

	syntaxColors := map[string]string{
		"keyword":     theme.SyntaxKeyword,
		"string":      theme.SyntaxString,
		"comment":     theme.SyntaxComment,
		"type":        theme.SyntaxType,
		"function":    theme.SyntaxFunction,
		"number":      theme.SyntaxNumber,
		"constant":    theme.SyntaxConstant,
		"operator":    theme.SyntaxOperator,
		"punctuation": theme.SyntaxPunctuation,
		"field":       theme.SyntaxField,
		"builtin":     theme.SyntaxBuiltin,
		"variable":    theme.SyntaxVariable,
	}
	syntax := make(map[string]tcell.Style, len(syntaxColors))
	for kind, color := range syntaxColors {
		syntax[kind] = tcell.StyleDefault.Foreground(parseColor(color, mainFg)).Background(mainBg)
	}

	return styles{
		main:             tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		status:           tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		lineNumber:       tcell.StyleDefault.Foreground(lineNumberFg).Background(mainBg),
		lineNumberActive: tcell.StyleDefault.Foreground(lineNumberActiveFg).Background(mainBg),
		selection:        tcell.StyleDefault.Foreground(selectionFg).Background(selectionBg),
		currentLineBg:    parseColor(theme.CurrentLineBackground, mainBg),
		syntax:           syntax,
	}
}

// Render draws the text area and the status line below it, then places the
// terminal cursor.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	statusY := h - 1
	viewHeight := max(h-1, 0)
	e.viewHeight = viewHeight
	if !e.freeScroll {
		e.ensureCursorVisible(viewHeight)
	}

	s.SetStyle(e.styles.main)
	s.Clear()

	gutterWidth := e.gutterWidth()
	for y := 0; y < viewHeight; y++ {
		lineIdx := e.scroll + y
		if lineIdx >= e.box.LineCount() {
			clearLine(s, y, w, e.styles.main)
			continue
		}
		e.drawLineWithGutter(s, y, w, gutterWidth, lineIdx)
	}
	e.renderStatusline(s, w, statusY)

	cur := e.box.CursorLocation()
	cy := cur.Row - e.scroll
	if cy < 0 || cy >= viewHeight {
		s.HideCursor()
		s.Show()
		return
	}
	line, _ := e.box.Line(cur.Row)
	cx := min(gutterWidth+visualCol([]rune(line), cur.Col), w-1)
	s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	s.ShowCursor(cx, cy)
	s.Show()
}

func (e *Editor) gutterWidth() int {
	if e.lineNumberMode == LineNumberOff {
		return 0
	}
	digits := max(len(strconv.Itoa(max(e.box.LineCount(), 1))), 2)
	// leading space + digits + trailing space
	return 1 + digits + 1
}

func (e *Editor) drawLineWithGutter(s tcell.Screen, y, w, gutterWidth, lineIdx int) {
	cursorRow := e.box.CursorLocation().Row
	base := e.styles.main
	if lineIdx == cursorRow {
		base = base.Background(e.styles.currentLineBg)
	}
	if gutterWidth > 0 {
		digits := max(gutterWidth-2, 1)
		num := lineIdx + 1
		if e.lineNumberMode == LineNumberRelative && lineIdx != cursorRow {
			num = lineIdx - cursorRow
			if num < 0 {
				num = -num
			}
		}
		style := e.styles.lineNumber
		if lineIdx == cursorRow {
			style = e.styles.lineNumberActive
		}
		s.SetContent(0, y, ' ', nil, e.styles.main)
		for i, r := range fmt.Sprintf("%*d", digits, num) {
			x := 1 + i
			if x >= gutterWidth-1 || x >= w {
				break
			}
			s.SetContent(x, y, r, nil, style)
		}
		if gutterWidth-1 < w {
			s.SetContent(gutterWidth-1, y, ' ', nil, e.styles.main)
		}
	}
	if gutterWidth >= w {
		return
	}
	selStart, selEnd, ok := e.selectionRangeForLine(lineIdx)
	if !ok {
		selStart, selEnd = -1, -1
	}
	var spans []HighlightSpan
	if e.HasHighlights() && lineIdx >= e.highlightStart && lineIdx <= e.highlightEnd {
		spans = e.highlights[lineIdx]
	}
	line, _ := e.box.Line(lineIdx)
	e.drawLine(s, y, w, gutterWidth, []rune(line), selStart, selEnd, spans, base)
}

// drawLine draws one text line from startX. Syntax kinds set the foreground;
// the selection only changes the background.
func (e *Editor) drawLine(s tcell.Screen, y, w, startX int, line []rune, selStart, selEnd int, spans []HighlightSpan, base tcell.Style) {
	_, baseBg, _ := base.Decompose()
	_, selBg, _ := e.styles.selection.Decompose()
	x := startX
	for idx, r := range line {
		cw := cellWidth(r)
		if x+cw > w {
			break
		}
		style := base
		if kind, ok := highlightKindAt(spans, idx); ok {
			if syn, ok := e.styles.syntax[kind]; ok {
				style = syn.Background(baseBg)
			}
		}
		if selStart >= 0 && idx >= selStart && idx < selEnd {
			style = style.Background(selBg)
		}
		s.SetContent(x, y, r, nil, style)
		x += cw
	}
	for x < w {
		s.SetContent(x, y, ' ', nil, base)
		x++
	}
}

func (e *Editor) selectionRangeForLine(lineIdx int) (int, int, bool) {
	start, end, ok := e.box.SelectionRange()
	if !ok {
		return 0, 0, false
	}
	if lineIdx < start.Row || lineIdx > end.Row {
		return 0, 0, false
	}
	line, _ := e.box.Line(lineIdx)
	lineLen := len([]rune(line))
	startCol := 0
	endCol := lineLen
	if lineIdx == start.Row {
		startCol = clampRange(start.Col, 0, lineLen)
	}
	if lineIdx == end.Row {
		endCol = clampRange(end.Col, 0, lineLen)
	}
	if endCol <= startCol {
		return 0, 0, false
	}
	return startCol, endCol, true
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	mode := "EDIT"
	if e.box.IsSelecting() {
		mode = "SELECT"
	}
	left := fmt.Sprintf(" %s ", mode)
	if e.statusMessage != "" {
		left = fmt.Sprintf(" %s | %s ", mode, e.statusMessage)
	}
	cur := e.box.CursorLocation()
	line, _ := e.box.Line(cur.Row)
	right := fmt.Sprintf(" Ln %d, Col %d ", cur.Row+1, visualCol([]rune(line), cur.Col)+1)
	if e.language != "" {
		right = " " + e.language + " |" + right
	}

	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, y, r, nil, e.styles.status)
	}
}

// kindPriority decides which capture colors a rune covered by several
// spans. Unknown kinds never win.
var kindPriority = map[string]int{
	"comment":     7,
	"string":      6,
	"keyword":     5,
	"constant":    4,
	"builtin":     4,
	"type":        3,
	"function":    3,
	"number":      3,
	"field":       2,
	"variable":    2,
	"operator":    1,
	"punctuation": 1,
}

func highlightKindAt(spans []HighlightSpan, col int) (string, bool) {
	bestKind := ""
	bestPriority := 0
	for _, span := range spans {
		if col < span.StartCol || col >= span.EndCol {
			continue
		}
		if p := kindPriority[span.Kind]; p > bestPriority {
			bestPriority = p
			bestKind = span.Kind
		}
	}
	return bestKind, bestKind != ""
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// composeStatusLine lays left and right out on a width-cell line. The
// right part keeps its tail when space runs out; left fills what remains.
func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	line := []rune(strings.Repeat(" ", width))
	r := []rune(right)
	if len(r) > width {
		r = r[len(r)-width:]
	}
	split := width - len(r)
	copy(line[split:], r)
	copy(line[:split], []rune(left))
	return line
}

// parseColor resolves a theme value: a tcell color name, "#rrggbb", the
// "#rgb" shorthand or "default". Anything else yields fallback.
func parseColor(value string, fallback tcell.Color) tcell.Color {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case value == "":
		return fallback
	case value == "default":
		return tcell.ColorDefault
	case strings.HasPrefix(value, "#"):
		hex := value[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if len(hex) != 6 || err != nil {
			return fallback
		}
		return tcell.NewHexColor(int32(v))
	}
	if c := tcell.GetColor(value); c != tcell.ColorDefault {
		return c
	}
	return fallback
}

// cellWidth is the number of terminal cells r occupies; zero-width runes
// still get a cell of their own.
func cellWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}

// visualCol maps a rune column to a screen column.
func visualCol(line []rune, logicalCol int) int {
	logicalCol = clampRange(logicalCol, 0, len(line))
	col := 0
	for _, r := range line[:logicalCol] {
		col += cellWidth(r)
	}
	return col
}

// visualToLogicalCol maps a screen column back to a rune column. A click on
// either half of a wide rune lands before it.
func visualToLogicalCol(line []rune, visualX int) int {
	if visualX <= 0 {
		return 0
	}
	col := 0
	for i, r := range line {
		advance := cellWidth(r)
		if col+advance > visualX {
			return i
		}
		col += advance
		if col >= visualX {
			return i + 1
		}
	}
	return len(line)
}
