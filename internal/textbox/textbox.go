package textbox

import (
	"strings"

	"github.com/kobzarvs/visionary/internal/logger"
)

const DefaultTabWidth = 4

// Options are read once when the text box is built.
type Options struct {
	TabWidth int
	Text     string
}

// TextBox owns the buffer, the cursor and the selection and sequences every
// edit and movement through them. It is not safe for concurrent use.
type TextBox struct {
	buf      *Buffer
	cursor   *Cursor
	sel      Selection
	tabWidth int
}

func New(opts Options) *TextBox {
	tabWidth := opts.TabWidth
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	buf := NewBuffer(opts.Text)
	return &TextBox{
		buf:      buf,
		cursor:   NewCursor(buf),
		sel:      NewSelection(),
		tabWidth: tabWidth,
	}
}

func (t *TextBox) TabWidth() int {
	return t.tabWidth
}

func (t *TextBox) LineCount() int {
	return t.buf.LineCount()
}

func (t *TextBox) Line(row int) (string, bool) {
	return t.buf.Line(row)
}

func (t *TextBox) CharAt(at Location) (rune, bool) {
	return t.buf.CharAt(at)
}

func (t *TextBox) CursorLocation() Location {
	return t.cursor.Current()
}

func (t *TextBox) Text() string {
	return t.buf.Text()
}

func (t *TextBox) Version() uint64 {
	return t.buf.Version()
}

// Add inserts a single rune at the cursor, replacing the selection if any.
// A rejected rune leaves the selection and the text untouched.
func (t *TextBox) Add(c rune) bool {
	if c != LineBreak && !isPrintable(c) {
		logger.Debug("textbox: rejected rune", "rune", c, "at", t.cursor.Current())
		return false
	}
	t.consumeSelection()
	at, ok := t.buf.InsertChar(t.cursor.Current(), c)
	if !ok {
		logger.Debug("textbox: rejected rune", "rune", c, "at", at)
		return false
	}
	t.cursor.MoveTo(t.cursor.NextFrom(at))
	return true
}

// AddText inserts text at the cursor, replacing the selection if any. Tabs
// expand to TabWidth spaces. Text with nothing insertable is rejected before
// the selection is touched.
func (t *TextBox) AddText(text string) bool {
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", t.tabWidth))
	if !hasInsertable(text) {
		logger.Debug("textbox: rejected text", "at", t.cursor.Current(), "len", len(text))
		return false
	}
	t.consumeSelection()
	end, ok := t.buf.InsertText(t.cursor.Current(), text)
	if !ok {
		logger.Debug("textbox: rejected text", "at", t.cursor.Current(), "len", len(text))
		return false
	}
	t.cursor.MoveTo(end)
	return true
}

func (t *TextBox) AddTab() {
	t.AddText(strings.Repeat(" ", t.tabWidth))
}

// RemoveTab removes up to TabWidth spaces left of the cursor. It reports
// whether at least one space was removed.
func (t *TextBox) RemoveTab() bool {
	t.sel.Stop()
	removed := 0
	for removed < t.tabWidth {
		at := t.cursor.Current()
		if at.Col == 0 {
			break
		}
		if r, ok := t.buf.CharAt(Location{Row: at.Row, Col: at.Col - 1}); !ok || r != ' ' {
			break
		}
		if !t.RemoveRange(t.cursor.Prev(), at) {
			break
		}
		removed++
	}
	return removed > 0
}

// Remove deletes the rune left of the cursor, or the selection if any.
func (t *TextBox) Remove() bool {
	if t.sel.Active() {
		return t.ClearSelection()
	}
	if t.cursor.OnFirstPos() {
		return false
	}
	return t.RemoveRange(t.cursor.Prev(), t.cursor.Current())
}

// Delete removes the rune right of the cursor, or the selection if any.
func (t *TextBox) Delete() bool {
	if t.sel.Active() {
		return t.ClearSelection()
	}
	if t.cursor.OnLastPos() {
		return false
	}
	return t.RemoveRange(t.cursor.Current(), t.cursor.Next())
}

// SkipRemove removes everything between the left word-skip target and the
// cursor.
func (t *TextBox) SkipRemove() bool {
	if t.sel.Active() {
		return t.ClearSelection()
	}
	to, ok := SkipLeft(t.cursor)
	if !ok {
		return false
	}
	return t.RemoveRange(to, t.cursor.Current())
}

func (t *TextBox) SkipDelete() bool {
	if t.sel.Active() {
		return t.ClearSelection()
	}
	to, ok := SkipRight(t.cursor)
	if !ok {
		return false
	}
	return t.RemoveRange(t.cursor.Current(), to)
}

// RemoveRange erases [begin, end), moves the cursor to begin and stops
// selecting.
func (t *TextBox) RemoveRange(begin, end Location) bool {
	if !t.buf.RemoveRange(begin, end) {
		logger.Debug("textbox: rejected range", "begin", begin, "end", end)
		return false
	}
	t.sel.Stop()
	t.cursor.Revalidate()
	t.cursor.MoveTo(begin)
	return true
}

func (t *TextBox) MoveTo(to Location) bool {
	return t.cursor.MoveTo(to)
}

func (t *TextBox) MoveLeft() bool {
	return t.cursor.MoveTo(t.cursor.Prev())
}

func (t *TextBox) MoveRight() bool {
	return t.cursor.MoveTo(t.cursor.Next())
}

func (t *TextBox) MoveUp() bool {
	return t.cursor.MoveTo(t.cursor.Above())
}

func (t *TextBox) MoveDown() bool {
	return t.cursor.MoveTo(t.cursor.Below())
}

// MoveStart moves to the start of the current line.
func (t *TextBox) MoveStart() bool {
	return t.cursor.MoveTo(t.cursor.StartLinePos())
}

// MoveEnd moves to the end of the current line.
func (t *TextBox) MoveEnd() bool {
	return t.cursor.MoveTo(t.cursor.EndLinePos())
}

func (t *TextBox) MoveTop() bool {
	return t.cursor.MoveTo(t.cursor.MinPos())
}

func (t *TextBox) MoveBottom() bool {
	return t.cursor.MoveTo(t.cursor.MaxPos())
}

func (t *TextBox) SkipLeft() bool {
	to, ok := SkipLeft(t.cursor)
	if !ok {
		return false
	}
	return t.cursor.MoveTo(to)
}

func (t *TextBox) SkipRight() bool {
	to, ok := SkipRight(t.cursor)
	if !ok {
		return false
	}
	return t.cursor.MoveTo(to)
}

func (t *TextBox) StartSelecting() {
	t.sel.Start(t.cursor.Current())
}

func (t *TextBox) StopSelecting() {
	t.sel.Stop()
}

func (t *TextBox) IsSelecting() bool {
	return t.sel.Active()
}

// SelectAll anchors at the document start and moves the cursor to the end.
// The selection is always active afterwards.
func (t *TextBox) SelectAll() {
	t.StopSelecting()
	t.MoveTop()
	t.StartSelecting()
	t.MoveBottom()
}

// SelectionRange returns the normalized selected range.
func (t *TextBox) SelectionRange() (Location, Location, bool) {
	return t.sel.Range(t.cursor.Current(), t.buf)
}

// Selection returns the selected text; it is absent when not selecting.
func (t *TextBox) Selection() (string, bool) {
	begin, end, ok := t.SelectionRange()
	if !ok {
		return "", false
	}
	return t.buf.SelectionText(begin, end), true
}

// ClearSelection removes the selected range and leaves the cursor at its
// start. It reports false when there was nothing to remove.
func (t *TextBox) ClearSelection() bool {
	begin, end, ok := t.SelectionRange()
	if !ok {
		return false
	}
	t.sel.Stop()
	if begin == end {
		return false
	}
	return t.RemoveRange(begin, end)
}

func (t *TextBox) Copy() (string, bool) {
	return t.Selection()
}

func (t *TextBox) Cut() (string, bool) {
	text, ok := t.Selection()
	if !ok {
		return "", false
	}
	t.ClearSelection()
	return text, true
}

func (t *TextBox) Paste(text string) bool {
	return t.AddText(text)
}

func (t *TextBox) consumeSelection() {
	if t.sel.Active() {
		t.ClearSelection()
	}
}

// hasInsertable reports whether text holds a line break or a printable rune.
func hasInsertable(text string) bool {
	for _, r := range text {
		if r == LineBreak || r == '\r' || isPrintable(r) {
			return true
		}
	}
	return false
}
