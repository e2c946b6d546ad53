package editor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/visionary/internal/clipboard"
	"github.com/kobzarvs/visionary/internal/config"
	"github.com/kobzarvs/visionary/internal/logger"
	"github.com/kobzarvs/visionary/internal/textbox"
)

const (
	actionMoveLeft          = "move_left"
	actionMoveRight         = "move_right"
	actionMoveUp            = "move_up"
	actionMoveDown          = "move_down"
	actionWordLeft          = "word_left"
	actionWordRight         = "word_right"
	actionLineStart         = "line_start"
	actionLineEnd           = "line_end"
	actionFileStart         = "file_start"
	actionFileEnd           = "file_end"
	actionPageUp            = "page_up"
	actionPageDown          = "page_down"
	actionBackspace         = "backspace"
	actionDeleteChar        = "delete_char"
	actionDeleteWordLeft    = "delete_word_left"
	actionDeleteWordRight   = "delete_word_right"
	actionNewline           = "newline"
	actionIndent            = "indent"
	actionUnindent          = "unindent"
	actionSelectAll         = "select_all"
	actionToggleSelect      = "toggle_select"
	actionCollapseSelection = "collapse_selection"
	actionCopy              = "copy"
	actionCut               = "cut"
	actionPaste             = "paste"
	actionToggleLineNumbers = "toggle_line_numbers"
	actionQuit              = "quit"
)

type LineNumberMode int

const (
	LineNumberOff LineNumberMode = iota
	LineNumberAbsolute
	LineNumberRelative
)

// HighlightSpan marks [StartCol, EndCol) of a line, in rune columns.
type HighlightSpan struct {
	StartCol int
	EndCol   int
	Kind     string
}

// Editor is the terminal widget around a textbox.TextBox: it turns key and
// mouse events into text box calls and draws the result on a tcell screen.
type Editor struct {
	box    *textbox.TextBox
	keymap config.Keymap
	clip   clipboard.Clipboard
	styles styles

	scroll         int
	viewHeight     int
	freeScroll     bool
	selectMode     bool
	lineNumberMode LineNumberMode
	statusMessage  string
	language       string

	highlights     map[int][]HighlightSpan
	highlightStart int
	highlightEnd   int

	actionHook func(string)
}

// New builds the widget from the configuration. Tab width and the seed text
// are read here once; a nil clip falls back to an in-memory clipboard.
func New(cfg config.Config, clip clipboard.Clipboard) *Editor {
	keymap := make(config.Keymap, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	if clip == nil {
		clip = clipboard.NewMem()
	}
	return &Editor{
		box: textbox.New(textbox.Options{
			TabWidth: cfg.Editor.TabWidth,
			Text:     cfg.Editor.DefaultText,
		}),
		keymap:         keymap,
		clip:           clip,
		styles:         newStyles(cfg.Theme),
		lineNumberMode: parseLineNumberMode(cfg.Editor.LineNumbers),
		highlightStart: -1,
		highlightEnd:   -1,
	}
}

func (e *Editor) Box() *textbox.TextBox {
	return e.box
}

func (e *Editor) Content() string {
	return e.box.Text()
}

func (e *Editor) Version() uint64 {
	return e.box.Version()
}

func (e *Editor) LineCount() int {
	return e.box.LineCount()
}

func (e *Editor) SetStatusMessage(msg string) {
	e.statusMessage = msg
}

// SetLanguage names the highlighted language on the status line.
func (e *Editor) SetLanguage(name string) {
	e.language = name
}

// ApplyTheme swaps the colors in place; text, cursor and selection stay.
func (e *Editor) ApplyTheme(theme config.Theme) {
	e.styles = newStyles(theme)
}

// HandleKey processes one key event and reports whether the user asked to
// quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.freeScroll = false
	e.statusMessage = ""
	if e.handleSelectionMove(ev) {
		return false
	}
	if key := keyString(ev); key != "" {
		if action, ok := e.keymap[key]; ok {
			return e.execAction(action)
		}
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		if r := ev.Rune(); unicode.IsPrint(r) {
			e.box.Add(r)
			e.syncSelectMode()
		}
	}
	return false
}

// handleSelectionMove extends the selection for shift+motion keys, starting
// one at the cursor when none is active.
func (e *Editor) handleSelectionMove(ev *tcell.EventKey) bool {
	mod := ev.Modifiers()
	if mod&tcell.ModShift == 0 {
		return false
	}
	word := mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0
	var move func() bool
	switch ev.Key() {
	case tcell.KeyLeft:
		move = e.box.MoveLeft
		if word {
			move = e.box.SkipLeft
		}
	case tcell.KeyRight:
		move = e.box.MoveRight
		if word {
			move = e.box.SkipRight
		}
	case tcell.KeyUp:
		move = e.box.MoveUp
	case tcell.KeyDown:
		move = e.box.MoveDown
	case tcell.KeyPgUp:
		move = e.pageUp
	case tcell.KeyPgDn:
		move = e.pageDown
	case tcell.KeyHome:
		move = e.box.MoveStart
		if word {
			move = e.box.MoveTop
		}
	case tcell.KeyEnd:
		move = e.box.MoveEnd
		if word {
			move = e.box.MoveBottom
		}
	default:
		return false
	}
	if e.actionHook != nil {
		e.actionHook("extend_selection")
	}
	if !e.box.IsSelecting() {
		e.box.StartSelecting()
	}
	move()
	return true
}

func isMotionAction(action string) bool {
	switch action {
	case actionMoveLeft, actionMoveRight, actionMoveUp, actionMoveDown,
		actionWordLeft, actionWordRight, actionLineStart, actionLineEnd,
		actionFileStart, actionFileEnd, actionPageUp, actionPageDown:
		return true
	}
	return false
}

func (e *Editor) execAction(action string) bool {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	if isMotionAction(action) {
		if e.selectMode {
			if !e.box.IsSelecting() {
				e.box.StartSelecting()
			}
		} else {
			e.box.StopSelecting()
		}
	}

	switch action {
	case actionMoveLeft:
		e.box.MoveLeft()
	case actionMoveRight:
		e.box.MoveRight()
	case actionMoveUp:
		e.box.MoveUp()
	case actionMoveDown:
		e.box.MoveDown()
	case actionWordLeft:
		e.box.SkipLeft()
	case actionWordRight:
		e.box.SkipRight()
	case actionLineStart:
		e.box.MoveStart()
	case actionLineEnd:
		e.box.MoveEnd()
	case actionFileStart:
		e.box.MoveTop()
	case actionFileEnd:
		e.box.MoveBottom()
	case actionPageUp:
		e.pageUp()
	case actionPageDown:
		e.pageDown()
	case actionBackspace:
		e.box.Remove()
	case actionDeleteChar:
		e.box.Delete()
	case actionDeleteWordLeft:
		e.box.SkipRemove()
	case actionDeleteWordRight:
		e.box.SkipDelete()
	case actionNewline:
		e.box.Add(textbox.LineBreak)
	case actionIndent:
		e.box.AddTab()
	case actionUnindent:
		e.box.RemoveTab()
	case actionSelectAll:
		e.selectMode = false
		e.box.SelectAll()
	case actionToggleSelect:
		e.toggleSelectMode()
	case actionCollapseSelection:
		e.selectMode = false
		e.box.StopSelecting()
	case actionCopy:
		e.copySelection()
	case actionCut:
		e.cutSelection()
	case actionPaste:
		e.paste()
	case actionToggleLineNumbers:
		e.toggleLineNumbers()
	case actionQuit:
		return true
	default:
		logger.Warn("unknown action", "action", action)
		e.setStatus("unknown action: " + action)
	}
	e.syncSelectMode()
	return false
}

func (e *Editor) toggleSelectMode() {
	if e.selectMode {
		e.selectMode = false
		e.box.StopSelecting()
		return
	}
	e.selectMode = true
	if !e.box.IsSelecting() {
		e.box.StartSelecting()
	}
}

// syncSelectMode leaves select mode once an edit has consumed the selection.
func (e *Editor) syncSelectMode() {
	if e.selectMode && !e.box.IsSelecting() {
		e.selectMode = false
	}
}

func (e *Editor) pageUp() bool {
	moved := false
	for i := 0; i < e.pageSize(); i++ {
		if !e.box.MoveUp() {
			break
		}
		moved = true
	}
	return moved
}

func (e *Editor) pageDown() bool {
	moved := false
	for i := 0; i < e.pageSize(); i++ {
		if !e.box.MoveDown() {
			break
		}
		moved = true
	}
	return moved
}

func (e *Editor) pageSize() int {
	if e.viewHeight < 1 {
		return 1
	}
	return e.viewHeight
}

func (e *Editor) copySelection() {
	text, ok := e.box.Copy()
	if !ok {
		e.setStatus("nothing selected")
		return
	}
	if err := e.clip.Store(text); err != nil {
		logger.Warn("clipboard store failed", "error", err)
		e.setStatus("clipboard: " + err.Error())
		return
	}
	e.setStatus(fmt.Sprintf("copied %d chars", utf8.RuneCountInString(text)))
}

// cutSelection removes the selection only after the clipboard took it.
func (e *Editor) cutSelection() {
	text, ok := e.box.Copy()
	if !ok {
		e.setStatus("nothing selected")
		return
	}
	if err := e.clip.Store(text); err != nil {
		logger.Warn("clipboard store failed", "error", err)
		e.setStatus("clipboard: " + err.Error())
		return
	}
	e.box.Cut()
	e.setStatus(fmt.Sprintf("cut %d chars", utf8.RuneCountInString(text)))
}

func (e *Editor) paste() {
	text, err := e.clip.Fetch()
	if err != nil {
		logger.Warn("clipboard fetch failed", "error", err)
		e.setStatus("clipboard: " + err.Error())
		return
	}
	if text == "" {
		return
	}
	if !e.box.Paste(text) {
		e.setStatus("paste rejected")
	}
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
}

func (e *Editor) HandleMouse(ev *tcell.EventMouse) {
	switch ev.Buttons() {
	case tcell.WheelUp:
		e.scrollUp(3)
		e.freeScroll = true
	case tcell.WheelDown:
		e.scrollDown(3)
		e.freeScroll = true
	case tcell.Button1:
		e.handleMouseClick(ev)
	}
}

// handleMouseClick moves the cursor to the clicked character. Shift+click
// extends the selection instead of dropping it.
func (e *Editor) handleMouseClick(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if e.viewHeight > 0 && y >= e.viewHeight {
		return
	}
	row := clampRange(y+e.scroll, 0, e.box.LineCount()-1)
	line, _ := e.box.Line(row)
	visualX := max(x-e.gutterWidth(), 0)
	col := visualToLogicalCol([]rune(line), visualX)

	if ev.Modifiers()&tcell.ModShift != 0 {
		if !e.box.IsSelecting() {
			e.box.StartSelecting()
		}
	} else {
		e.selectMode = false
		e.box.StopSelecting()
	}
	e.box.MoveTo(textbox.Loc(row, col))
	e.freeScroll = false
}

func (e *Editor) scrollUp(lines int) {
	e.scroll = max(e.scroll-lines, 0)
}

func (e *Editor) scrollDown(lines int) {
	maxScroll := max(e.box.LineCount()-e.pageSize(), 0)
	e.scroll = min(e.scroll+lines, maxScroll)
}

func (e *Editor) ensureCursorVisible(viewHeight int) {
	if viewHeight <= 0 {
		return
	}
	row := e.box.CursorLocation().Row
	// Far outside the view: center the cursor line.
	if row < e.scroll-1 || row >= e.scroll+viewHeight+1 {
		e.scroll = max(row-viewHeight/2, 0)
		return
	}
	if row < e.scroll {
		e.scroll = row
		return
	}
	if row >= e.scroll+viewHeight {
		e.scroll = row - viewHeight + 1
	}
}

// VisibleRange returns the first and last line index on screen.
func (e *Editor) VisibleRange() (int, int) {
	start := max(e.scroll, 0)
	end := max(start+e.viewHeight-1, start)
	end = min(end, e.box.LineCount()-1)
	return start, end
}

func (e *Editor) SetHighlights(startLine, endLine int, spans map[int][]HighlightSpan) {
	if spans == nil || startLine < 0 || endLine < startLine {
		e.highlights = nil
		e.highlightStart = -1
		e.highlightEnd = -1
		return
	}
	e.highlights = spans
	e.highlightStart = startLine
	e.highlightEnd = endLine
}

func (e *Editor) HasHighlights() bool {
	return e.highlights != nil && e.highlightStart >= 0 && e.highlightEnd >= e.highlightStart
}

func parseLineNumberMode(value string) LineNumberMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "relative", "rel":
		return LineNumberRelative
	case "off", "none", "false":
		return LineNumberOff
	default:
		return LineNumberAbsolute
	}
}

func (e *Editor) toggleLineNumbers() {
	switch e.lineNumberMode {
	case LineNumberAbsolute:
		e.lineNumberMode = LineNumberRelative
		e.setStatus("line numbers relative")
	case LineNumberRelative:
		e.lineNumberMode = LineNumberOff
		e.setStatus("line numbers off")
	default:
		e.lineNumberMode = LineNumberAbsolute
		e.setStatus("line numbers absolute")
	}
}

func clampRange(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
