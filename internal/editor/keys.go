package editor

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// keyString renders a key event in keymap notation: modifiers in the order
// cmd, ctrl, alt, shift joined with '+', then the key name ("ctrl+left",
// "shift+tab", "a"). It returns "" for keys the keymap cannot name.
func keyString(ev *tcell.EventKey) string {
	mod := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(unicode.ToLower(r))
		if r == ' ' {
			name = "space"
		}
		if mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			if r == ' ' {
				return "space"
			}
			return string(r)
		}
		return modPrefix(mod&^tcell.ModShift) + name
	}

	// Named keys come before ctrlKeyName: Tab, Enter, Backspace and Esc
	// share codes with ctrl+i, ctrl+m, ctrl+h and ctrl+[.
	if name := namedKey(ev.Key()); name != "" {
		if ev.Key() == tcell.KeyBacktab {
			mod &^= tcell.ModShift
		}
		return modPrefix(mod) + name
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	return ""
}

func modPrefix(mod tcell.ModMask) string {
	var b strings.Builder
	if mod&tcell.ModMeta != 0 {
		b.WriteString("cmd+")
	}
	if mod&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if mod&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if mod&tcell.ModShift != 0 {
		b.WriteString("shift+")
	}
	return b.String()
}

func namedKey(key tcell.Key) string {
	switch key {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyDelete:
		return "del"
	case tcell.KeyInsert:
		return "ins"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	}
	return ""
}

func ctrlKeyName(key tcell.Key) string {
	switch {
	case key == tcell.KeyCtrlSpace:
		return "ctrl+space"
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}
