package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keymap maps a key string ("ctrl+a", "shift+tab", "left") to an action name.
type Keymap map[string]string

type EditorOptions struct {
	TabWidth    int    `toml:"tab-width"`
	DefaultText string `toml:"default-text"`
	LineNumbers string `toml:"line-numbers"`
	Language    string `toml:"language"`
}

type Theme struct {
	Theme                      string `toml:"theme"`
	Foreground                 string `toml:"foreground"`
	Background                 string `toml:"background"`
	StatuslineForeground       string `toml:"statusline-foreground"`
	StatuslineBackground       string `toml:"statusline-background"`
	LineNumberForeground       string `toml:"line-number-foreground"`
	LineNumberActiveForeground string `toml:"line-number-active-foreground"`
	CurrentLineBackground      string `toml:"current-line-background"`
	SelectionForeground        string `toml:"selection-foreground"`
	SelectionBackground        string `toml:"selection-background"`
	SyntaxKeyword              string `toml:"syntax-keyword"`
	SyntaxString               string `toml:"syntax-string"`
	SyntaxComment              string `toml:"syntax-comment"`
	SyntaxType                 string `toml:"syntax-type"`
	SyntaxFunction             string `toml:"syntax-function"`
	SyntaxNumber               string `toml:"syntax-number"`
	SyntaxConstant             string `toml:"syntax-constant"`
	SyntaxOperator             string `toml:"syntax-operator"`
	SyntaxPunctuation          string `toml:"syntax-punctuation"`
	SyntaxField                string `toml:"syntax-field"`
	SyntaxBuiltin              string `toml:"syntax-builtin"`
	SyntaxVariable             string `toml:"syntax-variable"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:    4,
			DefaultText: "Hello, World!",
			LineNumbers: "absolute",
		},
		Theme: Theme{
			Foreground:                 "#B3B1AD",
			Background:                 "#0A0E14",
			StatuslineForeground:       "#B3B1AD",
			StatuslineBackground:       "#0F1419",
			LineNumberForeground:       "#3E4B59",
			LineNumberActiveForeground: "#B3B1AD",
			CurrentLineBackground:      "#131721",
			SelectionForeground:        "#B3B1AD",
			SelectionBackground:        "#27425A",
			SyntaxKeyword:              "#FFA759",
			SyntaxString:               "#BAE67E",
			SyntaxComment:              "#5C6773",
			SyntaxType:                 "#5CCFE6",
			SyntaxFunction:             "#FFD173",
			SyntaxNumber:               "#D4BFFF",
			SyntaxConstant:             "#FFDD8E",
			SyntaxOperator:             "#F29668",
			SyntaxPunctuation:          "#C0C0C0",
			SyntaxField:                "#E6B673",
			SyntaxBuiltin:              "#73D0FF",
			SyntaxVariable:             "#B3B1AD",
		},
		Keymap: DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		"left":           "move_left",
		"right":          "move_right",
		"up":             "move_up",
		"down":           "move_down",
		"ctrl+left":      "word_left",
		"ctrl+right":     "word_right",
		"alt+left":       "word_left",
		"alt+right":      "word_right",
		"home":           "line_start",
		"end":            "line_end",
		"ctrl+home":      "file_start",
		"ctrl+end":       "file_end",
		"pgup":           "page_up",
		"pgdn":           "page_down",
		"backspace":      "backspace",
		"ctrl+backspace": "delete_word_left",
		"alt+backspace":  "delete_word_left",
		"del":            "delete_char",
		"ctrl+del":       "delete_word_right",
		"alt+del":        "delete_word_right",
		"enter":          "newline",
		"tab":            "indent",
		"shift+tab":      "unindent",
		"ctrl+a":         "select_all",
		"ctrl+space":     "toggle_select",
		"esc":            "collapse_selection",
		"ctrl+c":         "copy",
		"ctrl+x":         "cut",
		"ctrl+v":         "paste",
		"ctrl+l":         "toggle_line_numbers",
		"ctrl+q":         "quit",
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	mergeString(&cfg.Editor.DefaultText, userCfg.Editor.DefaultText)
	mergeString(&cfg.Editor.LineNumbers, userCfg.Editor.LineNumbers)
	mergeString(&cfg.Editor.Language, userCfg.Editor.Language)

	// Theme file first, then inline [theme] colors on top.
	mergeString(&cfg.Theme.Theme, userCfg.Theme.Theme)
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	return cfg, nil
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeTheme copies every non-empty color of src into dst. The theme name
// itself is left alone.
func mergeTheme(dst *Theme, src Theme) {
	mergeString(&dst.Foreground, src.Foreground)
	mergeString(&dst.Background, src.Background)
	mergeString(&dst.StatuslineForeground, src.StatuslineForeground)
	mergeString(&dst.StatuslineBackground, src.StatuslineBackground)
	mergeString(&dst.LineNumberForeground, src.LineNumberForeground)
	mergeString(&dst.LineNumberActiveForeground, src.LineNumberActiveForeground)
	mergeString(&dst.CurrentLineBackground, src.CurrentLineBackground)
	mergeString(&dst.SelectionForeground, src.SelectionForeground)
	mergeString(&dst.SelectionBackground, src.SelectionBackground)
	mergeString(&dst.SyntaxKeyword, src.SyntaxKeyword)
	mergeString(&dst.SyntaxString, src.SyntaxString)
	mergeString(&dst.SyntaxComment, src.SyntaxComment)
	mergeString(&dst.SyntaxType, src.SyntaxType)
	mergeString(&dst.SyntaxFunction, src.SyntaxFunction)
	mergeString(&dst.SyntaxNumber, src.SyntaxNumber)
	mergeString(&dst.SyntaxConstant, src.SyntaxConstant)
	mergeString(&dst.SyntaxOperator, src.SyntaxOperator)
	mergeString(&dst.SyntaxPunctuation, src.SyntaxPunctuation)
	mergeString(&dst.SyntaxField, src.SyntaxField)
	mergeString(&dst.SyntaxBuiltin, src.SyntaxBuiltin)
	mergeString(&dst.SyntaxVariable, src.SyntaxVariable)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. Colors may sit at the top level or
// under a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme %q: %w", name, err)
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, fmt.Errorf("parse theme %q: %w", name, err)
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("VISIONARY_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "visionary"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "visionary"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
