package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/kobzarvs/visionary/internal/clipboard"
	"github.com/kobzarvs/visionary/internal/config"
	"github.com/kobzarvs/visionary/internal/editor"
	"github.com/kobzarvs/visionary/internal/logger"
	"github.com/kobzarvs/visionary/internal/treesitter"
)

// App is the top-level runtime for visionary.
type App struct {
	editor      *editor.Editor
	highlighter *treesitter.Highlighter
	notice      string

	highlightVersion uint64
	highlightStart   int
	highlightEnd     int
	highlighted      bool
}

// configChange travels from the config watcher goroutine to the event loop
// inside a tcell interrupt event.
type configChange struct {
	cfg config.Config
	err error
}

func New() *App {
	return &App{highlightStart: -1, highlightEnd: -1}
}

func (a *App) Run() (err error) {
	logErr := logger.Init(false)
	defer func() {
		err = multierr.Append(err, logger.Close())
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.EnableMouse()
	defer s.Fini()

	if logErr != nil {
		a.notice = "logging disabled: " + logErr.Error()
	}
	return a.run(s, cfg)
}

// run drives an initialized screen until the user quits.
func (a *App) run(s tcell.Screen, cfg config.Config) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clip := clipboard.New()
	logger.Info("starting", "clipboard_system", clipboard.System(clip), "language", cfg.Editor.Language)
	a.editor = editor.New(cfg, clip)
	if a.notice != "" {
		a.editor.SetStatusMessage(a.notice)
	}

	if cfg.Editor.Language != "" {
		hl, herr := treesitter.New(cfg.Editor.Language)
		if herr != nil {
			logger.Warn("syntax highlighting disabled", "error", herr)
			a.editor.SetStatusMessage(herr.Error())
		} else {
			a.highlighter = hl
			a.editor.SetLanguage(hl.Language())
			defer hl.Close()
		}
	}

	watcher, werr := config.Watch(func(cfg config.Config, err error) {
		_ = s.PostEvent(tcell.NewEventInterrupt(configChange{cfg: cfg, err: err}))
	})
	if werr != nil {
		logger.Warn("config watch disabled", "error", werr)
	} else {
		defer func() {
			err = multierr.Append(err, watcher.Close())
		}()
	}

	// The first render sizes the view so the highlight window is known.
	a.editor.Render(s)
	for {
		a.refreshHighlights(ctx)
		a.editor.Render(s)
		// Rendering may scroll; catch up on the new window.
		if a.refreshHighlights(ctx) {
			a.editor.Render(s)
		}

		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if a.editor.HandleKey(ev) {
				logger.Info("quit")
				return nil
			}
		case *tcell.EventMouse:
			a.editor.HandleMouse(ev)
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			if change, ok := ev.Data().(configChange); ok {
				a.applyConfig(change)
			}
		}
	}
}

func (a *App) applyConfig(change configChange) {
	if change.err != nil {
		logger.Warn("config reload failed", "error", change.err)
		a.editor.SetStatusMessage("config: " + change.err.Error())
		return
	}
	a.editor.ApplyTheme(change.cfg.Theme)
	logger.Info("config reloaded", "theme", change.cfg.Theme.Theme)
	a.editor.SetStatusMessage("theme reloaded")
}

// refreshHighlights reparses when the text changed and requeries when the
// text or the visible window changed. It reports whether it did anything.
func (a *App) refreshHighlights(ctx context.Context) bool {
	if a.highlighter == nil {
		return false
	}
	version := a.editor.Version()
	start, end := a.editor.VisibleRange()
	if a.highlighted && version == a.highlightVersion && start == a.highlightStart && end == a.highlightEnd {
		return false
	}
	if err := a.highlighter.Parse(ctx, a.editor.Content(), version); err != nil {
		logger.Warn("parse failed", "error", err)
		a.editor.SetHighlights(-1, -1, nil)
		a.highlighted = false
		return true
	}
	spans := a.highlighter.Highlights(start, end)
	a.editor.SetHighlights(start, end, convertSpans(spans))
	a.highlightVersion = version
	a.highlightStart = start
	a.highlightEnd = end
	a.highlighted = true
	return true
}

func convertSpans(spans map[int][]treesitter.HighlightSpan) map[int][]editor.HighlightSpan {
	if spans == nil {
		return nil
	}
	out := make(map[int][]editor.HighlightSpan, len(spans))
	for line, lineSpans := range spans {
		dst := make([]editor.HighlightSpan, len(lineSpans))
		for i, span := range lineSpans {
			dst[i] = editor.HighlightSpan{
				StartCol: span.StartCol,
				EndCol:   span.EndCol,
				Kind:     span.Kind,
			}
		}
		out[line] = dst
	}
	return out
}
