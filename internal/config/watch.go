package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration whenever config.toml or a theme file
// changes on disk and hands the result to a callback. The callback runs on
// the watcher goroutine.
type Watcher struct {
	fs        *fsnotify.Watcher
	onChange  func(Config, error)
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func Watch(onChange func(Config, error)) (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	themeDir := filepath.Join(dir, "theme")
	if err := os.MkdirAll(themeDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for _, d := range []string{dir, themeDir} {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}

	w := &Watcher{
		fs:       fsw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !isConfigFile(event.Name) {
				continue
			}
			cfg, err := Load()
			w.onChange(cfg, err)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onChange(Config{}, fmt.Errorf("watch config: %w", err))
		}
	}
}

// Close stops the watcher and waits for the loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	if base == "config.toml" {
		return true
	}
	return filepath.Base(filepath.Dir(path)) == "theme" && strings.HasSuffix(base, ".toml")
}
