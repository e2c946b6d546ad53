// Package clipboard moves text between the editor and the system clipboard.
// When the system clipboard is unavailable it falls back to a memory buffer.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard stores and fetches text. Implementations are safe for
// concurrent use.
type Clipboard interface {
	Store(string) error
	Fetch() (string, error)
}

// New returns the system clipboard if the platform supports one, otherwise
// an empty memory clipboard.
func New() Clipboard {
	if clipboard.Unsupported {
		return NewMem()
	}
	return sysClipboard{}
}

// NewMem returns an empty memory clipboard. Tests use it directly.
func NewMem() Clipboard {
	return &memClipboard{}
}

// System reports whether c talks to the system clipboard.
func System(c Clipboard) bool {
	_, ok := c.(sysClipboard)
	return ok
}

type sysClipboard struct{}

func (sysClipboard) Store(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func (sysClipboard) Fetch() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

type memClipboard struct {
	mu   sync.Mutex
	text string
}

func (m *memClipboard) Store(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

func (m *memClipboard) Fetch() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}
