// Package clipboard adapts the system clipboard to domain.Clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"

	"zetra/internal/domain"
)

// ErrUnsupported is returned when no clipboard utility is available, e.g. on
// a headless Linux box without xclip, xsel or wl-copy.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// System writes to the OS clipboard.
type System struct{}

var _ domain.Clipboard = System{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Noop accepts and discards every write.
type Noop struct{}

var _ domain.Clipboard = Noop{}

func (Noop) WriteText(string) error { return nil }

// Recorder remembers what was written. Err, when set, is returned instead.
type Recorder struct {
	mu     sync.Mutex
	writes []string
	Err    error
}

var _ domain.Clipboard = (*Recorder)(nil)

func (r *Recorder) WriteText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.writes = append(r.writes, text)
	return nil
}

// Last returns the most recent successful write.
func (r *Recorder) Last() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return "", false
	}
	return r.writes[len(r.writes)-1], true
}
