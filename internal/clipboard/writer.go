// Package clipboard places text on a clipboard and tracks the short-lived
// "Copied!" acknowledgment shown next to the block that was copied.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no clipboard can be written from this
// process.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// Backend names accepted by New.
const (
	BackendSystem = "system"
	BackendOSC52  = "osc52"
	BackendNone   = "none"
)

// New returns the writer for backend. out is the terminal used by the OSC 52
// backend.
func New(backend string, out io.Writer) (Writer, error) {
	switch backend {
	case BackendSystem, "":
		return System{}, nil
	case BackendOSC52:
		return NewOSC52(out), nil
	case BackendNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", backend)
	}
}

// System writes to the operating system clipboard through xclip, xsel,
// wl-copy, pbcopy or the Windows API.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set its clipboard with an OSC 52
// escape sequence. It works over SSH, where no local clipboard exists.
type OSC52 struct {
	out    io.Writer
	tmux   bool
	screen bool
}

// NewOSC52 returns an OSC 52 writer emitting to out, wrapping the sequence
// for tmux or screen when the environment says one is in use.
func NewOSC52(out io.Writer) *OSC52 {
	term := os.Getenv("TERM")
	return &OSC52{
		out:    out,
		tmux:   os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"),
		screen: os.Getenv("STY") != "" || strings.HasPrefix(term, "screen"),
	}
}

func (o *OSC52) WriteText(text string) error {
	if o.out == nil {
		return ErrUnavailable
	}
	seq := osc52.New(text)
	switch {
	case o.tmux:
		seq = seq.Tmux()
	case o.screen:
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}

// Disabled refuses every write.
type Disabled struct{}

func (Disabled) WriteText(string) error { return ErrUnavailable }

// Memory keeps the last written text in memory. Tests use it in place of a
// real clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
	err  error
}

// Fail makes subsequent writes return err. A nil err restores normal writes.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Text returns the last text written.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
