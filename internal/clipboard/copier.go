package clipboard

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultFeedback is how long a copied block stays acknowledged.
const DefaultFeedback = 2 * time.Second

// Token identifies the block whose text was copied.
type Token string

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. It is satisfied by RealClock and by fakes in
// tests.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules callbacks on the wall clock.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithClock replaces the wall clock.
func WithClock(c Clock) CopierOption {
	return func(cp *Copier) { cp.clock = c }
}

// WithFeedback sets how long a token stays active after a copy.
func WithFeedback(d time.Duration) CopierOption {
	return func(cp *Copier) {
		if d > 0 {
			cp.window = d
		}
	}
}

// WithLogger sets the logger that receives copy failures.
func WithLogger(l *slog.Logger) CopierOption {
	return func(cp *Copier) {
		if l != nil {
			cp.log = l
		}
	}
}

// WithNotify registers fn to run whenever the active token changes, with the
// new token ("" once feedback expires). fn runs without the Copier's lock
// held and, for expiry, on the timer's goroutine.
func WithNotify(fn func(Token)) CopierOption {
	return func(cp *Copier) { cp.notify = fn }
}

// Copier writes text to a clipboard and tracks which token was copied most
// recently. The token stays active for the feedback window, after which it is
// cleared. A newer copy replaces the active token and its timer.
type Copier struct {
	w      Writer
	clock  Clock
	window time.Duration
	log    *slog.Logger
	notify func(Token)

	mu     sync.Mutex
	active Token
	gen    uint64
	timer  Timer
}

// NewCopier returns a Copier writing through w.
func NewCopier(w Writer, opts ...CopierOption) *Copier {
	c := &Copier{
		w:      w,
		clock:  RealClock{},
		window: DefaultFeedback,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy writes text to the clipboard. On success token becomes the active
// token and true is returned. On failure the error is logged, the feedback
// state is left untouched and false is returned.
func (c *Copier) Copy(token Token, text string) bool {
	if err := c.w.WriteText(text); err != nil {
		c.log.Error("failed to copy text", "token", string(token), "error", err)
		return false
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.active = token
	c.timer = c.clock.AfterFunc(c.window, func() { c.expire(gen) })
	c.mu.Unlock()

	c.log.Debug("copied text", "token", string(token), "bytes", len(text))
	if c.notify != nil {
		c.notify(token)
	}
	return true
}

func (c *Copier) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.active = ""
	c.timer = nil
	c.mu.Unlock()

	if c.notify != nil {
		c.notify("")
	}
}

// Active reports whether token is the one currently acknowledged.
func (c *Copier) Active(token Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token != "" && c.active == token
}

// Current returns the active token, or "" when none is.
func (c *Copier) Current() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Stop cancels any pending expiry and clears the active token.
func (c *Copier) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.active = ""
}
