package clipboard

import (
	"bytes"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCopyFeedbackExpires(t *testing.T) {
	clock := &fakeClock{}
	mem := &Memory{}
	c := NewCopier(mem, WithClock(clock), WithLogger(quietLogger(&bytes.Buffer{})))

	require.True(t, c.Copy("guide/installation/npm", "npm install -g @gitmesh/cli"))
	assert.Equal(t, "npm install -g @gitmesh/cli", mem.Text())
	assert.True(t, c.Active("guide/installation/npm"))
	assert.False(t, c.Active("guide/installation/curl"))

	clock.Advance(1999 * time.Millisecond)
	assert.True(t, c.Active("guide/installation/npm"))

	clock.Advance(time.Millisecond)
	assert.False(t, c.Active("guide/installation/npm"))
	assert.Equal(t, Token(""), c.Current())
}

func TestNewerCopyKeepsItsOwnWindow(t *testing.T) {
	clock := &fakeClock{}
	c := NewCopier(&Memory{}, WithClock(clock), WithLogger(quietLogger(&bytes.Buffer{})))

	require.True(t, c.Copy("a", "first"))
	clock.Advance(1500 * time.Millisecond)
	require.True(t, c.Copy("b", "second"))
	assert.False(t, c.Active("a"))

	// a's original deadline passes; b must survive it.
	clock.Advance(600 * time.Millisecond)
	assert.True(t, c.Active("b"))

	clock.Advance(1400 * time.Millisecond)
	assert.False(t, c.Active("b"))
}

func TestCopyFailureLeavesStateUntouched(t *testing.T) {
	clock := &fakeClock{}
	mem := &Memory{}
	var logs bytes.Buffer
	c := NewCopier(mem, WithClock(clock), WithLogger(quietLogger(&logs)))

	require.True(t, c.Copy("a", "kept"))
	mem.Fail(errors.New("xclip not found"))

	assert.False(t, c.Copy("b", "lost"))
	assert.Equal(t, Token("a"), c.Current())
	assert.Equal(t, "kept", mem.Text())
	assert.Contains(t, logs.String(), "failed to copy text")
	assert.Contains(t, logs.String(), "xclip not found")
}

func TestNotify(t *testing.T) {
	clock := &fakeClock{}
	var got []Token
	c := NewCopier(&Memory{}, WithClock(clock), WithLogger(quietLogger(&bytes.Buffer{})),
		WithNotify(func(tok Token) { got = append(got, tok) }))

	c.Copy("x", "1")
	clock.Advance(DefaultFeedback)
	assert.Equal(t, []Token{"x", ""}, got)
}

func TestStopCancelsPendingExpiry(t *testing.T) {
	clock := &fakeClock{}
	c := NewCopier(&Memory{}, WithClock(clock), WithFeedback(time.Second))
	c.Copy("x", "1")
	c.Stop()
	assert.Equal(t, Token(""), c.Current())
	clock.Advance(time.Second)
	assert.Equal(t, Token(""), c.Current())
}

func TestRealClockStopDoesNotLeak(t *testing.T) {
	c := NewCopier(&Memory{}, WithLogger(quietLogger(&bytes.Buffer{})))
	require.True(t, c.Copy("x", "1"))
	assert.Equal(t, Token("x"), c.Current())
	c.Stop()
}

func TestRealClockExpires(t *testing.T) {
	c := NewCopier(&Memory{}, WithFeedback(20*time.Millisecond), WithLogger(quietLogger(&bytes.Buffer{})))
	require.True(t, c.Copy("x", "1"))
	assert.Eventually(t, func() bool { return !c.Active("x") }, time.Second, 5*time.Millisecond)
}

func TestNewBackend(t *testing.T) {
	w, err := New(BackendNone, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, w.WriteText("x"), ErrUnavailable)

	w, err = New(BackendSystem, nil)
	require.NoError(t, err)
	assert.IsType(t, System{}, w)

	_, err = New("carrier-pigeon", nil)
	assert.Error(t, err)
}

func TestOSC52Writes(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("STY", "")
	t.Setenv("TERM", "xterm-256color")

	var out bytes.Buffer
	w := NewOSC52(&out)
	require.NoError(t, w.WriteText("gitmesh init"))
	// base64("gitmesh init")
	assert.True(t, strings.HasPrefix(out.String(), "\x1b]52;c;Z2l0bWVzaCBpbml0"), "got %q", out.String())

	assert.ErrorIs(t, NewOSC52(nil).WriteText("x"), ErrUnavailable)
}

func TestOSC52Tmux(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	var out bytes.Buffer
	require.NoError(t, NewOSC52(&out).WriteText("x"))
	assert.True(t, strings.HasPrefix(out.String(), "\x1bPtmux;"), "got %q", out.String())
}
