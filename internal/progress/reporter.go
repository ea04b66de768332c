// Package progress reports the progress of long-running CLI work such as a
// site export.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress updates for a fixed number of steps.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a LogReporter when running under CI and a bar
// reporter otherwise. Both write to w.
func NewReporter(w io.Writer, description string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{w: w, description: description}
	}
	return &BarReporter{w: w, description: description}
}

// BarReporter draws a progress bar.
type BarReporter struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(r.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter prints one line per step, suitable for CI logs.
type LogReporter struct {
	w           io.Writer
	description string
	total       int
}

func (r *LogReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.w, "%s: %d steps\n", r.description, total)
}

func (r *LogReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *LogReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.description)
}

// Nop discards every update.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}
