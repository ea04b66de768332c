package progress

import (
	"bytes"
	"testing"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LogReporter{w: &buf, description: "Exporting sections"}
	r.Start(2)
	r.Update(1, "guide")
	r.Update(2, "tutorial")
	r.Finish()

	want := "Exporting sections: 2 steps\n[1/2] guide\n[2/2] tutorial\nExporting sections: done\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewReporterUnderCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}, "x").(*LogReporter); !ok {
		t.Error("expected a LogReporter when CI is set")
	}
}

func TestBarReporterWritesToWriter(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer
	r := NewReporter(&buf, "Exporting sections")
	if _, ok := r.(*BarReporter); !ok {
		t.Fatalf("got %T, want *BarReporter", r)
	}
	r.Start(3)
	r.Update(1, "guide")
	r.Finish()
	if buf.Len() == 0 {
		t.Error("bar reporter wrote nothing")
	}
}
