package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lepinkainen/videobatch/ffmpeg"
)

func snapshot(t *testing.T, lines ...string) ffmpeg.Progress {
	t.Helper()
	var p ffmpeg.Progress
	for _, line := range lines {
		f, ok := ffmpeg.ParseProgressLine(line)
		if !ok {
			t.Fatalf("Expected %q to parse", line)
		}
		p.Apply(f)
	}
	return p
}

type clock struct{ millis int64 }

func (c *clock) now() time.Time { return time.UnixMilli(c.millis) }

func newTestHandler(duration float64, c *clock) (*ProgressHandler, *[]ProgressUpdate) {
	var got []ProgressUpdate
	h := NewProgressHandler(duration, func(u ProgressUpdate) { got = append(got, u) })
	h.now = c.now
	return h, &got
}

func TestProgressHandler_Format(t *testing.T) {
	c := &clock{millis: 10_000}
	h, got := newTestHandler(100, c)

	h.Handle(snapshot(t, "out_time_ms=5000000", "speed=1x", "progress=continue"))

	if len(*got) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(*got))
	}
	u := (*got)[0]
	if u.Message != "[  5.00%] eta: 00:01:35" {
		t.Errorf("Expected message '[  5.00%%] eta: 00:01:35', got '%s'", u.Message)
	}
	if u.ETA != 95 {
		t.Errorf("Expected ETA 95, got %d", u.ETA)
	}
}

func TestProgressHandler_Throttle(t *testing.T) {
	c := &clock{millis: 10_000}
	h, got := newTestHandler(100, c)
	p := snapshot(t, "out_time_ms=1000000", "speed=2x", "progress=continue")

	h.Handle(p)
	c.millis += 500
	h.Handle(p)
	c.millis += 500
	h.Handle(p)
	c.millis += 1
	h.Handle(p)

	if len(*got) != 2 {
		t.Errorf("Expected 2 updates after throttling, got %d", len(*got))
	}
}

func TestProgressHandler_End(t *testing.T) {
	c := &clock{millis: 10_000}
	h, got := newTestHandler(100, c)

	h.Handle(snapshot(t, "out_time_ms=1000000", "speed=1x", "progress=continue"))
	h.Handle(snapshot(t, "out_time_ms=100000000", "speed=1x", "progress=end"))

	if len(*got) != 2 {
		t.Fatalf("Expected end to bypass throttling, got %d updates", len(*got))
	}
	last := (*got)[1]
	if last.Message != "[100%] eta: 00:00:00" || last.Percent != 100 {
		t.Errorf("Expected final 100%% update, got %+v", last)
	}
}

func TestProgressHandler_SkipsIncompleteSnapshots(t *testing.T) {
	c := &clock{millis: 10_000}
	h, got := newTestHandler(100, c)

	h.Handle(snapshot(t, "speed=1x", "progress=continue"))
	h.Handle(snapshot(t, "out_time_ms=1000000", "progress=continue"))

	if len(*got) != 0 {
		t.Errorf("Expected no updates, got %d", len(*got))
	}
}

func TestProgressHandler_CapsBelowHundred(t *testing.T) {
	c := &clock{millis: 10_000}
	h, got := newTestHandler(10, c)

	h.Handle(snapshot(t, "out_time_ms=20000000", "speed=1x", "progress=continue"))

	if len(*got) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(*got))
	}
	if (*got)[0].Percent != 99.99 || (*got)[0].ETA != 0 {
		t.Errorf("Expected 99.99%% with zero ETA, got %+v", (*got)[0])
	}
}

func TestReporter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Update(ProgressUpdate{Percent: 50, ETA: 10, Message: "[ 50.00%] eta: 00:00:10"})

	if !strings.Contains(buf.String(), "[ 50.00%] eta: 00:00:10\n") {
		t.Errorf("Expected plain status line, got %q", buf.String())
	}
}
