package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/lepinkainen/videobatch/ffmpeg"
	"github.com/lepinkainen/videobatch/utils"
	"github.com/mattn/go-isatty"
)

// throttle is the minimum gap between two progress lines
const throttle = time.Second

// ProgressUpdate is one rendered encode status
type ProgressUpdate struct {
	Percent float64 // 0-100
	ETA     int     // seconds
	Message string
}

// ProgressHandler turns ffmpeg progress snapshots into throttled status lines
type ProgressHandler struct {
	duration   float64
	lastUpdate int64 // unix millis, 0 before the first update
	now        func() time.Time
	emit       func(ProgressUpdate)
}

// NewProgressHandler tracks an encode of a source lasting duration seconds
func NewProgressHandler(duration float64, emit func(ProgressUpdate)) *ProgressHandler {
	return &ProgressHandler{duration: duration, now: time.Now, emit: emit}
}

// Handle consumes one snapshot
func (h *ProgressHandler) Handle(p ffmpeg.Progress) {
	if !p.Has(ffmpeg.KeyOutTimeMs) || math.IsNaN(p.OutTimeMs) || !p.Has(ffmpeg.KeySpeed) {
		return
	}

	if p.Phase == ffmpeg.PhaseEnd {
		h.emit(ProgressUpdate{Percent: 100, Message: "[100%] eta: 00:00:00"})
		return
	}

	now := h.now().UnixMilli()
	if now-h.lastUpdate <= throttle.Milliseconds() {
		return
	}
	h.lastUpdate = now

	// out_time_ms is reported in microseconds despite its name
	current := p.OutTimeMs / 1_000_000

	percentage := 0.0
	if h.duration > 0 {
		percentage = math.Min(99.99, current/h.duration*100)
	}

	remaining := 0
	if percentage > 0 && p.Speed > 0 && !math.IsNaN(p.Speed) {
		remaining = int(math.Max(0, math.Floor((h.duration-current)/p.Speed)))
	}

	h.emit(ProgressUpdate{
		Percent: percentage,
		ETA:     remaining,
		Message: fmt.Sprintf("[%6.2f%%] eta: %s", percentage, utils.FormatSeconds(remaining)),
	})
}

// Reporter writes progress updates to a terminal, drawing a bar when the
// output is interactive.
type Reporter struct {
	out io.Writer
	tty bool
	bar progress.Model
}

// NewReporter writes to out; pass nil for stdout
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{
		out: out,
		tty: tty,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// Update renders one status line
func (r *Reporter) Update(u ProgressUpdate) {
	if !r.tty {
		fmt.Fprintln(r.out, u.Message)
		return
	}
	fmt.Fprintf(r.out, "\r%s %s", r.bar.ViewAs(u.Percent/100), InfoStyle.Render(u.Message))
	if u.Percent >= 100 {
		fmt.Fprintln(r.out)
	}
}
