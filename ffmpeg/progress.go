package ffmpeg

import (
	"math"
	"strconv"
	"strings"
)

// Key names a field of the ffmpeg -progress output.
type Key string

const (
	KeyFrame      Key = "frame"
	KeyFPS        Key = "fps"
	KeyQuality    Key = "stream_0_0_q"
	KeyBitrate    Key = "bitrate"
	KeyTotalSize  Key = "total_size"
	KeyOutTimeUs  Key = "out_time_us"
	KeyOutTimeMs  Key = "out_time_ms"
	KeyOutTime    Key = "out_time"
	KeyDupFrames  Key = "dup_frames"
	KeyDropFrames Key = "drop_frames"
	KeySpeed      Key = "speed"
	KeyProgress   Key = "progress"
)

// Phase is the block terminator value of a progress report.
type Phase string

const (
	PhaseContinue Phase = "continue"
	PhaseEnd      Phase = "end"
)

const notAvailable = "N/A"

type valueKind int

const (
	intValue valueKind = iota
	floatValue
	textValue
)

var progressKeys = map[Key]valueKind{
	KeyFrame:      intValue,
	KeyFPS:        floatValue,
	KeyQuality:    floatValue,
	KeyBitrate:    floatValue,
	KeyTotalSize:  intValue,
	KeyOutTimeUs:  intValue,
	KeyOutTimeMs:  intValue,
	KeyOutTime:    textValue,
	KeyDupFrames:  intValue,
	KeyDropFrames: intValue,
	KeySpeed:      floatValue,
	KeyProgress:   textValue,
}

// Fragment is a single parsed progress line. Number is NaN when the value
// of a numeric key could not be parsed.
type Fragment struct {
	Key    Key
	Number float64
	Text   string
}

// ParseProgressLine parses one key=value line. It reports false for lines it
// does not recognize, including N/A values and unknown keys. It never panics.
func ParseProgressLine(line string) (Fragment, bool) {
	rawKey, rawValue, ok := strings.Cut(line, "=")
	if !ok {
		return Fragment{}, false
	}

	key := Key(strings.TrimSpace(rawKey))
	value := strings.TrimSpace(rawValue)
	if value == notAvailable {
		return Fragment{}, false
	}

	kind, known := progressKeys[key]
	if !known {
		return Fragment{}, false
	}

	switch kind {
	case intValue:
		return Fragment{Key: key, Number: parseInt(value)}, true
	case floatValue:
		switch key {
		case KeyBitrate:
			value = strings.TrimSuffix(value, "kbits/s")
		case KeySpeed:
			value = strings.TrimSuffix(value, "x")
		}
		return Fragment{Key: key, Number: parseFloat(value)}, true
	default:
		if key == KeyProgress && Phase(value) != PhaseContinue && Phase(value) != PhaseEnd {
			return Fragment{}, false
		}
		return Fragment{Key: key, Text: value}, true
	}
}

func parseInt(s string) float64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Progress is one complete report block. Fields not reported in the block
// are zero; use Has to tell them apart from reported zeros.
type Progress struct {
	Frame      float64
	FPS        float64
	Quality    float64
	Bitrate    float64 // kbit/s
	TotalSize  float64
	OutTimeUs  float64
	OutTimeMs  float64
	OutTime    string
	DupFrames  float64
	DropFrames float64
	Speed      float64
	Phase      Phase

	seen map[Key]bool
}

// Has reports whether key was present in the block.
func (p Progress) Has(key Key) bool {
	return p.seen[key]
}

func (p Progress) empty() bool {
	return len(p.seen) == 0
}

// Apply merges a fragment into the snapshot.
func (p *Progress) Apply(f Fragment) {
	if p.seen == nil {
		p.seen = make(map[Key]bool)
	}
	p.seen[f.Key] = true

	switch f.Key {
	case KeyFrame:
		p.Frame = f.Number
	case KeyFPS:
		p.FPS = f.Number
	case KeyQuality:
		p.Quality = f.Number
	case KeyBitrate:
		p.Bitrate = f.Number
	case KeyTotalSize:
		p.TotalSize = f.Number
	case KeyOutTimeUs:
		p.OutTimeUs = f.Number
	case KeyOutTimeMs:
		p.OutTimeMs = f.Number
	case KeyOutTime:
		p.OutTime = f.Text
	case KeyDupFrames:
		p.DupFrames = f.Number
	case KeyDropFrames:
		p.DropFrames = f.Number
	case KeySpeed:
		p.Speed = f.Number
	case KeyProgress:
		p.Phase = Phase(f.Text)
	}
}

// progressWriter reassembles a chunked stderr stream into lines and emits a
// Progress each time a progress= line closes a block.
type progressWriter struct {
	carry   string
	pending Progress
	emit    func(Progress)
}

func newProgressWriter(emit func(Progress)) *progressWriter {
	return &progressWriter{emit: emit}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	lines := strings.Split(w.carry+string(p), "\n")
	w.carry = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		w.handleLine(line)
	}
	return len(p), nil
}

// Flush handles an unterminated trailing line and emits whatever is pending.
func (w *progressWriter) Flush() {
	if w.carry != "" {
		w.handleLine(w.carry)
		w.carry = ""
	}
	if !w.pending.empty() {
		w.emit(w.pending)
		w.pending = Progress{}
	}
}

func (w *progressWriter) handleLine(line string) {
	frag, ok := ParseProgressLine(strings.TrimRight(line, "\r"))
	if !ok {
		return
	}
	w.pending.Apply(frag)
	if frag.Key == KeyProgress {
		w.emit(w.pending)
		w.pending = Progress{}
	}
}
