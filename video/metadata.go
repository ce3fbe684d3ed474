package video

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/lepinkainen/videobatch/ffmpeg"
	"github.com/lepinkainen/videobatch/types"
)

// Probe field names as printed by ffprobe
const (
	FieldCodecName        = "codec_name"
	FieldCodecTagString   = "codec_tag_string"
	FieldPixFmt           = "pix_fmt"
	FieldWidth            = "width"
	FieldHeight           = "height"
	FieldDuration         = "duration"
	FieldBitsPerRawSample = "bits_per_raw_sample"
	FieldBitRate          = "bit_rate"
	FieldAvgFrameRate     = "avg_frame_rate"
)

// defaultBitDepth is assumed when ffprobe does not report bits_per_raw_sample
const defaultBitDepth = 8

// DefaultRequiredFields must all be present for a probe to be usable
var DefaultRequiredFields = []string{
	FieldCodecName,
	FieldCodecTagString,
	FieldWidth,
	FieldHeight,
	FieldPixFmt,
	FieldDuration,
}

// ProbeResult is the validated metadata of the first video stream
type ProbeResult struct {
	CodecName        string
	CodecTagString   string
	PixFmt           string
	Width            int
	Height           int
	Duration         float64 // seconds
	BitsPerRawSample int
	BitRate          int64   // bits per second, 0 when unknown
	AvgFrameRate     float64 // 0 when unknown
}

// PixelCount returns width*height
func (p ProbeResult) PixelCount() int {
	return p.Width * p.Height
}

// ProbeConverter turns raw ffprobe key=value output into a ProbeResult
type ProbeConverter struct {
	// Required lists the fields that must be present. Nil means DefaultRequiredFields.
	Required []string
}

func (c ProbeConverter) required() []string {
	if c.Required == nil {
		return DefaultRequiredFields
	}
	return c.Required
}

// Convert parses raw. Unknown keys are ignored and N/A values count as
// absent. Every missing required field is reported in one error.
func (c ProbeConverter) Convert(raw string) (ProbeResult, error) {
	result := ProbeResult{BitsPerRawSample: defaultBitDepth}
	seen := make(map[string]bool)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			return ProbeResult{}, types.MalformedPair(line)
		}
		if key == FieldBitsPerRawSample {
			// bit depth falls back to the default rather than counting as missing
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				result.BitsPerRawSample = n
			}
			seen[key] = true
			continue
		}
		if value == "N/A" {
			continue
		}

		switch key {
		case FieldCodecName:
			result.CodecName = value
		case FieldCodecTagString:
			result.CodecTagString = value
		case FieldPixFmt:
			result.PixFmt = value
		case FieldWidth, FieldHeight:
			n, err := parseInt(key, value)
			if err != nil {
				return ProbeResult{}, err
			}
			if key == FieldWidth {
				result.Width = n
			} else {
				result.Height = n
			}
		case FieldDuration:
			f, err := parseFloat(key, value)
			if err != nil {
				return ProbeResult{}, err
			}
			result.Duration = f
		case FieldBitRate:
			f, err := parseFloat(key, value)
			if err != nil {
				return ProbeResult{}, err
			}
			result.BitRate = int64(f)
		case FieldAvgFrameRate:
			fps, err := CalcFPS(value)
			if err != nil {
				continue
			}
			result.AvgFrameRate = fps
		default:
			continue
		}
		seen[key] = true
	}

	var missing []string
	for _, field := range c.required() {
		if !seen[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return ProbeResult{}, types.MissingFields(missing)
	}

	return result, nil
}

// ConvertProbeOutput converts with the default required-field set
func ConvertProbeOutput(raw string) (ProbeResult, error) {
	return ProbeConverter{}.Convert(raw)
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, types.InvalidNumber(field, value)
	}
	return f, nil
}

func parseInt(field, value string) (int, error) {
	f, err := parseFloat(field, value)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// CalcFPS reduces a "dividend/divisor" rate to at most two decimals
func CalcFPS(rate string) (float64, error) {
	dividend, divisor, ok := strings.Cut(strings.TrimSpace(rate), "/")
	if !ok {
		return parseFloat(FieldAvgFrameRate, rate)
	}

	num, err := parseFloat(FieldAvgFrameRate, dividend)
	if err != nil {
		return 0, err
	}
	if divisor == "1" {
		return num, nil
	}

	den, err := parseFloat(FieldAvgFrameRate, divisor)
	if err != nil || den == 0 {
		return 0, types.InvalidNumber(FieldAvgFrameRate, rate)
	}
	return math.Round(num/den*100) / 100, nil
}

// Prober extracts metadata for one file
type Prober interface {
	Probe(ctx context.Context, path string) (ProbeResult, error)
}

// FFprobe probes files by running ffprobe through a Runner
type FFprobe struct {
	Runner    ffmpeg.Runner
	Converter ProbeConverter
}

// Probe runs ffprobe on path. Empty output is a failure even on exit code 0.
func (f *FFprobe) Probe(ctx context.Context, path string) (ProbeResult, error) {
	res, err := f.Runner.Run(ctx, "ffprobe", ffmpeg.ProbeArgs(path), ffmpeg.RunOptions{})
	if err != nil {
		return ProbeResult{}, err
	}
	if strings.TrimSpace(res.Stdout) == "" {
		return ProbeResult{}, &types.Error{
			Kind:    types.KindProcessExit,
			Message: "ffprobe returned no metadata",
			Stderr:  res.Stderr,
		}
	}
	return f.Converter.Convert(res.Stdout)
}
