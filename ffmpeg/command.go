package ffmpeg

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrNoOutput is returned by Args when no output path was set
var ErrNoOutput = errors.New("ffmpeg command has no output path")

// ErrNoInput is returned by Args when no input path was set
var ErrNoInput = errors.New("ffmpeg command has no input path")

const streamCopy = "copy"

// Command is an immutable ffmpeg argument list under construction. Every
// method returns a modified copy; the receiver is never changed.
type Command struct {
	globals     []string
	input       string
	videoCodec  string
	paramsFlag  string
	params      []string
	pixelFormat string
	crf         int
	hasCRF      bool
	preset      string
	format      string
	videoTag    string
	audioCodec  string
	outputOpts  []string
	output      string
}

// NewCommand returns a command with the banner hidden and logging limited to errors
func NewCommand() Command {
	return Command{globals: []string{"-hide_banner", "-loglevel", "error"}}
}

// Global appends raw global options
func (c Command) Global(opts ...string) Command {
	c.globals = append(slices.Clone(c.globals), opts...)
	return c
}

// Progress asks ffmpeg to write key=value progress blocks to target, e.g. pipe:2
func (c Command) Progress(target string) Command {
	return c.Global("-progress", target)
}

func (c Command) Input(path string) Command {
	c.input = path
	return c
}

func (c Command) VideoCodec(codec string) Command {
	c.videoCodec = codec
	return c
}

// CopyVideo passes the video stream through untouched
func (c Command) CopyVideo() Command {
	c.videoCodec = streamCopy
	c.paramsFlag = ""
	c.params = nil
	return c
}

// CodecParams sets the flag carrying encoder-specific k=v options, e.g. -x265-params
func (c Command) CodecParams(flag string) Command {
	c.paramsFlag = flag
	return c
}

// CodecParam adds one k=v entry to the encoder parameter blob
func (c Command) CodecParam(key, value string) Command {
	c.params = append(slices.Clone(c.params), key+"="+value)
	return c
}

func (c Command) PixelFormat(pixFmt string) Command {
	c.pixelFormat = pixFmt
	return c
}

func (c Command) CRF(crf int) Command {
	c.crf = crf
	c.hasCRF = true
	return c
}

func (c Command) Preset(preset string) Command {
	c.preset = preset
	return c
}

func (c Command) Format(format string) Command {
	c.format = format
	return c
}

func (c Command) VideoTag(tag string) Command {
	c.videoTag = tag
	return c
}

func (c Command) AudioCodec(codec string) Command {
	c.audioCodec = codec
	return c
}

// CopyAudio passes the audio stream through untouched
func (c Command) CopyAudio() Command {
	return c.AudioCodec(streamCopy)
}

// OutputOptions appends raw output-side options emitted just before the output path
func (c Command) OutputOptions(opts ...string) Command {
	c.outputOpts = append(slices.Clone(c.outputOpts), opts...)
	return c
}

func (c Command) Output(path string) Command {
	c.output = path
	return c
}

// Args renders the argument vector. The output path is always the last token.
func (c Command) Args() ([]string, error) {
	if c.input == "" {
		return nil, ErrNoInput
	}
	if c.output == "" {
		return nil, ErrNoOutput
	}

	args := slices.Clone(c.globals)
	args = append(args, "-i", c.input)

	if c.videoCodec != "" {
		args = append(args, "-c:v", c.videoCodec)
	}
	if c.paramsFlag != "" && len(c.params) > 0 {
		args = append(args, c.paramsFlag, strings.Join(c.params, ":"))
	}
	if c.pixelFormat != "" {
		args = append(args, "-pix_fmt", c.pixelFormat)
	}
	if c.hasCRF {
		args = append(args, "-crf", strconv.Itoa(c.crf))
	}
	if c.preset != "" {
		args = append(args, "-preset", c.preset)
	}
	if c.format != "" {
		args = append(args, "-f", c.format)
	}
	if c.videoTag != "" {
		args = append(args, "-tag:v", c.videoTag)
	}
	if c.audioCodec != "" {
		args = append(args, "-c:a", c.audioCodec)
	}
	args = append(args, c.outputOpts...)

	return append(args, c.output), nil
}

// X265Params are the libx265 options the encoder exposes through -x265-params
type X265Params struct {
	LogLevel   string
	Profile    string
	InputDepth int
}

// H265 returns a libx265 command carrying params. Empty params emit no blob.
func H265(params X265Params) Command {
	c := NewCommand().VideoCodec("libx265").CodecParams("-x265-params")
	if params.LogLevel != "" {
		c = c.CodecParam("log-level", params.LogLevel)
	}
	if params.Profile != "" {
		c = c.CodecParam("profile", params.Profile)
	}
	if params.InputDepth > 0 {
		c = c.CodecParam("input-depth", strconv.Itoa(params.InputDepth))
	}
	return c
}

// ProbeArgs returns the ffprobe arguments for the first video stream and the container
func ProbeArgs(input string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream:format",
		"-of", "default=noprint_wrappers=1:nokey=0",
		input,
	}
}
