package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lepinkainen/videobatch/ffmpeg"
	"github.com/lepinkainen/videobatch/utils"
)

// EncodeOptions holds configuration for H.265 encoding
type EncodeOptions struct {
	Preset      string // x265 preset (ultrafast ... placebo)
	Format      string // container format and output extension
	PixelFormat string // optional -pix_fmt override
	Now         func() time.Time
}

// DefaultEncodeOptions returns the defaults used by the encode task
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Preset: "medium",
		Format: "mp4",
		Now:    time.Now,
	}
}

func (o EncodeOptions) withDefaults() EncodeOptions {
	d := DefaultEncodeOptions()
	if o.Preset == "" {
		o.Preset = d.Preset
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}

// EncodeJob is a fully planned ffmpeg invocation
type EncodeJob struct {
	Input  string
	Output string
	Args   []string
}

// PlanEncode derives the libx265 command for one video
func PlanEncode(info VideoInfo, opts EncodeOptions) (EncodeJob, error) {
	opts = opts.withDefaults()
	meta := info.Metadata

	params := ffmpeg.X265Params{LogLevel: "error", InputDepth: meta.BitsPerRawSample}
	if profile, ok := ProfileByPixelFormat(meta.PixFmt); ok {
		params.Profile = profile
	}

	output := utils.OutputPath(info.Input, opts.Format, opts.Now())
	cmd := ffmpeg.H265(params).
		Progress("pipe:2").
		Input(info.Input).
		CRF(CRFByPixelCount(meta.PixelCount())).
		Preset(opts.Preset).
		Format(opts.Format).
		CopyAudio().
		Output(output)
	if opts.PixelFormat != "" {
		cmd = cmd.PixelFormat(opts.PixelFormat)
	}

	args, err := cmd.Args()
	if err != nil {
		return EncodeJob{}, fmt.Errorf("failed to build encode command for %s: %w", info.Input, err)
	}
	return EncodeJob{Input: info.Input, Output: output, Args: args}, nil
}

// PlanQuickTimeRemux derives the stream-copy command that retags HEVC as hvc1
func PlanQuickTimeRemux(info VideoInfo, format string, now time.Time) (EncodeJob, error) {
	if format == "" {
		format = "mp4"
	}
	output := utils.OutputPath(info.Input, format, now)
	args, err := ffmpeg.NewCommand().
		Input(info.Input).
		CopyVideo().
		Format(format).
		VideoTag("hvc1").
		CopyAudio().
		Output(output).
		Args()
	if err != nil {
		return EncodeJob{}, fmt.Errorf("failed to build remux command for %s: %w", info.Input, err)
	}
	return EncodeJob{Input: info.Input, Output: output, Args: args}, nil
}

// Execute runs the job through runner, forwarding progress snapshots
func (j EncodeJob) Execute(ctx context.Context, runner ffmpeg.Runner, onProgress func(ffmpeg.Progress)) error {
	if err := os.MkdirAll(filepath.Dir(j.Output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if _, err := runner.Run(ctx, "ffmpeg", j.Args, ffmpeg.RunOptions{OnProgress: onProgress}); err != nil {
		return err
	}
	return nil
}
