package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/lepinkainen/videobatch/ffmpeg"
	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
	"github.com/lepinkainen/videobatch/utils"
	"github.com/lepinkainen/videobatch/video"
)

// Env holds the collaborators a task talks to
type Env struct {
	Runner     ffmpeg.Runner
	LookPath   func(string) (string, error)
	Out        io.Writer
	Now        func() time.Time
	Getwd      func() (string, error)
	SniffVideo func(ctx context.Context, path string) (bool, error)
}

// DefaultEnv wires the real ffmpeg runner and stdout
func DefaultEnv(appCtx *types.AppContext) *Env {
	return &Env{
		Runner:     ffmpeg.NewExecRunner(appCtx.Log().Named("ffmpeg")),
		LookPath:   exec.LookPath,
		Out:        os.Stdout,
		Now:        time.Now,
		Getwd:      os.Getwd,
		SniffVideo: video.IsVideoContent,
	}
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

func (e *Env) println(s string) {
	fmt.Fprintln(e.Out, s)
}

// limiter returns the configured worker limit or the CPU-sized default
func limiter(appCtx *types.AppContext) *utils.Limiter {
	if appCtx != nil && appCtx.Workers > 0 {
		return utils.NewLimiter(appCtx.Workers)
	}
	return utils.DefaultLimiter()
}

func newPipeline(appCtx *types.AppContext, env *Env) *video.Pipeline {
	return &video.Pipeline{
		Prober: &video.FFprobe{
			Runner:    env.Runner,
			Converter: video.ProbeConverter{Required: appCtx.Settings().RequiredFields},
		},
		Sniff:   env.SniffVideo,
		Limiter: limiter(appCtx),
		Logger:  appCtx.Log().Named("pipeline"),
		Getwd:   env.Getwd,
		OnProbeFailure: func(path string, err error) {
			env.println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
		},
	}
}

// buildVideoList probes every video under input behind a spinner
func buildVideoList(ctx context.Context, appCtx *types.AppContext, env *Env, input string) ([]video.VideoInfo, error) {
	spinner := ui.NewSpinner("probing videos", env.Out)
	_ = spinner.RenderBlank()
	list, err := newPipeline(appCtx, env).BuildVideoInfoList(ctx, input)
	_ = spinner.Finish()
	return list, err
}

func fileSize(path string) (int64, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return fi.Size(), true
}

func megabytes(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
