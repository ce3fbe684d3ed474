package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/cmd"
	"github.com/lepinkainen/videobatch/config"
	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
	"github.com/lepinkainen/videobatch/utils"
)

var Version = "dev"

type CLI struct {
	Config   string `help:"Path to the TOML config file" default:"videobatch.toml" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (trace, debug, info, warn, error)"`
	Workers  int    `help:"Number of parallel workers (0 = auto)"`

	Interactive cmd.InteractiveCmd `cmd:"" default:"1" help:"Pick a task and a path interactively"`
	Encode      cmd.EncodeCmd      `cmd:"" help:"Re-encode videos to H.265"`
	QuickTime   cmd.QuickTimeCmd   `cmd:"" name:"quicktime" help:"Retag hev1 HEVC videos as hvc1 for QuickTime"`
	Images      cmd.ImagesCmd      `cmd:"" help:"Re-encode images at maximum quality"`
	Check       cmd.CheckCmd       `cmd:"" help:"Check that ffmpeg and ffprobe are installed"`
}

// settings merges CLI flags over the loaded configuration
func (c *CLI) settings(getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(c.Config, getenv)
	if err != nil {
		return cfg, err
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	return cfg, nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("videobatch"),
		kong.Description("Batch video and image re-encoding with ffmpeg"),
		kong.UsageOnError(),
	)

	cfg, err := cli.settings(os.Getenv)
	kctx.FatalIfErrorf(err)

	logger := utils.NewLogger(cfg.LogLevel, os.Stderr)
	appCtx := &types.AppContext{
		Version: Version,
		Logger:  logger,
		Config:  cfg,
		Workers: cfg.Workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(appCtx)
	stop()
	os.Exit(report(err, os.Stderr, logger))
}

// report prints err for the user and returns the process exit code
func report(err error, out io.Writer, logger hclog.Logger) int {
	if err == nil {
		return 0
	}
	msg, known := renderError(err)
	if !known {
		logger.Error("run failed", "error", err)
	}
	fmt.Fprintln(out, ui.ErrorStyle.Render(msg))
	return 1
}

// renderError turns an error into the line shown to the user. known is
// false for errors without a dedicated rendering.
func renderError(err error) (msg string, known bool) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist) {
		return "no such path:\n" + pathErr.Path, true
	}

	var e *types.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case types.KindNothingToProcess, types.KindNothingProcessable:
			return e.Message, true
		case types.KindMissingBinaries:
			return e.Error(), true
		}
	}
	return err.Error(), false
}
