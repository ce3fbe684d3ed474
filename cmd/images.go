package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/videobatch/images"
	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
	"github.com/lepinkainen/videobatch/utils"
)

// ImagesCmd re-encodes every image under a path at maximum quality
type ImagesCmd struct {
	Path string `arg:"" optional:"" default:"." help:"Image file or a folder of images"`
}

func (cmd *ImagesCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	return runImages(ctx, appCtx, DefaultEnv(appCtx), cmd.Path)
}

func runImages(ctx context.Context, appCtx *types.AppContext, env *Env, input string) error {
	env.println(ui.HeaderStyle.Render(fmt.Sprintf("videobatch %s: image encoding", appCtx.VersionOrDefault())))

	lim := limiter(appCtx)
	if appCtx == nil || appCtx.Workers <= 0 {
		cwd, err := env.Getwd()
		if err != nil {
			return err
		}
		if utils.IsNetworkInput(input, cwd) {
			lim = utils.NewLimiter(1)
			env.println(ui.WarningStyle.Render("⚠️  Network drive detected, using 1 worker"))
		}
	}

	paths, err := images.BuildImageList(ctx, input, lim, appCtx.Log().Named("images"), env.Getwd)
	if err != nil {
		return err
	}

	env.println(ui.ProcessingStyle.Render(fmt.Sprintf("🖼️  Encoding %d images with %d workers", len(paths), lim.Size())))

	bar := ui.NewCounter(len(paths), "encoding", env.Out)
	report := images.EncodeAll(ctx, paths, lim, env.Now, func() { _ = bar.Add(1) })
	_ = bar.Finish()

	for _, out := range report.Successes {
		env.println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", out)))
	}
	for _, err := range report.Failures {
		appCtx.Log().Error("image encode failed", "error", err)
		env.println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
	}

	env.printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("✅ Encoded: %d, ❌ Failed: %d", len(report.Successes), len(report.Failures))))
	return nil
}
