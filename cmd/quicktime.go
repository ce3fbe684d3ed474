package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
	"github.com/lepinkainen/videobatch/utils"
	"github.com/lepinkainen/videobatch/video"
)

// QuickTimeCmd retags hev1 HEVC videos as hvc1 so QuickTime can play them.
// Streams are copied, not re-encoded.
type QuickTimeCmd struct {
	Path      string `arg:"" optional:"" default:"." help:"Video file or a folder of videos"`
	Format    string `help:"Output container format"`
	Verify    bool   `help:"Compare a perceptual hash of one frame of source and output"`
	Threshold int    `help:"Maximum Hamming distance accepted by --verify" default:"-1"`
}

func (cmd *QuickTimeCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	cfg := appCtx.Settings()
	s := quickTimeSettings{
		Format:    firstNonEmpty(cmd.Format, cfg.Format),
		Verify:    cmd.Verify,
		Threshold: cfg.VerifyThreshold,
	}
	if cmd.Threshold >= 0 {
		s.Threshold = cmd.Threshold
	}
	return runQuickTime(ctx, appCtx, DefaultEnv(appCtx), cmd.Path, s)
}

type quickTimeSettings struct {
	Format    string
	Verify    bool
	Threshold int
}

func runQuickTime(ctx context.Context, appCtx *types.AppContext, env *Env, input string, s quickTimeSettings) error {
	if err := utils.EnsureRequiredBinaries(env.LookPath); err != nil {
		return err
	}

	env.println(ui.HeaderStyle.Render(fmt.Sprintf("videobatch %s: QuickTime HEVC retagging", appCtx.VersionOrDefault())))

	list, err := buildVideoList(ctx, appCtx, env, input)
	if err != nil {
		return err
	}

	list = video.FilterHev1Video(list)
	if len(list) == 0 {
		env.println(ui.WarningStyle.Render("🎯 No hev1 videos need retagging."))
		return nil
	}

	reporter := ui.NewReporter(env.Out)
	var done, failed int
	for i, info := range list {
		env.printf("processing %d/%d:\n%s\n", i+1, len(list), info.Input)

		err := remuxOne(ctx, env, reporter, info, s)
		if err != nil {
			err = types.TagPath(err, info.Input)
			appCtx.Log().Error("remux failed", "path", info.Input, "error", err)
			env.println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
			failed++
			if ctx.Err() != nil {
				return err
			}
			continue
		}
		done++
	}

	env.printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("✅ Retagged: %d, ❌ Failed: %d", done, failed)))
	return nil
}

func remuxOne(ctx context.Context, env *Env, reporter *ui.Reporter, info video.VideoInfo, s quickTimeSettings) error {
	job, err := video.PlanQuickTimeRemux(info, s.Format, env.Now())
	if err != nil {
		return err
	}
	handler := ui.NewProgressHandler(info.Metadata.Duration, reporter.Update)
	if err := job.Execute(ctx, env.Runner, handler.Handle); err != nil {
		return err
	}

	if !s.Verify {
		env.println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", job.Output)))
		return nil
	}

	distance, err := video.CompareFrames(ctx, env.Runner, info.Input, job.Output, info.Metadata.Duration)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if distance > s.Threshold {
		return fmt.Errorf("verification failed: frame distance %d exceeds %d for %s", distance, s.Threshold, job.Output)
	}
	env.println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s (verified, distance %d)", job.Output, distance)))
	return nil
}
