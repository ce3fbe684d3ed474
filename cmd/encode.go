package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
	"github.com/lepinkainen/videobatch/utils"
	"github.com/lepinkainen/videobatch/video"
)

// EncodeCmd re-encodes every video under a path to H.265
type EncodeCmd struct {
	Path        string `arg:"" optional:"" default:"." help:"Video file or a folder of videos"`
	Preset      string `help:"x265 encoding preset (ultrafast ... placebo)"`
	Format      string `help:"Output container format"`
	HighBitrate bool   `name:"high-bitrate" help:"Only encode videos whose bitrate exceeds the ceiling for their resolution"`
}

func (cmd *EncodeCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	cfg := appCtx.Settings()
	s := encodeSettings{
		Preset:      firstNonEmpty(cmd.Preset, cfg.Preset),
		Format:      firstNonEmpty(cmd.Format, cfg.Format),
		HighBitrate: cmd.HighBitrate || cfg.FilterHighBitrate,
	}
	return runEncode(ctx, appCtx, DefaultEnv(appCtx), cmd.Path, s)
}

type encodeSettings struct {
	Preset      string
	Format      string
	HighBitrate bool
}

// encodeStats tracks statistics during encoding
type encodeStats struct {
	Processed         int
	Failed            int
	TotalOriginalSize int64
	TotalNewSize      int64
}

func runEncode(ctx context.Context, appCtx *types.AppContext, env *Env, input string, s encodeSettings) error {
	if err := utils.EnsureRequiredBinaries(env.LookPath); err != nil {
		return err
	}

	env.println(ui.HeaderStyle.Render(fmt.Sprintf("videobatch %s: video encoding", appCtx.VersionOrDefault())))

	list, err := buildVideoList(ctx, appCtx, env, input)
	if err != nil {
		return err
	}

	if s.HighBitrate {
		for _, info := range list {
			env.println(bitrateLine(info))
		}
		list = video.FilterHighBitrate(list)
		if len(list) == 0 {
			env.println(ui.WarningStyle.Render("🎯 No videos exceed the bitrate ceiling."))
			return nil
		}
	}

	defaults := video.DefaultEncodeOptions()
	opts := video.EncodeOptions{
		Preset: firstNonEmpty(s.Preset, defaults.Preset),
		Format: firstNonEmpty(s.Format, defaults.Format),
		Now:    env.Now,
	}
	env.println(ui.ProcessingStyle.Render(fmt.Sprintf("🎬 Encoding %d files to H.265 (preset %s)", len(list), opts.Preset)))

	reporter := ui.NewReporter(env.Out)
	stats := &encodeStats{}
	for i, info := range list {
		env.printf("processing %d/%d:\n%s\n", i+1, len(list), info.Input)

		output, err := encodeOne(ctx, env, reporter, info, opts)
		if err != nil {
			err = types.TagPath(err, info.Input)
			appCtx.Log().Error("encode failed", "path", info.Input, "error", err)
			env.println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
			stats.Failed++
			if ctx.Err() != nil {
				return err
			}
			continue
		}

		stats.Processed++
		env.println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", output)))
		before, okBefore := fileSize(info.Input)
		after, okAfter := fileSize(output)
		if okBefore && okAfter {
			stats.TotalOriginalSize += before
			stats.TotalNewSize += after
			env.printf("   📏 %.1f MB → %.1f MB\n", megabytes(before), megabytes(after))
		}
	}

	printEncodeSummary(env, stats)
	return nil
}

func encodeOne(ctx context.Context, env *Env, reporter *ui.Reporter, info video.VideoInfo, opts video.EncodeOptions) (string, error) {
	job, err := video.PlanEncode(info, opts)
	if err != nil {
		return "", err
	}
	handler := ui.NewProgressHandler(info.Metadata.Duration, reporter.Update)
	if err := job.Execute(ctx, env.Runner, handler.Handle); err != nil {
		return "", err
	}
	return job.Output, nil
}

func printEncodeSummary(env *Env, stats *encodeStats) {
	env.printf("\n%s\n", ui.HeaderStyle.Render("📊 Encoding Summary"))
	env.printf("   Processed: %d files\n", stats.Processed)
	env.printf("   Errors: %d files\n", stats.Failed)

	if stats.TotalOriginalSize > 0 {
		saved := stats.TotalOriginalSize - stats.TotalNewSize
		percent := float64(saved) / float64(stats.TotalOriginalSize) * 100
		env.printf("   Total space saved: %.1f MB (%.1f%%)\n", megabytes(saved), percent)
		env.printf("   Size reduction: %.1f MB → %.1f MB\n", megabytes(stats.TotalOriginalSize), megabytes(stats.TotalNewSize))
	}

	env.printf("\n%s\n", ui.SuccessStyle.Render("🎉 Encoding complete!"))
}

// bitrateLine shows a video's bitrate against the ceiling for its resolution
func bitrateLine(info video.VideoInfo) string {
	meta := info.Metadata
	return fmt.Sprintf("   %s: %s Mbps / ceiling %s Mbps", info.Input,
		video.FormatMbps(video.BitrateToMbps(meta.BitRate)),
		video.FormatMbps(video.MaxMbpsByPixelCount(meta.PixelCount())))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
