package cmd

import (
	"context"

	"github.com/lepinkainen/videobatch/types"
)

// Dispatch runs one task against input using the configured defaults
func Dispatch(ctx context.Context, appCtx *types.AppContext, env *Env, task types.TaskType, input string) error {
	cfg := appCtx.Settings()
	switch task {
	case types.TaskVideoEncode:
		return runEncode(ctx, appCtx, env, input, encodeSettings{
			Preset:      cfg.Preset,
			Format:      cfg.Format,
			HighBitrate: cfg.FilterHighBitrate,
		})
	case types.TaskQuickTime:
		return runQuickTime(ctx, appCtx, env, input, quickTimeSettings{
			Format:    cfg.Format,
			Threshold: cfg.VerifyThreshold,
		})
	case types.TaskImageEncode:
		return runImages(ctx, appCtx, env, input)
	default:
		return types.UnknownTask(string(task))
	}
}
