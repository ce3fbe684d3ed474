package cmd

import (
	"context"
	"os"

	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
)

// InteractiveCmd asks for a task and a path, then runs it
type InteractiveCmd struct{}

func (cmd *InteractiveCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	prompt := func() (ui.TaskDetail, error) {
		return ui.RunPrompt(os.Stdin, os.Stdout)
	}
	return runInteractive(ctx, appCtx, DefaultEnv(appCtx), prompt)
}

func runInteractive(ctx context.Context, appCtx *types.AppContext, env *Env, prompt func() (ui.TaskDetail, error)) error {
	detail, err := prompt()
	if err != nil {
		return err
	}
	if detail.Cancelled || !detail.Continue {
		appCtx.Log().Debug("interactive run stopped", "cancelled", detail.Cancelled)
		return nil
	}
	return Dispatch(ctx, appCtx, env, detail.Task, detail.Input)
}
