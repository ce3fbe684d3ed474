package cmd

import (
	"fmt"

	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/ui"
	"github.com/lepinkainen/videobatch/utils"
)

// CheckCmd reports whether the external tools are installed
type CheckCmd struct{}

func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	return runCheck(DefaultEnv(appCtx))
}

func runCheck(env *Env) error {
	for _, name := range utils.RequiredBinaries {
		path, err := env.LookPath(name)
		if err != nil {
			env.println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: not found", name)))
			continue
		}
		env.println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s: %s", name, path)))
	}
	return utils.EnsureRequiredBinaries(env.LookPath)
}
