package utils

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// NewLogger builds the root diagnostics logger. Unknown levels fall back to warn.
func NewLogger(level string, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "videobatch",
		Level:  lvl,
		Output: out,
	})
}
