package ui

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// NewSpinner returns an indeterminate spinner for scans whose size is unknown
func NewSpinner(description string, out io.Writer) *progressbar.ProgressBar {
	if out == nil {
		out = os.Stderr
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

// NewCounter returns a bar counting completed files of a batch
func NewCounter(total int, description string, out io.Writer) *progressbar.ProgressBar {
	if out == nil {
		out = os.Stderr
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
