package utils

import (
	"os/exec"
	"runtime"

	"github.com/lepinkainen/videobatch/types"
)

// RequiredBinaries are the external tools every media task shells out to
var RequiredBinaries = []string{"ffmpeg", "ffprobe"}

// EnsureRequiredBinaries checks that every required tool resolves via lookPath
// and reports all missing ones at once. A nil lookPath uses exec.LookPath.
func EnsureRequiredBinaries(lookPath func(string) (string, error)) error {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var missing []string
	for _, name := range RequiredBinaries {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return types.MissingBinaries(missing, installHint(runtime.GOOS))
	}
	return nil
}

// installHint returns platform-specific installation instructions
func installHint(goos string) string {
	const download = "Download from https://ffmpeg.org/"
	switch goos {
	case "darwin":
		return "brew install ffmpeg or " + download
	case "linux":
		return "sudo apt-get install ffmpeg or " + download
	case "windows":
		return "choco install ffmpeg or " + download
	default:
		return download
	}
}
