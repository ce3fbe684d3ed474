package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var slashRun = regexp.MustCompile(`[\\/]+`)

// timestampLayout is yyyyMMddHHmmss
const timestampLayout = "20060102150405"

// SanitizePathInput trims user input and collapses every run of slashes or
// backslashes into the host path separator.
func SanitizePathInput(input string) string {
	return slashRun.ReplaceAllString(strings.TrimSpace(input), string(filepath.Separator))
}

// ResolveAndNormalize makes path absolute against cwd and cleans it
func ResolveAndNormalize(path, cwd string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}

// Stem returns the file name without directory and extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ext returns the extension of path without the leading dot
func Ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// OutputPath places {stem}-{UTC yyyyMMddHHmmss}.{format} next to src
func OutputPath(src, format string, now time.Time) string {
	name := fmt.Sprintf("%s-%s.%s", Stem(src), now.UTC().Format(timestampLayout), format)
	return filepath.Join(filepath.Dir(src), name)
}

// FormatSeconds renders a second count as HH:MM:SS
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
