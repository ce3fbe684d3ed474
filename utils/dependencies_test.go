package utils

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/lepinkainen/videobatch/types"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestEnsureRequiredBinaries(t *testing.T) {
	tests := []struct {
		name        string
		available   []string
		wantMissing []string
	}{
		{name: "both available", available: []string{"ffmpeg", "ffprobe"}},
		{name: "ffprobe missing", available: []string{"ffmpeg"}, wantMissing: []string{"ffprobe"}},
		{name: "ffmpeg missing", available: []string{"ffprobe"}, wantMissing: []string{"ffmpeg"}},
		{name: "both missing reported together", wantMissing: []string{"ffmpeg", "ffprobe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureRequiredBinaries(fakeLookPath(tt.available...))

			if tt.wantMissing == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}

			var e *types.Error
			if !errors.As(err, &e) || e.Kind != types.KindMissingBinaries {
				t.Fatalf("Expected KindMissingBinaries, got %v", err)
			}
			if !reflect.DeepEqual(e.Tools, tt.wantMissing) {
				t.Errorf("Expected missing %v, got %v", tt.wantMissing, e.Tools)
			}
			if !strings.Contains(e.Hint, "Download from https://ffmpeg.org/") {
				t.Errorf("Expected install hint, got %q", e.Hint)
			}
		})
	}
}

func TestInstallHint(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "brew install ffmpeg or Download from https://ffmpeg.org/"},
		{"linux", "sudo apt-get install ffmpeg or Download from https://ffmpeg.org/"},
		{"windows", "choco install ffmpeg or Download from https://ffmpeg.org/"},
		{"plan9", "Download from https://ffmpeg.org/"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := installHint(tt.goos); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
