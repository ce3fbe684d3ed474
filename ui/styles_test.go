package ui

import (
	"strings"
	"testing"
)

func TestStyles_KeepText(t *testing.T) {
	for name, render := range map[string]func(...string) string{
		"header":     HeaderStyle.Render,
		"success":    SuccessStyle.Render,
		"error":      ErrorStyle.Render,
		"warning":    WarningStyle.Render,
		"info":       InfoStyle.Render,
		"processing": ProcessingStyle.Render,
	} {
		if got := render("clip.mp4"); !strings.Contains(got, "clip.mp4") {
			t.Errorf("Expected %s style to keep its text, got %q", name, got)
		}
	}
}
