package ffmpeg

import (
	"errors"
	"reflect"
	"testing"
)

func TestH265_EncodeShape(t *testing.T) {
	args, err := H265(X265Params{LogLevel: "error", Profile: "main", InputDepth: 8}).
		Progress("pipe:2").
		Input("in.mov").
		CRF(20).
		Preset("medium").
		Format("mp4").
		CopyAudio().
		Output("out.mp4").
		Args()
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}

	want := []string{
		"-hide_banner", "-loglevel", "error", "-progress", "pipe:2",
		"-i", "in.mov",
		"-c:v", "libx265",
		"-x265-params", "log-level=error:profile=main:input-depth=8",
		"-crf", "20",
		"-preset", "medium",
		"-f", "mp4",
		"-c:a", "copy",
		"out.mp4",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Expected %v, got %v", want, args)
	}
}

func TestRemuxShape(t *testing.T) {
	args, err := NewCommand().
		Input("in.mp4").
		CopyVideo().
		Format("mp4").
		VideoTag("hvc1").
		CopyAudio().
		Output("out.mp4").
		Args()
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}

	want := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "in.mp4",
		"-c:v", "copy",
		"-f", "mp4",
		"-tag:v", "hvc1",
		"-c:a", "copy",
		"out.mp4",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Expected %v, got %v", want, args)
	}
}

func TestH265_NoParamsNoBlob(t *testing.T) {
	args, err := H265(X265Params{}).Input("a").Output("b").Args()
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}
	for _, a := range args {
		if a == "-x265-params" {
			t.Errorf("Expected no -x265-params without sub-parameters, got %v", args)
		}
	}
}

func TestCommand_PixelFormatOrder(t *testing.T) {
	args, err := H265(X265Params{Profile: "main10"}).
		Input("a").
		PixelFormat("yuv420p10le").
		CRF(18).
		Output("b").
		Args()
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}
	want := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "a",
		"-c:v", "libx265",
		"-x265-params", "profile=main10",
		"-pix_fmt", "yuv420p10le",
		"-crf", "18",
		"b",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Expected %v, got %v", want, args)
	}
}

func TestCommand_Immutable(t *testing.T) {
	base := H265(X265Params{LogLevel: "error"}).Input("a").Output("b")
	_ = base.CodecParam("profile", "main").Progress("pipe:2")

	args, err := base.Args()
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}
	for _, a := range args {
		if a == "-progress" || a == "log-level=error:profile=main" {
			t.Errorf("Expected base command to be unchanged, got %v", args)
		}
	}
}

func TestCommand_RequiresInputAndOutput(t *testing.T) {
	if _, err := NewCommand().Input("a").Args(); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Expected ErrNoOutput, got %v", err)
	}
	if _, err := NewCommand().Output("b").Args(); !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
}

func TestProbeArgs(t *testing.T) {
	want := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream:format",
		"-of", "default=noprint_wrappers=1:nokey=0",
		"movie.mkv",
	}
	if got := ProbeArgs("movie.mkv"); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
