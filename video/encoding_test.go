package video

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/lepinkainen/videobatch/ffmpeg"
)

var fixedNow = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestPlanEncode_1080p(t *testing.T) {
	info := VideoInfo{
		Input: filepath.Join("clips", "input.mp4"),
		Metadata: ProbeResult{
			CodecName: "h264", Width: 1920, Height: 1080,
			PixFmt: "yuv420p", BitsPerRawSample: 8, Duration: 10,
		},
	}

	job, err := PlanEncode(info, EncodeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("PlanEncode() error = %v", err)
	}

	wantOut := filepath.Join("clips", "input-20240102030405.mp4")
	if job.Output != wantOut {
		t.Errorf("Expected output %q, got %q", wantOut, job.Output)
	}

	want := []string{
		"-hide_banner", "-loglevel", "error", "-progress", "pipe:2",
		"-i", info.Input,
		"-c:v", "libx265",
		"-x265-params", "log-level=error:profile=main:input-depth=8",
		"-crf", "20",
		"-preset", "medium",
		"-f", "mp4",
		"-c:a", "copy",
		wantOut,
	}
	if !reflect.DeepEqual(job.Args, want) {
		t.Errorf("Expected %v, got %v", want, job.Args)
	}
}

func TestPlanEncode_UnknownPixelFormatOmitsProfile(t *testing.T) {
	info := VideoInfo{
		Input:    "a.mov",
		Metadata: ProbeResult{Width: 640, Height: 360, PixFmt: "nv12", BitsPerRawSample: 8},
	}

	job, err := PlanEncode(info, EncodeOptions{Now: fixedNow, Preset: "slow", PixelFormat: "yuv420p"})
	if err != nil {
		t.Fatalf("PlanEncode() error = %v", err)
	}

	assertArgPair(t, job.Args, "-x265-params", "log-level=error:input-depth=8")
	assertArgPair(t, job.Args, "-crf", "18")
	assertArgPair(t, job.Args, "-preset", "slow")
	assertArgPair(t, job.Args, "-pix_fmt", "yuv420p")
}

func TestPlanQuickTimeRemux(t *testing.T) {
	info := VideoInfo{Input: "movie.mkv", Metadata: ProbeResult{CodecName: "hevc", CodecTagString: "hev1"}}

	job, err := PlanQuickTimeRemux(info, "", fixedNow())
	if err != nil {
		t.Fatalf("PlanQuickTimeRemux() error = %v", err)
	}

	want := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "movie.mkv",
		"-c:v", "copy",
		"-f", "mp4",
		"-tag:v", "hvc1",
		"-c:a", "copy",
		"movie-20240102030405.mp4",
	}
	if !reflect.DeepEqual(job.Args, want) {
		t.Errorf("Expected %v, got %v", want, job.Args)
	}
}

func TestEncodeJob_Execute(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.mp4")
	job := EncodeJob{Input: "in.mp4", Output: out, Args: []string{"-i", "in.mp4", out}}

	var forwarded int
	runner := &fakeRunner{
		result: &ffmpeg.Result{},
		onRun: func(name string, _ []string, opts ffmpeg.RunOptions) {
			if name != "ffmpeg" {
				t.Errorf("Expected ffmpeg, got %s", name)
			}
			if opts.OnProgress != nil {
				opts.OnProgress(ffmpeg.Progress{})
			}
		},
	}

	err := job.Execute(context.Background(), runner, func(ffmpeg.Progress) { forwarded++ })
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if forwarded != 1 {
		t.Errorf("Expected progress to be forwarded once, got %d", forwarded)
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		t.Errorf("Expected output directory to be created: %v", err)
	}
}

func assertArgPair(t *testing.T, args []string, flag, value string) {
	t.Helper()
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			if args[i+1] != value {
				t.Errorf("Expected %s %s, got %s %s", flag, value, flag, args[i+1])
			}
			return
		}
	}
	t.Errorf("Expected %s in %v", flag, args)
}
