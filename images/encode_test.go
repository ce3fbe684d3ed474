package images

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/utils"
)

var fixedTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func writeImage(t *testing.T, path string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"photo.png", "photo.JPG"} {
		t.Run(name, func(t *testing.T) {
			src := writeImage(t, filepath.Join(dir, name))

			out, err := Encode(src, fixedTime)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			want := filepath.Join(dir, "photo-20240506070809."+utils.Ext(src))
			if name == "photo.JPG" {
				want = filepath.Join(dir, "photo-20240506070809.jpg")
			}
			if out != want {
				t.Errorf("Expected output %q, got %q", want, out)
			}
			if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
				t.Errorf("Expected non-empty output file, got %v", err)
			}
		})
	}
}

func TestEncode_UnsupportedExtension(t *testing.T) {
	_, err := Encode(filepath.Join(t.TempDir(), "anim.webp"), fixedTime)
	if !types.IsKind(err, types.KindNotSupported) {
		t.Errorf("Expected KindNotSupported, got %v", err)
	}
}

func TestEncodeAll_SettlesEveryFile(t *testing.T) {
	dir := t.TempDir()
	good := writeImage(t, filepath.Join(dir, "good.png"))
	broken := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(broken, []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	var done atomic.Int32
	report := EncodeAll(context.Background(), []string{broken, good}, utils.NewLimiter(2),
		func() time.Time { return fixedTime }, func() { done.Add(1) })

	if len(report.Successes) != 1 || len(report.Failures) != 1 {
		t.Fatalf("Expected 1 success and 1 failure, got %+v", report)
	}
	if done.Load() != 2 {
		t.Errorf("Expected onDone for every file, got %d", done.Load())
	}

	var e *types.Error
	if !errors.As(report.Failures[0], &e) || e.Path != broken {
		t.Errorf("Expected failure tagged with %s, got %v", broken, report.Failures[0])
	}
}

func TestBuildImageList(t *testing.T) {
	dir := t.TempDir()
	getwd := func() (string, error) { return dir, nil }

	_, err := BuildImageList(context.Background(), ".", utils.NewLimiter(1), hclog.NewNullLogger(), getwd)
	if !types.IsKind(err, types.KindNothingToProcess) {
		t.Fatalf("Expected KindNothingToProcess, got %v", err)
	}

	img := writeImage(t, filepath.Join(dir, "a.png"))
	if err := os.WriteFile(filepath.Join(dir, "fake.png"), []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BuildImageList(context.Background(), ".", utils.NewLimiter(1), hclog.NewNullLogger(), getwd)
	if err != nil {
		t.Fatalf("BuildImageList() error = %v", err)
	}
	if len(got) != 1 || got[0] != img {
		t.Errorf("Expected [%s], got %v", img, got)
	}
}
