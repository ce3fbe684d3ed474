package video

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/corona10/goimagehash"
	"github.com/lepinkainen/videobatch/ffmpeg"
)

// FrameArgs returns the ffmpeg arguments that decode a single frame at
// offset seconds and write it to stdout as PNG.
func FrameArgs(input string, offset float64) ([]string, error) {
	return ffmpeg.NewCommand().
		Global("-ss", strconv.FormatFloat(offset, 'f', 3, 64)).
		Input(input).
		VideoCodec("png").
		Format("image2pipe").
		OutputOptions("-frames:v", "1", "-an").
		Output("pipe:1").
		Args()
}

// FramePerceptualHash decodes one frame of a video and hashes it
func FramePerceptualHash(ctx context.Context, runner ffmpeg.Runner, input string, offset float64) (*goimagehash.ImageHash, error) {
	args, err := FrameArgs(input, offset)
	if err != nil {
		return nil, err
	}

	res, err := runner.Run(ctx, "ffmpeg", args, ffmpeg.RunOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to extract frame: %w", err)
	}

	img, _, err := image.Decode(strings.NewReader(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}
	return hash, nil
}

// CompareFrames hashes the same moment of two videos and returns the
// Hamming distance between the hashes (0 means identical).
func CompareFrames(ctx context.Context, runner ffmpeg.Runner, a, b string, duration float64) (int, error) {
	offset := duration / 2

	hashA, err := FramePerceptualHash(ctx, runner, a, offset)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a, err)
	}
	hashB, err := FramePerceptualHash(ctx, runner, b, offset)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", b, err)
	}

	return hashA.Distance(hashB)
}
