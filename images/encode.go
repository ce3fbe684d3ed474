// Package images re-encodes still images at maximum quality.
package images

import (
	"context"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/utils"
	"github.com/lepinkainen/videobatch/video"
)

// encodeOptions maps a lower-case extension to its encoder settings
var encodeOptions = map[string][]imaging.EncodeOption{
	"jpg":  {imaging.JPEGQuality(100)},
	"jpeg": {imaging.JPEGQuality(100)},
	"png":  {imaging.PNGCompressionLevel(png.BestCompression)},
	"gif":  {imaging.GIFNumColors(256)},
}

// Encode re-encodes input next to itself as {stem}-{timestamp}.{ext} and
// returns the output path.
func Encode(input string, now time.Time) (string, error) {
	ext := strings.ToLower(utils.Ext(input))
	opts, ok := encodeOptions[ext]
	if !ok {
		return "", &types.Error{
			Kind:    types.KindNotSupported,
			Message: fmt.Sprintf("not supported extension: %s", ext),
			Path:    input,
		}
	}

	img, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", input, err)
	}

	output := utils.OutputPath(input, ext, now)
	if err := imaging.Save(img, output, opts...); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", output, err)
	}
	return output, nil
}

// BuildImageList resolves user input and collects image files under it
func BuildImageList(ctx context.Context, input string, limiter *utils.Limiter, logger hclog.Logger, getwd func() (string, error)) ([]string, error) {
	p := &video.Pipeline{Getwd: getwd}
	root, err := p.ResolveInput(input)
	if err != nil {
		return nil, err
	}

	paths, err := video.CollectMediaPaths(ctx, root, video.CollectOptions{
		Extensions:   video.ImageExtensions,
		IsValidMedia: video.IsImageContent,
		Limiter:      limiter,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, types.NothingToProcess("no image to process")
	}
	return paths, nil
}

// Report summarizes a batch encode
type Report struct {
	Successes []string
	Failures  []error
}

// EncodeAll encodes every image under the limiter. One failure never stops
// the others. onDone is called after each file, success or not.
func EncodeAll(ctx context.Context, paths []string, limiter *utils.Limiter, now func() time.Time, onDone func()) Report {
	outcomes := utils.Settle(ctx, limiter, paths, func(_ context.Context, path string) (string, error) {
		defer func() {
			if onDone != nil {
				onDone()
			}
		}()
		out, err := Encode(path, now())
		if err != nil {
			return "", types.TagPath(err, path)
		}
		return out, nil
	})

	var report Report
	for _, o := range outcomes {
		if o.Err != nil {
			report.Failures = append(report.Failures, o.Err)
			continue
		}
		report.Successes = append(report.Successes, o.Value)
	}
	return report
}
