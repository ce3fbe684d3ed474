package video

import (
	"context"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/types"
	"github.com/lepinkainen/videobatch/utils"
)

// Pipeline turns a user-supplied path into a list of probed videos
type Pipeline struct {
	Prober     Prober
	Sniff      func(ctx context.Context, path string) (bool, error)
	Extensions []string
	Limiter    *utils.Limiter
	Logger     hclog.Logger

	// OnProbeFailure is told about every file excluded because probing failed.
	OnProbeFailure func(path string, err error)

	// Getwd resolves relative input; defaults to os.Getwd.
	Getwd func() (string, error)
}

func (p *Pipeline) logger() hclog.Logger {
	if p.Logger == nil {
		return hclog.NewNullLogger()
	}
	return p.Logger
}

// ResolveInput sanitizes raw user input and makes it an absolute clean path
func (p *Pipeline) ResolveInput(input string) (string, error) {
	getwd := p.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return utils.ResolveAndNormalize(utils.SanitizePathInput(input), cwd), nil
}

// BuildVideoInfoList collects candidate videos under input and probes each.
// Files whose probe fails are excluded and reported; the batch only fails
// when nothing was found or nothing could be probed.
func (p *Pipeline) BuildVideoInfoList(ctx context.Context, input string) ([]VideoInfo, error) {
	root, err := p.ResolveInput(input)
	if err != nil {
		return nil, err
	}

	exts := p.Extensions
	if exts == nil {
		exts = VideoExtensions
	}
	sniff := p.Sniff
	if sniff == nil {
		sniff = IsVideoContent
	}

	paths, err := CollectMediaPaths(ctx, root, CollectOptions{
		Extensions:   exts,
		IsValidMedia: sniff,
		Limiter:      p.Limiter,
		Logger:       p.logger(),
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, types.NothingToProcess("no video to process")
	}

	p.logger().Debug("probing candidates", "count", len(paths))

	outcomes := utils.Settle(ctx, p.Limiter, paths, p.Prober.Probe)

	infos := make([]VideoInfo, 0, len(paths))
	for i, o := range outcomes {
		if o.Err != nil {
			err := types.TagPath(o.Err, paths[i])
			p.logger().Error("processing failed", "path", paths[i], "error", err)
			if p.OnProbeFailure != nil {
				p.OnProbeFailure(paths[i], err)
			}
			continue
		}
		infos = append(infos, VideoInfo{Input: paths[i], Metadata: o.Value})
	}

	if len(infos) == 0 {
		return nil, types.NothingProcessable("no video could be probed")
	}
	return infos, nil
}

// FilterHev1Video keeps HEVC videos tagged hev1, which QuickTime refuses to play
func FilterHev1Video(list []VideoInfo) []VideoInfo {
	var out []VideoInfo
	for _, v := range list {
		if v.Metadata.CodecName == "hevc" && v.Metadata.CodecTagString == "hev1" {
			out = append(out, v)
		}
	}
	return out
}

// FilterHighBitrate keeps videos whose bitrate exceeds the ceiling for their size
func FilterHighBitrate(list []VideoInfo) []VideoInfo {
	var out []VideoInfo
	for _, v := range list {
		if IsHighBitrate(v.Metadata) {
			out = append(out, v)
		}
	}
	return out
}
