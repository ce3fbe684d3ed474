package video

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/utils"
)

// CollectOptions configures CollectMediaPaths
type CollectOptions struct {
	Extensions   []string
	IsValidMedia func(ctx context.Context, path string) (bool, error)
	Limiter      *utils.Limiter
	Logger       hclog.Logger
}

// CollectMediaPaths returns root itself when it is not a directory. For a
// directory it walks the tree, keeps regular files with a matching extension
// and confirms each one by content. Symlinks and dot entries are skipped.
func CollectMediaPaths(ctx context.Context, root string, opts CollectOptions) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}

	candidates, err := walkCandidates(root, opts.Extensions, logger)
	if err != nil {
		logger.Warn("directory scan failed", "root", root, "error", err)
		return []string{}, nil
	}

	if opts.IsValidMedia == nil {
		return candidates, nil
	}

	outcomes := utils.Settle(ctx, opts.Limiter, candidates, opts.IsValidMedia)

	files := make([]string, 0, len(candidates))
	for i, o := range outcomes {
		switch {
		case o.Err != nil:
			logger.Warn("content check failed, skipping", "path", candidates[i], "error", o.Err)
		case o.Value:
			files = append(files, candidates[i])
		default:
			logger.Debug("content does not match extension, skipping", "path", candidates[i])
		}
	}
	return files, nil
}

// walkCandidates uses filepath.WalkDir to find files with a wanted extension.
// Unreadable entries below root are logged and skipped; only a failure on
// root itself is returned.
func walkCandidates(root string, exts []string, logger hclog.Logger) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 || d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if HasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
