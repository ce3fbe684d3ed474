package video

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// VideoExtensions are the container extensions considered during a directory scan
var VideoExtensions = []string{"avi", "dash", "flv", "m4v", "mkv", "mov", "mp4", "mpeg", "rmvb", "ts", "webm", "wmv"}

// ImageExtensions are the still-image extensions considered during a directory scan
var ImageExtensions = []string{"gif", "jpeg", "jpg", "png", "webp"}

// realMedia containers are video but not sniffed under a video/ MIME type
var realMedia = map[string]bool{
	"application/vnd.rn-realmedia":     true,
	"application/vnd.rn-realmedia-vbr": true,
}

// HasExtension checks the extension of path against exts, ignoring case
func HasExtension(path string, exts []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func sniffPrefix(path, prefix string) (bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, err
	}
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), prefix) || (prefix == "video/" && realMedia[m.String()]) {
			return true, nil
		}
	}
	return false, nil
}

// IsVideoContent reports whether the file's bytes look like a video container
func IsVideoContent(_ context.Context, path string) (bool, error) {
	return sniffPrefix(path, "video/")
}

// IsImageContent reports whether the file's bytes look like an image
func IsImageContent(_ context.Context, path string) (bool, error) {
	return sniffPrefix(path, "image/")
}
