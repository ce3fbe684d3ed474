package video

import (
	"math"
	"strconv"
)

// Pixel counts of common resolutions
const (
	Pixels4K    = 3840 * 2160 // 8,294,400
	Pixels1440p = 2560 * 1440 // 3,686,400
	Pixels1080p = 1920 * 1080 // 2,073,600
	Pixels720p  = 1280 * 720  // 921,600
)

type crfTier struct {
	minPixels int
	crf       int
}

// crfTiers is ordered by descending threshold; the first match wins.
var crfTiers = []crfTier{
	{Pixels4K, 22},
	{Pixels1080p, 20},
	{Pixels720p, 19},
}

const fallbackCRF = 18

// CRFByPixelCount picks the x265 quality for a frame size
func CRFByPixelCount(pixels int) int {
	for _, tier := range crfTiers {
		if pixels >= tier.minPixels {
			return tier.crf
		}
	}
	return fallbackCRF
}

var profileByPixFmt = map[string]string{
	"yuv420p":     "main",
	"yuv420p10le": "main10",
	"yuv420p12le": "main12",
	"yuv422p":     "main",
	"yuv422p10le": "main422-10",
	"yuv422p12le": "main422-12",
	"yuv444p":     "main",
	"yuv444p10le": "main444-10",
	"yuv444p12le": "main444-12",
}

// ProfileByPixelFormat returns the x265 profile for pixFmt, or false when the
// encoder should choose.
func ProfileByPixelFormat(pixFmt string) (string, bool) {
	profile, ok := profileByPixFmt[pixFmt]
	return profile, ok
}

// BitrateToMbps converts bits per second to megabits, rounded to 2 decimals
func BitrateToMbps(bitsPerSecond int64) float64 {
	return math.Round(float64(bitsPerSecond)/1e6*100) / 100
}

// FormatMbps renders a megabit value without a trailing ".0" for whole numbers
func FormatMbps(mbps float64) string {
	return strconv.FormatFloat(mbps, 'f', -1, 64)
}

type bitrateTier struct {
	minPixels int
	maxMbps   float64
}

// bitrateTiers is ordered by descending threshold; the first match wins.
var bitrateTiers = []bitrateTier{
	{Pixels4K, 20},
	{Pixels1440p, 15},
	{Pixels1080p, 13},
	{Pixels720p, 5},
	{0, 2.25},
}

// MaxMbpsByPixelCount returns the bitrate ceiling above which a video of this
// size is considered worth re-encoding.
func MaxMbpsByPixelCount(pixels int) float64 {
	for _, tier := range bitrateTiers {
		if pixels >= tier.minPixels {
			return tier.maxMbps
		}
	}
	return bitrateTiers[len(bitrateTiers)-1].maxMbps
}

// IsHighBitrate reports whether the probed bitrate exceeds its size tier
func IsHighBitrate(p ProbeResult) bool {
	return BitrateToMbps(p.BitRate) > MaxMbpsByPixelCount(p.PixelCount())
}
