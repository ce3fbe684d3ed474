package video

import "testing"

func TestCRFByPixelCount(t *testing.T) {
	tests := []struct {
		name   string
		pixels int
		want   int
	}{
		{"8K", 7680 * 4320, 22},
		{"4K boundary", 8294400, 22},
		{"just under 4K", 8294399, 20},
		{"1440p", 2560 * 1440, 20},
		{"1080p boundary", 2073600, 20},
		{"just under 1080p", 2073599, 19},
		{"720p boundary", 921600, 19},
		{"just under 720p", 921599, 18},
		{"480p", 854 * 480, 18},
		{"zero", 0, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CRFByPixelCount(tt.pixels); got != tt.want {
				t.Errorf("CRFByPixelCount(%d) = %d, expected %d", tt.pixels, got, tt.want)
			}
		})
	}
}

func TestCRFByPixelCount_Monotonic(t *testing.T) {
	prev := CRFByPixelCount(10_000_000)
	for pixels := 10_000_000; pixels >= 0; pixels -= 7919 {
		cur := CRFByPixelCount(pixels)
		if cur > prev {
			t.Fatalf("CRF increased from %d to %d at %d pixels", prev, cur, pixels)
		}
		prev = cur
	}
}

func TestProfileByPixelFormat(t *testing.T) {
	tests := map[string]string{
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
	for pixFmt, want := range tests {
		got, ok := ProfileByPixelFormat(pixFmt)
		if !ok || got != want {
			t.Errorf("ProfileByPixelFormat(%q) = %q, %v; expected %q", pixFmt, got, ok, want)
		}
	}

	if _, ok := ProfileByPixelFormat("nv12"); ok {
		t.Error("Expected unknown pixel format to yield no profile")
	}
}

func TestBitrateToMbps(t *testing.T) {
	tests := []struct {
		bps      int64
		want     float64
		rendered string
	}{
		{2_500_000, 2.5, "2.5"},
		{3_000_000, 3, "3"},
		{1_234_567, 1.23, "1.23"},
		{1_999_999, 2, "2"},
		{1_249_999, 1.25, "1.25"},
		{0, 0, "0"},
	}

	for _, tt := range tests {
		got := BitrateToMbps(tt.bps)
		if got != tt.want {
			t.Errorf("BitrateToMbps(%d) = %v, expected %v", tt.bps, got, tt.want)
		}
		if s := FormatMbps(got); s != tt.rendered {
			t.Errorf("FormatMbps(%v) = %q, expected %q", got, s, tt.rendered)
		}
	}
}

func TestIsHighBitrate(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		bitRate int64
		want    bool
	}{
		{"4K under ceiling", 3840, 2160, 20_000_000, false},
		{"4K over ceiling", 3840, 2160, 20_010_000, true},
		{"1440p over", 2560, 1440, 15_500_000, true},
		{"1080p under", 1920, 1080, 13_000_000, false},
		{"1080p over", 1920, 1080, 13_100_000, true},
		{"720p over", 1280, 720, 5_100_000, true},
		{"SD over", 640, 480, 2_300_000, true},
		{"SD under", 640, 480, 2_000_000, false},
		{"unknown bitrate", 1920, 1080, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProbeResult{Width: tt.w, Height: tt.h, BitRate: tt.bitRate}
			if got := IsHighBitrate(p); got != tt.want {
				t.Errorf("IsHighBitrate(%+v) = %v, expected %v", p, got, tt.want)
			}
		})
	}
}
