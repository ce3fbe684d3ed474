package video

// VideoInfo pairs an input path with its probed metadata
type VideoInfo struct {
	Input    string
	Metadata ProbeResult
}
