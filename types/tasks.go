package types

// TaskType selects what a run does with the collected media
type TaskType string

const (
	TaskVideoEncode TaskType = "video-encode"
	TaskQuickTime   TaskType = "hevc-enable-QuickTime"
	TaskImageEncode TaskType = "image-encode"
)

// TaskOption is a selectable task with its menu label
type TaskOption struct {
	Value TaskType
	Label string
}

// Tasks lists every task in menu order
var Tasks = []TaskOption{
	{TaskVideoEncode, "Video Encoding"},
	{TaskQuickTime, "Enable HEVC playback in QuickTime"},
	{TaskImageEncode, "Image Encoding"},
}
