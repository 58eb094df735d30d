package video

// Capture sizes
const (
	FrameWidth  = 1280
	FrameHeight = 720

	// Screenshots taken on the console are 1080p.
	ScreenshotWidth  = 1920
	ScreenshotHeight = 1080
)

// Frames inspected when guessing the scan mode of a media file.
const DetectFrames = 100

// Sequences may start numbering at 0 or 1.
const maxSequenceStart = 1

var stillExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}
