package domain

// ScreenSection is a capture rectangle handed to the external screen-capture
// subsystem. This service only stores and serves the geometry; capture and
// text recognition happen in the overlay client.
type ScreenSection struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CaptureConfig groups the capture rectangles the overlay client reads.
type CaptureConfig struct {
	TrailCompleted ScreenSection `json:"trail_completed_image_location"`
	Inventory      ScreenSection `json:"inventory_image_location"`
	UseGPU         bool          `json:"use_gpu_processing"`
}
