package media

// UploadInput is a file received from the dashboard
type UploadInput struct {
	Folder   Folder
	Filename string
	Data     []byte
}

// UploadResult describes the stored object
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
