package models

// ThumbnailJob is handed to the worker after an image upload.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}
