package storage

import "context"

// Uploader pins image bytes to external object storage and returns a
// public URL. This interface allows for easy mocking in tests.
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Upload constraints enforced before any bytes leave the process.
const MaxImageBytes = 5 * 1024 * 1024

// AllowedMimeTypes maps accepted image mime types to file extensions.
var AllowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}
