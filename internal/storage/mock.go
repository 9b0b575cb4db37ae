package storage

import (
	"context"
	"fmt"
	"sync"
)

// MockUploader is a configurable Uploader for tests. The default behavior
// accepts any valid image and returns a deterministic URL.
type MockUploader struct {
	mu      sync.Mutex
	Uploads int

	UploadImageFunc func(ctx context.Context, data []byte, mimeType string) (string, error)
}

func (m *MockUploader) UploadImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	m.mu.Lock()
	m.Uploads++
	n := m.Uploads
	m.mu.Unlock()

	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, data, mimeType)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("image too large")
	}
	if _, ok := AllowedMimeTypes[mimeType]; !ok {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}
	return fmt.Sprintf("mock://images/%d", n), nil
}

var _ Uploader = (*MockUploader)(nil)
