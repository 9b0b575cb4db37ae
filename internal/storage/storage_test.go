package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockUploaderAcceptsValidImages(t *testing.T) {
	m := &MockUploader{}

	url, err := m.UploadImage(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "mock://images/1", url)

	url, err = m.UploadImage(context.Background(), []byte("gif-bytes"), "image/gif")
	require.NoError(t, err)
	assert.Equal(t, "mock://images/2", url)
	assert.Equal(t, 2, m.Uploads)
}

func TestMockUploaderRejectsBadInput(t *testing.T) {
	m := &MockUploader{}

	_, err := m.UploadImage(context.Background(), []byte("data"), "image/svg+xml")
	assert.Error(t, err, "only raster formats are allowed")

	_, err = m.UploadImage(context.Background(), bytes.Repeat([]byte{1}, MaxImageBytes+1), "image/png")
	assert.Error(t, err)
}

func TestAllowedMimeTypes(t *testing.T) {
	assert.Equal(t, ".jpg", AllowedMimeTypes["image/jpeg"])
	assert.Equal(t, ".png", AllowedMimeTypes["image/png"])
	assert.Equal(t, ".gif", AllowedMimeTypes["image/gif"])
	assert.NotContains(t, AllowedMimeTypes, "image/svg+xml")
}
