package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedPhotoType(t *testing.T) {
	t.Parallel()

	for _, fileType := range []string{"image/jpeg", "image/png", "image/webp", "image/heic", " IMAGE/PNG "} {
		assert.True(t, IsSupportedPhotoType(fileType), fileType)
	}
	for _, fileType := range []string{"", "image/gif", "video/mp4", "application/pdf", "text/html"} {
		assert.False(t, IsSupportedPhotoType(fileType), fileType)
	}
}

func TestGenerateUploadURL_RejectsNonPhotoTypes(t *testing.T) {
	t.Parallel()

	_, _, err := GenerateUploadURL("doc.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedPhotoType)
}

func TestPhotoKey_PrefixFromEnv(t *testing.T) {
	key := photoKey("selfie.jpg")
	assert.True(t, strings.HasPrefix(key, "photos/"), key)
	assert.True(t, strings.HasSuffix(key, "-selfie.jpg"), key)

	t.Setenv("S3_PHOTO_PREFIX", "uploads/raw")
	key = photoKey("selfie.jpg")
	require.True(t, strings.HasPrefix(key, "uploads/raw/"), key)
}
