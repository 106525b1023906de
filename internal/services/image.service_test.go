package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"musiclabel/internal/types"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetectImageType(t *testing.T) {
	var jpegBuf bytes.Buffer
	require.NoError(t, imaging.Encode(&jpegBuf, testImage(20, 10), imaging.JPEG))

	var webpBuf bytes.Buffer
	require.NoError(t, webp.Encode(&webpBuf, testImage(20, 10), &webp.Options{Quality: 80}))

	tests := []struct {
		name     string
		data     []byte
		expected string
		wantErr  bool
	}{
		{name: "png", data: encodePNG(t, testImage(20, 10)), expected: "image/png"},
		{name: "jpeg", data: jpegBuf.Bytes(), expected: "image/jpeg"},
		{name: "webp", data: webpBuf.Bytes(), expected: "image/webp"},
		{name: "empty", data: nil, wantErr: true},
		{name: "plain text", data: []byte("definitely not an image"), wantErr: true},
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"), wantErr: true},
		{name: "too large", data: append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, MaxImageBytes)...), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, err := DetectImageType(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, types.IsKind(err, types.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, contentType)
		})
	}
}

func TestImageService_ProcessArtistImage(t *testing.T) {
	dir := t.TempDir()
	service := NewImageService(dir)

	result, err := service.Process(context.Background(), ArtistImagePreset, 7, encodePNG(t, testImage(640, 320)))
	require.NoError(t, err)

	assert.Equal(t, "/uploads/artists/7_profile.webp", result.PrimaryURL)
	assert.Equal(t, map[string]string{
		"thumbnail": "/uploads/artists/7_thumbnail.webp",
		"profile":   "/uploads/artists/7_profile.webp",
		"featured":  "/uploads/artists/7_featured.webp",
	}, result.Sizes)

	for _, variant := range ArtistImagePreset.Variants {
		file, err := os.Open(filepath.Join(dir, "artists", variantFileName(7, variant.Name)))
		require.NoError(t, err)
		config, err := webp.DecodeConfig(file)
		file.Close()
		require.NoError(t, err)
		assert.Equal(t, variant.Width, config.Width, variant.Name)
		assert.Equal(t, variant.Height, config.Height, variant.Name)
	}
}

func TestImageService_ProcessReleaseCover(t *testing.T) {
	dir := t.TempDir()
	service := NewImageService(dir)

	result, err := service.Process(context.Background(), ReleaseCoverPreset, 3, encodePNG(t, testImage(100, 100)))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/releases/3_medium.webp", result.PrimaryURL)
	assert.Len(t, result.Sizes, 3)

	_, err = os.Stat(filepath.Join(dir, "releases", "3_large.webp"))
	assert.NoError(t, err)
}

func TestImageService_ProcessRejectsUndecodable(t *testing.T) {
	dir := t.TempDir()
	service := NewImageService(dir)

	corrupt := encodePNG(t, testImage(10, 10))[:40]
	_, err := service.Process(context.Background(), ArtistImagePreset, 1, corrupt)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindValidation))

	_, statErr := os.Stat(filepath.Join(dir, "artists"))
	assert.True(t, os.IsNotExist(statErr))
}

// resizePNGHeader rewrites the IHDR dimensions of a PNG without touching its
// pixel data, the shape of a decompression bomb.
func resizePNGHeader(data []byte, width, height uint32) []byte {
	out := bytes.Clone(data)
	binary.BigEndian.PutUint32(out[16:20], width)
	binary.BigEndian.PutUint32(out[20:24], height)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestImageService_ProcessRejectsOversizedDimensions(t *testing.T) {
	dir := t.TempDir()
	service := NewImageService(dir)

	bomb := resizePNGHeader(encodePNG(t, testImage(8, 8)), 50000, 50000)
	require.Less(t, len(bomb), MaxImageBytes)

	_, err := service.Process(context.Background(), ArtistImagePreset, 1, bomb)
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields["image"], "50000x50000")

	_, statErr := os.Stat(filepath.Join(dir, "artists"))
	assert.True(t, os.IsNotExist(statErr))

	t.Run("limit is inclusive", func(t *testing.T) {
		limited := NewImageService(t.TempDir())
		limited.maxPixels = 64

		_, err := limited.Process(context.Background(), ReleaseCoverPreset, 2, encodePNG(t, testImage(8, 8)))
		assert.NoError(t, err)

		_, err = limited.Process(context.Background(), ReleaseCoverPreset, 3, encodePNG(t, testImage(9, 8)))
		assert.True(t, types.IsKind(err, types.KindValidation))
	})
}

func TestImageService_Delete(t *testing.T) {
	dir := t.TempDir()
	service := NewImageService(dir)
	ctx := context.Background()

	t.Run("missing files are tolerated", func(t *testing.T) {
		assert.NoError(t, service.Delete(ctx, ReleaseCoverPreset, 42))
	})

	t.Run("removes every variant", func(t *testing.T) {
		_, err := service.Process(ctx, ArtistImagePreset, 5, encodePNG(t, testImage(50, 50)))
		require.NoError(t, err)

		// A partial set must still be cleaned up.
		require.NoError(t, os.Remove(filepath.Join(dir, "artists", "5_featured.webp")))

		require.NoError(t, service.Delete(ctx, ArtistImagePreset, 5))
		entries, err := os.ReadDir(filepath.Join(dir, "artists"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
