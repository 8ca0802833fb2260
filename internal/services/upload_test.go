package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubinova/backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	svc := NewUploadService(store, 5)

	name, err := svc.SaveImage(context.Background(), "Banner.PNG", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes(t), stored)

	noExt, err := svc.SaveImage(context.Background(), "blob", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(noExt))

	jpg, err := svc.SaveImage(context.Background(), "photo.png", bytes.NewReader(jpegBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(jpg))
}

func TestSaveImageUsesDetectedExtension(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := NewUploadService(store, 5)

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"html extension", "evil.html", ".png"},
		{"svg extension", "logo.svg", ".png"},
		{"uppercase match", "logo.PNG", ".png"},
	}
	payload := append(pngBytes(t), []byte("<script>alert(1)</script>")...)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := svc.SaveImage(context.Background(), tt.filename, bytes.NewReader(payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Ext(name))
		})
	}
}

func TestSaveImageRejects(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := NewUploadService(store, 1)

	_, err = svc.SaveImage(context.Background(), "notes.txt", strings.NewReader("just some text"))
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.SaveImage(context.Background(), "empty.png", strings.NewReader(""))
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	svg := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`
	_, err = svc.SaveImage(context.Background(), "logo.svg", strings.NewReader(svg))
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	big := append(pngBytes(t), make([]byte, 1<<20)...)
	_, err = svc.SaveImage(context.Background(), "big.png", bytes.NewReader(big))
	assert.True(t, apperr.Is(err, apperr.CodeTooLarge))
}
