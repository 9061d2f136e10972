// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg magic bytes", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"png magic bytes", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
		{"gif magic bytes", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, "gif"},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"image.jpg", "jpeg"},
		{"image.jpeg", "jpeg"},
		{"image.png", "png"},
		{"image.PNG", "png"},
		{"image.gif", "gif"},
		{"image.webp", "webp"},
		{"noextension", "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := detectFormatFromFilename(tt.filename); got != tt.want {
				t.Errorf("detectFormatFromFilename(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	// Verify no panic across all orientation values, including unknowns.
	for orientation := 0; orientation <= 9; orientation++ {
		img := createTestImage(10, 10)
		if applyOrientation(img, orientation) == nil {
			t.Errorf("applyOrientation(%d) returned nil", orientation)
		}
	}
}

func TestProcessImage(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeJPEG(t, createTestImage(40, 30))
	result, err := p.ProcessImage(bytes.NewReader(data), "photo.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if result.Width != 40 || result.Height != 30 {
		t.Errorf("dimensions = %dx%d, want 40x30", result.Width, result.Height)
	}
	if result.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q", result.MimeType)
	}
	if _, err := os.Stat(filepath.Join(dir, "originals", "photo.jpg")); err != nil {
		t.Errorf("original not saved: %v", err)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.ProcessImage(bytes.NewReader([]byte("not an image")), "x.jpg"); err == nil {
		t.Error("garbage accepted as image")
	}
}

func TestCreateThumbnail(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeJPEG(t, createTestImage(800, 600))
	result, err := p.ProcessImage(bytes.NewReader(data), "big.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	thumb, err := p.CreateThumbnail(result.FilePath, "big.jpg")
	if err != nil {
		t.Fatalf("CreateThumbnail: %v", err)
	}
	if thumb == nil {
		t.Fatal("thumbnail skipped for large source")
	}
	if thumb.Width > ThumbWidth || thumb.Height > ThumbHeight {
		t.Errorf("thumbnail = %dx%d, exceeds %dx%d", thumb.Width, thumb.Height, ThumbWidth, ThumbHeight)
	}
}

func TestCreateThumbnailSkipsSmallSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeJPEG(t, createTestImage(100, 80))
	result, err := p.ProcessImage(bytes.NewReader(data), "small.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	thumb, err := p.CreateThumbnail(result.FilePath, "small.jpg")
	if err != nil {
		t.Fatalf("CreateThumbnail: %v", err)
	}
	if thumb != nil {
		t.Errorf("thumbnail created for small source: %+v", thumb)
	}
}

func TestDeleteImageFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeJPEG(t, createTestImage(800, 600))
	result, err := p.ProcessImage(bytes.NewReader(data), "gone.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if _, err := p.CreateThumbnail(result.FilePath, "gone.jpg"); err != nil {
		t.Fatalf("CreateThumbnail: %v", err)
	}

	if err := p.DeleteImageFiles("gone.jpg"); err != nil {
		t.Fatalf("DeleteImageFiles: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "originals", "gone.jpg")); !os.IsNotExist(err) {
		t.Error("original still on disk")
	}
	if _, err := os.Stat(filepath.Join(dir, "thumbnails", "gone.jpg")); !os.IsNotExist(err) {
		t.Error("thumbnail still on disk")
	}
}

func TestSaveImageFileRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.saveImageFile("../outside", "x.jpg", []byte("data")); err == nil {
		t.Error("traversal subdir accepted")
	}
	if _, err := p.saveImageFile("originals", "", []byte("data")); err == nil {
		t.Error("empty filename accepted")
	}
}
