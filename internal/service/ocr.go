package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"contract-analyzer/internal/domain"
	apperrors "contract-analyzer/pkg/errors"
)

// OCRClient runs tesseract against image content. OCR is CPU-bound and
// slow, so calls are gated through a fixed-size worker semaphore to keep
// a burst of scanned uploads from starving request handling.
type OCRClient struct {
	languages string
	sem       chan struct{}
	logger    domain.Logger
}

// NewOCRClient creates an OCR client limited to workers concurrent runs.
func NewOCRClient(languages string, workers int, logger domain.Logger) *OCRClient {
	if languages == "" {
		languages = "deu+eng"
	}
	if workers <= 0 {
		workers = 2
	}
	return &OCRClient{
		languages: languages,
		sem:       make(chan struct{}, workers),
		logger:    logger,
	}
}

// ImageToText recognizes text in a raw image file. ext is the original
// file extension (with or without dot) and decides the temp file name
// tesseract reads.
func (c *OCRClient) ImageToText(ctx context.Context, data []byte, ext string) (string, error) {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "png"
	}

	dir, err := os.MkdirTemp("", "ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	imagePath := filepath.Join(dir, "page."+ext)
	if err := os.WriteFile(imagePath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}

	cmd := exec.CommandContext(ctx, "tesseract",
		imagePath,
		"stdout",
		"-l", c.languages,
		"--oem", "3", // LSTM engine
		"--psm", "3", // automatic page segmentation
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", apperrors.NewExternalError("Text recognition failed", err)
	}

	return strings.TrimSpace(out.String()), nil
}

// RecognizeImage recognizes text in a decoded image, e.g. a rendered PDF
// page. The image is re-encoded as PNG, which also normalizes whatever
// color mode the source page used.
func (c *OCRClient) RecognizeImage(ctx context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode page image: %w", err)
	}
	return c.ImageToText(ctx, buf.Bytes(), "png")
}
