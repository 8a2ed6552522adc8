//go:build ocr

// Package ocr recognizes text in images embedded in converted documents.
// Converters use it for image alt text.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract and its Thai language data to be installed. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-tha
package ocr

import (
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"
)

// DefaultLanguage is used when New is given no language.
const DefaultLanguage = "tha+eng"

// Client wraps Tesseract for OCR operations. It is safe for concurrent
// use; recognitions are serialized.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a client for language, a "+" separated list of Tesseract
// language codes. The client should be closed when no longer needed.
func New(language string) (*Client, error) {
	if language == "" {
		language = DefaultLanguage
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "setting language %q", language)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizeImage performs OCR on image data in any format PrepareImage
// accepts. Returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	data, _, err := PrepareImage(imageData)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", errors.Wrap(err, "failed to set image")
	}
	text, err := c.client.Text()
	if err != nil {
		return "", errors.Wrap(err, "OCR failed")
	}
	return strings.TrimSpace(text), nil
}
