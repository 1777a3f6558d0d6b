//go:build !cgo

package ocr

import "image"

// Recognizer is a placeholder when Tesseract support is not compiled in.
type Recognizer struct{}

// New always fails with ErrUnavailable.
func New(opts Options) (*Recognizer, error) {
	return nil, ErrUnavailable
}

func (r *Recognizer) Options() Options { return Options{} }

func (r *Recognizer) RecognizeFile(path string) (string, error) { return "", ErrUnavailable }

func (r *Recognizer) RecognizeImage(img image.Image) (string, error) { return "", ErrUnavailable }

func (r *Recognizer) FragmentsFromFile(path string) ([]string, error) { return nil, ErrUnavailable }

func (r *Recognizer) FragmentsFromImage(img image.Image) ([]string, error) {
	return nil, ErrUnavailable
}

func (r *Recognizer) Version() string { return "" }

func (r *Recognizer) Close() error { return nil }
