//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer extracts text from images with a single Tesseract engine.
//
// A Recognizer is not safe for concurrent use; the underlying engine holds
// the current image. Call Close when done to release it.
type Recognizer struct {
	client *gosseract.Client
	level  gosseract.PageIteratorLevel
	opts   Options
}

// New creates a Recognizer configured by opts.
//
// Parameters:
//   - opts: Engine settings. Zero fields take their defaults: English,
//     automatic page segmentation, line fragments.
//
// Returns:
//   - *Recognizer: Ready to recognize images. The caller must Close it.
//   - error: Non-nil for an unknown fragment level or when the engine rejects
//     the language, data directory or page segmentation mode.
//
// Tesseract loads its language data lazily, so a missing traineddata file
// surfaces from the first Recognize call rather than from New.
func New(opts Options) (*Recognizer, error) {
	opts = opts.withDefaults()

	level, err := iteratorLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()

	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(opts.languages()...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &Recognizer{
		client: client,
		level:  level,
		opts:   opts,
	}, nil
}

func iteratorLevel(l Level) (gosseract.PageIteratorLevel, error) {
	switch l {
	case LevelBlock:
		return gosseract.RIL_BLOCK, nil
	case LevelParagraph:
		return gosseract.RIL_PARA, nil
	case LevelLine:
		return gosseract.RIL_TEXTLINE, nil
	case LevelWord:
		return gosseract.RIL_WORD, nil
	default:
		return 0, fmt.Errorf("unknown fragment level %q", l)
	}
}

// Options returns the effective settings, with defaults applied.
func (r *Recognizer) Options() Options {
	return r.opts
}

// RecognizeFile returns all text found in the image file at path, with
// fragments joined by single spaces.
func (r *Recognizer) RecognizeFile(path string) (string, error) {
	fragments, err := r.FragmentsFromFile(path)
	if err != nil {
		return "", err
	}
	return JoinFragments(fragments), nil
}

// RecognizeImage returns all text found in img, with fragments joined by
// single spaces.
func (r *Recognizer) RecognizeImage(img image.Image) (string, error) {
	fragments, err := r.FragmentsFromImage(img)
	if err != nil {
		return "", err
	}
	return JoinFragments(fragments), nil
}

// FragmentsFromFile returns the text fragments of the image file at path in
// the engine's reading order.
func (r *Recognizer) FragmentsFromFile(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	if err := r.client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return r.fragments()
}

// FragmentsFromImage returns the text fragments of img in the engine's
// reading order. The image is handed to Tesseract as an in-memory PNG.
func (r *Recognizer) FragmentsFromImage(img image.Image) ([]string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return r.fragments()
}

func (r *Recognizer) fragments() ([]string, error) {
	boxes, err := r.client.GetBoundingBoxes(r.level)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	raw := make([]string, 0, len(boxes))
	for _, box := range boxes {
		raw = append(raw, box.Word)
	}
	return cleanFragments(raw), nil
}

// Version returns the Tesseract library version.
func (r *Recognizer) Version() string {
	return r.client.Version()
}

// Close releases the engine.
func (r *Recognizer) Close() error {
	return r.client.Close()
}
