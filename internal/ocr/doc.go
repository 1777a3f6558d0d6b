// Package ocr recognizes printed text in images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). A Recognizer
// owns a single engine instance, so the start-up cost of loading language data
// is paid once per process rather than once per image.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// A custom data directory can be supplied with Options.TessdataPrefix.
//
// # Fragments
//
// Tesseract's layout analysis splits a page into blocks, paragraphs, lines and
// words. The Recognizer walks the page at one of those levels (lines by
// default) and returns the text of each element in the engine's reading order.
// Whitespace inside a fragment is collapsed to single spaces and empty
// fragments are dropped. Recognize joins the fragments with single spaces, so
// the result never contains newlines.
//
// # Build Constraints
//
// gosseract requires cgo. When cgo is disabled, New returns ErrUnavailable.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing or undecodable image files
//   - Missing language data or Tesseract initialization failures
//   - Unknown fragment levels
//
// An image without any recognizable text is not an error: Recognize returns
// an empty string.
package ocr
