// Package imaging loads images from disk and prepares them for text recognition.
//
// The package covers the first two steps of the diagnosis pipeline: decoding an
// image file and turning it into a clean black/white buffer. All operations work
// with standard Go image types and use a coordinate system where (0,0) is the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Preprocessing
//
// Preprocessor applies a fixed sequence of filters:
//
//  1. Grayscale conversion using ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B)
//  2. Gaussian blur (5x5 by default) to suppress high-frequency noise
//  3. Adaptive threshold: each pixel is compared against the Gaussian-weighted
//     mean of its neighborhood (11x11 by default) minus a constant (2). Pixels at
//     or below that local cutoff become foreground (255), the rest background (0).
//     The output is therefore inverted: dark ink becomes white.
//  4. Morphological closing (dilation then erosion) with a 2x2 rectangle to fill
//     small gaps in the strokes.
//
// ForOCR converts the inverted buffer back to dark text on a white page, which is
// what Tesseract expects.
//
// # Backends
//
// The default build uses pure Go: disintegration/imaging for grayscale and
// anthonynsimon/bild for the separable Gaussian convolutions. Building with
// -tags gocv switches Process to OpenCV through gocv; OpenCV 4 must then be
// installed on the system.
//
// # Supported Formats
//
// Load decodes PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG EXIF orientation is
// applied so that the text is upright before recognition.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing or unreadable files
//   - Files that are not a decodable image
//   - Images with zero width or height (ErrEmptyImage)
//   - Invalid preprocessing options (even kernel sizes, non-positive values)
package imaging
