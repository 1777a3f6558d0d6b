package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PreprocessOptions holds the constants of the preprocessing filters.
type PreprocessOptions struct {
	// BlurKernel is the side of the square Gaussian blur kernel. Must be odd and >= 3.
	BlurKernel int

	// BlockSize is the side of the neighborhood used to compute the local
	// threshold. Must be odd and >= 3.
	BlockSize int

	// C is subtracted from the local mean to get the threshold.
	C float64

	// MaxValue is the value written for foreground pixels.
	MaxValue uint8

	// CloseKernel is the side of the rectangular structuring element used
	// for morphological closing. Must be >= 1.
	CloseKernel int

	// NormalizePolarity inverts light-on-dark images before thresholding so
	// that text always ends up as foreground.
	NormalizePolarity bool
}

// DefaultPreprocessOptions returns the fixed filter constants: 5x5 blur,
// 11x11 threshold block, offset 2, and a 2x2 closing rectangle.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		BlurKernel:  5,
		BlockSize:   11,
		C:           2,
		MaxValue:    255,
		CloseKernel: 2,
	}
}

// Validate reports whether the options describe a usable filter chain.
func (o PreprocessOptions) Validate() error {
	if o.BlurKernel < 3 || o.BlurKernel%2 == 0 {
		return fmt.Errorf("blur kernel must be odd and >= 3, got %d", o.BlurKernel)
	}
	if o.BlockSize < 3 || o.BlockSize%2 == 0 {
		return fmt.Errorf("threshold block size must be odd and >= 3, got %d", o.BlockSize)
	}
	if o.CloseKernel < 1 {
		return fmt.Errorf("close kernel must be >= 1, got %d", o.CloseKernel)
	}
	if o.MaxValue == 0 {
		return fmt.Errorf("max value must be > 0")
	}
	return nil
}

// Preprocessor turns a color or grayscale image into a binary buffer suitable
// for text recognition.
//
// A Preprocessor is immutable after construction and safe for concurrent use.
type Preprocessor struct {
	opts PreprocessOptions
}

// NewPreprocessor validates opts and returns a Preprocessor using them.
func NewPreprocessor(opts PreprocessOptions) (*Preprocessor, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preprocess options: %w", err)
	}
	return &Preprocessor{opts: opts}, nil
}

// Options returns the filter constants in use.
func (p *Preprocessor) Options() PreprocessOptions {
	return p.opts
}

// ProcessFile loads the image at path and runs Process on it.
func (p *Preprocessor) ProcessFile(path string) (*image.Gray, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return p.Process(img)
}

// ForOCR returns a copy of a binary buffer with foreground pixels painted
// black on a white background.
//
// Process produces white strokes on black; Tesseract recognizes dark text on a
// light page far more reliably.
func ForOCR(bin *image.Gray) *image.Gray {
	out := image.NewGray(bin.Bounds())
	for i, v := range bin.Pix {
		if v == 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// toGray converts img to an 8-bit grayscale image anchored at (0,0).
func toGray(img image.Image) *image.Gray {
	nrgba := imaging.Grayscale(img)
	b := nrgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+b.Dx()*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// lightnessTable maps each gray level to its CIE L* lightness in [0,1].
var lightnessTable = func() [256]float64 {
	var t [256]float64
	for i := range t {
		v := float64(i) / 255.0
		l, _, _ := colorful.Color{R: v, G: v, B: v}.Lab()
		t[i] = l
	}
	return t
}()

// meanLightness returns the average perceptual lightness of g in [0,1].
func meanLightness(g *image.Gray) float64 {
	b := g.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var sum float64
	for y := 0; y < b.Dy(); y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
		for _, v := range row {
			sum += lightnessTable[v]
		}
	}
	return sum / float64(n)
}

// normalizePolarity inverts g in place when the page is darker than the ink,
// and reports whether it did.
func normalizePolarity(g *image.Gray) bool {
	if meanLightness(g) >= 0.5 {
		return false
	}
	for i, v := range g.Pix {
		g.Pix[i] = 255 - v
	}
	return true
}

// gaussianSigma returns the standard deviation OpenCV derives for a Gaussian
// kernel of the given size when no sigma is supplied.
func gaussianSigma(size int) float64 {
	return 0.3*((float64(size)-1)*0.5-1) + 0.8
}
