//go:build !gocv

package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
)

// Backend names the implementation compiled into Process.
const Backend = "bild"

// Process runs the filter chain on img and returns the binary buffer.
//
// Parameters:
//   - img: Source image (color or grayscale). Its bounds may start anywhere;
//     the result is always anchored at (0,0).
//
// Returns:
//   - *image.Gray: Binary image where foreground (ink) pixels equal
//     MaxValue and background pixels are 0.
//   - error: ErrEmptyImage if img has no pixels.
//
// # Border Handling
//
// The blur and the local mean replicate edge pixels, where OpenCV reflects
// them without repeating the edge (BORDER_REFLECT_101). Pixels within half a
// kernel of the image edge can therefore binarize differently from an OpenCV
// run; the gocv build follows OpenCV there. Morphology ignores neighbors that
// fall outside the image, as OpenCV does.
func (p *Preprocessor) Process(img image.Image) (*image.Gray, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	gray := toGray(img)
	if p.opts.NormalizePolarity {
		normalizePolarity(gray)
	}

	blurred := gaussian(gray, p.opts.BlurKernel)
	mean := gaussian(blurred, p.opts.BlockSize)
	bin := adaptiveThresholdInv(blurred, mean, p.opts.C, p.opts.MaxValue)

	return closeRect(bin, p.opts.CloseKernel), nil
}

// gaussianKernel builds a normalized 1-D Gaussian kernel of the given odd size.
func gaussianKernel(size int) convolution.Matrix {
	sigma := gaussianSigma(size)
	half := size / 2

	k := convolution.NewKernel(size, 1)
	for i := 0; i < size; i++ {
		x := float64(i - half)
		k.Matrix[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
	}
	return k.Normalized()
}

// gaussian applies a separable size x size Gaussian blur.
func gaussian(src *image.Gray, size int) *image.Gray {
	k := gaussianKernel(size)
	opts := &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false}

	out := convolution.Convolve(src, k, opts)
	out = convolution.Convolve(out, k.Transposed(), opts)

	b := out.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			gray.Pix[y*gray.Stride+x] = out.Pix[y*out.Stride+x*4]
		}
	}
	return gray
}

// adaptiveThresholdInv marks pixels at or below mean-c as foreground.
func adaptiveThresholdInv(src, mean *image.Gray, c float64, maxValue uint8) *image.Gray {
	delta := int(math.Floor(c))
	out := image.NewGray(src.Bounds())
	for i, v := range src.Pix {
		if int(v)-int(mean.Pix[i]) <= -delta {
			out.Pix[i] = maxValue
		}
	}
	return out
}
