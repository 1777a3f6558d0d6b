//go:build gocv

package imaging

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Backend names the implementation compiled into Process.
const Backend = "gocv"

// Process runs the filter chain on img through OpenCV and returns the binary
// buffer. See the pure Go build for the contract. The blur and local mean use
// OpenCV's default BORDER_REFLECT_101, so pixels within half a kernel of the
// image edge can differ from the pure Go build, which replicates edge pixels.
// Interior pixels differ at most by blur rounding.
func (p *Preprocessor) Process(img image.Image) (*image.Gray, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	gray := toGray(img)
	if p.opts.NormalizePolarity {
		normalizePolarity(gray)
	}

	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := p.opts.BlurKernel
	gocv.GaussianBlur(src, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.AdaptiveThreshold(blurred, &thresh, float32(p.opts.MaxValue),
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv,
		p.opts.BlockSize, float32(p.opts.C))

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(p.opts.CloseKernel, p.opts.CloseKernel))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(thresh, &closed, gocv.MorphClose, kernel)

	out, err := closed.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert mat to image: %w", err)
	}
	bin, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected mat image type %T", out)
	}
	return bin, nil
}
