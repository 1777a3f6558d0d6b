package imaging

import "image"

// dilateRect sets each pixel to the maximum over a size x size rectangle.
//
// The rectangle is anchored at (size/2, size/2), so for size 2 it covers the
// pixel itself and its left/upper neighbors. Neighbors outside the image are
// ignored.
func dilateRect(src *image.Gray, size int) *image.Gray {
	return rankRect(src, size, func(a, b uint8) bool { return a > b })
}

// erodeRect sets each pixel to the minimum over a size x size rectangle,
// using the same anchor as dilateRect.
func erodeRect(src *image.Gray, size int) *image.Gray {
	return rankRect(src, size, func(a, b uint8) bool { return a < b })
}

// closeRect performs a morphological closing: dilation followed by erosion.
func closeRect(src *image.Gray, size int) *image.Gray {
	if size <= 1 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	return erodeRect(dilateRect(src, size), size)
}

// rankRect is separable: a rectangle's max (or min) is the max of row maxima.
func rankRect(src *image.Gray, size int, better func(a, b uint8) bool) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	anchor := size / 2

	horiz := image.NewGray(b)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			v := row[x]
			for k := 0; k < size; k++ {
				sx := x + k - anchor
				if sx < 0 || sx >= w {
					continue
				}
				if better(row[sx], v) {
					v = row[sx]
				}
			}
			horiz.Pix[y*horiz.Stride+x] = v
		}
	}

	out := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := horiz.Pix[y*horiz.Stride+x]
			for k := 0; k < size; k++ {
				sy := y + k - anchor
				if sy < 0 || sy >= h {
					continue
				}
				if c := horiz.Pix[sy*horiz.Stride+x]; better(c, v) {
					v = c
				}
			}
			out.Pix[y*out.Stride+x] = v
		}
	}
	return out
}
