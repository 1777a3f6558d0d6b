package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func grayRow(values ...uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, len(values), 1))
	copy(g.Pix, values)
	return g
}

func TestCloseRect_FillsGap(t *testing.T) {
	src := grayRow(0, 255, 0, 255, 0)

	out := closeRect(src, 2)

	// The one-pixel gap at x=2 is filled; the anchor shifts the run right
	want := []uint8{0, 0, 255, 255, 255}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("closeRect: got %v, want %v", out.Pix, want)
	}
}

func TestDilateRect(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	src.SetGray(1, 1, grayWhite)

	out := dilateRect(src, 2)

	// Anchor (1,1): a pixel grows toward +x and +y
	want := []uint8{
		0, 0, 0,
		0, 255, 255,
		0, 255, 255,
	}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("dilateRect: got %v, want %v", out.Pix, want)
	}
}

func TestErodeRect(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.SetGray(1, 1, grayBlack)

	out := erodeRect(src, 2)

	want := []uint8{
		255, 255, 255,
		255, 0, 0,
		255, 0, 0,
	}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("erodeRect: got %v, want %v", out.Pix, want)
	}
}

func TestCloseRect_SymmetricKernel(t *testing.T) {
	// Odd kernels are centered, so closing keeps a solid block in place
	src := image.NewGray(image.Rect(0, 0, 7, 7))
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			src.SetGray(x, y, grayWhite)
		}
	}

	out := closeRect(src, 3)

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Errorf("closing a solid block with a 3x3 kernel changed it:\n%v", out.Pix)
	}
}

func TestCloseRect_SizeOneIsCopy(t *testing.T) {
	src := grayRow(0, 255, 0)

	out := closeRect(src, 1)

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Errorf("got %v, want %v", out.Pix, src.Pix)
	}
	out.Pix[0] = 7
	if src.Pix[0] != 0 {
		t.Error("closeRect with size 1 must return a copy")
	}
}

var (
	grayWhite = color.Gray{Y: 255}
	grayBlack = color.Gray{Y: 0}
)
