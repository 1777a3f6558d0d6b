package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a solid-color PNG file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	imgPath := createTestImage(t, 100, 60, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	img, err := Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x60", bounds.Dx(), bounds.Dy())
	}
}

func TestLoad_JPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	path := filepath.Join(t.TempDir(), "photo.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := jpeg.Encode(f, img, nil); err != nil {
		f.Close()
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	f.Close()

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Bounds().Dx() != 40 || loaded.Bounds().Dy() != 30 {
		t.Errorf("unexpected dimensions: got %v", loaded.Bounds())
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	if err := os.WriteFile(path, []byte("this is not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestLoadInfo(t *testing.T) {
	imgPath := createTestImage(t, 120, 80, color.White)
	defer os.Remove(imgPath)

	info, err := LoadInfo(imgPath)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}

	if info.Width != 120 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size should be positive, got %d", info.FileSizeBytes)
	}
}

func TestLoadInfo_FormatFromContents(t *testing.T) {
	// PNG data behind a .jpg name is still reported as png
	src := createTestImage(t, 10, 10, color.Black)
	defer os.Remove(src)

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	path := filepath.Join(t.TempDir(), "misnamed.jpg")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	info, err := LoadInfo(path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want png", info.Format)
	}
}

func TestLoadInfo_NonExistent(t *testing.T) {
	_, err := LoadInfo("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("LoadInfo should fail for non-existent file")
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 20))
	img.SetGray(5, 5, color.Gray{Y: 255})

	// The extension does not change the encoding
	path := filepath.Join(t.TempDir(), "binary.out")
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open saved file: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 30 || decoded.Bounds().Dy() != 20 {
		t.Errorf("unexpected dimensions: got %v", decoded.Bounds())
	}
	r, _, _, _ := decoded.At(5, 5).RGBA()
	if r>>8 != 255 {
		t.Errorf("pixel (5,5): got %d, want 255", r>>8)
	}
}

func TestSavePNG_UnwritableDirectory(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	err := SavePNG(img, "/nonexistent/dir/out.png")
	if err == nil {
		t.Error("SavePNG should fail when the directory does not exist")
	}
}
