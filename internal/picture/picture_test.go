package picture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 0xff, A: 0xff})
	return img
}

func TestDecode_Formats(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"png":  func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) },
		"bmp":  func(b *bytes.Buffer, m image.Image) error { return bmp.Encode(b, m) },
		"tiff": func(b *bytes.Buffer, m image.Image) error { return tiff.Encode(b, m, nil) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc(&buf, sample()); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, format, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if format != name {
				t.Fatalf("format = %q, want %q", format, name)
			}
			if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			r, _, _, _ := img.At(1, 1).RGBA()
			if r != 0xffff {
				t.Fatalf("pixel (1,1) red = %#x, want 0xffff", r)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, sample()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("width = %d", img.Bounds().Dx())
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("Load of corrupt file succeeded")
	}
	if _, err := Load(filepath.Join(dir, "missing.png")); !os.IsNotExist(err) {
		t.Fatalf("Load of missing file = %v, want not-exist", err)
	}
}

func TestFitHeight(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	got := FitHeight(src, 10)
	if got.Bounds().Dx() != 20 || got.Bounds().Dy() != 10 {
		t.Fatalf("bounds = %v, want 20x10", got.Bounds())
	}
	if FitHeight(src, 20) != image.Image(src) {
		t.Fatal("image at target height was copied")
	}
}
