// Package picture decodes images from disk for use as bar backgrounds and
// image components. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
package picture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any supported format and returns the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Load decodes the image at path. A leading ~ is expanded.
func Load(path string) (image.Image, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FitHeight scales img to the given height, keeping its aspect ratio. Images
// already that tall are returned unchanged.
func FitHeight(img image.Image, height int) image.Image {
	b := img.Bounds()
	if height <= 0 || b.Dy() == height || b.Dy() == 0 {
		return img
	}
	width := max(1, b.Dx()*height/b.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
