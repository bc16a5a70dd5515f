package ioutils

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ErrInvalidSize is returned for a non-positive thumbnail size.
var ErrInvalidSize = errors.New("thumbnail size must be positive")

// Thumbnail scales an image so that neither side exceeds maxSize and
// returns it JPEG-encoded. The aspect ratio is preserved and images that
// already fit are only re-encoded.
//
// The Catmull-Rom kernel is used for scaling.
//
// Example:
//
//	// A 1500x1000 painting becomes 600x400
//	thumb, err := ioutils.Thumbnail(data, 600)
func Thumbnail(data []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		return nil, ErrInvalidSize
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit returns width and height scaled down to fit a maxSize square.
func fit(width, height, maxSize int) (int, int) {
	if width <= maxSize && height <= maxSize {
		return width, height
	}
	if width >= height {
		return maxSize, max(1, height*maxSize/width)
	}
	return max(1, width*maxSize/height), maxSize
}
