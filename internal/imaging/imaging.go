// Package imaging turns inbound photo blobs into the canonical pixel grid
// and the normalized tensor a classifier model expects.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// ErrUnreadable indicates a blob that is corrupt or in an unsupported format.
var ErrUnreadable = errors.New("unreadable or unsupported image format")

// Preprocessing is the input contract a classifier model declares: square
// input dimension plus per-channel centering and scaling.
type Preprocessing struct {
	Size  int
	Mean  [3]float32
	Scale [3]float32
}

// Tensor is a Size x Size x 3 image in HWC float32 layout.
type Tensor struct {
	Size int
	Data []float32
}

// Decode parses an encoded image blob into its pixel grid and reports the
// source format.
func Decode(blob []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return img, format, nil
}

// Normalize converts img to a fixed 3-channel grid, resizes it to the
// preprocessing dimension with Catmull-Rom resampling, and applies the
// model's centering and scaling.
func Normalize(img image.Image, p Preprocessing) *Tensor {
	dst := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	data := make([]float32, 0, p.Size*p.Size*3)
	for y := range p.Size {
		for x := range p.Size {
			c := dst.RGBAAt(x, y)
			data = append(data,
				(float32(c.R)-p.Mean[0])*p.Scale[0],
				(float32(c.G)-p.Mean[1])*p.Scale[1],
				(float32(c.B)-p.Mean[2])*p.Scale[2],
			)
		}
	}

	return &Tensor{Size: p.Size, Data: data}
}

// EncodePNG renders a pixel grid to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
