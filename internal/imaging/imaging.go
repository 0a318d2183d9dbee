// Package imaging normalizes uploaded item pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

const (
	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize = 5 << 20
	// MaxDimension bounds the stored width and height.
	MaxDimension = 1024
	// JPEGQuality is used for every stored image.
	JPEGQuality = 85
	// OutputMIME is the content type of every processed image.
	OutputMIME = "image/jpeg"
)

var (
	// ErrTooLarge is returned when the upload exceeds MaxUploadSize.
	ErrTooLarge = errors.New("image exceeds 5 MB")
	// ErrUnsupported is returned for anything other than JPEG or PNG.
	ErrUnsupported = errors.New("only JPEG and PNG images are accepted")
)

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Image is a processed picture ready to store.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Process sniffs the upload, bounds it to MaxDimension on its longest side
// and re-encodes it as JPEG. Transparent areas become white.
func Process(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, ErrTooLarge
	}
	if !accepted[http.DetectContentType(data)] {
		return nil, ErrUnsupported
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == src.Bounds().Dx() && h == src.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return &Image{Data: buf.Bytes(), Width: w, Height: h}, nil
}

// fit scales w x h down so the longer side is at most limit, keeping the
// aspect ratio. Smaller images are returned unchanged.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
