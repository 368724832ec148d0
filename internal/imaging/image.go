package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Image is a dense raster of 8-bit samples, either grayscale (1 channel) or
// RGB (3 channels, interleaved in R, G, B order).
//
// An Image is immutable once constructed: every operator in this package
// returns a freshly allocated Image and never writes to its inputs.
// Samples are stored row-major, so the sample for channel c at (x, y) lives
// at index (y*width+x)*channels + c.
type Image struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

// newImage allocates a zeroed image. Callers fill pix before handing it out.
func newImage(width, height, channels int) *Image {
	return &Image{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]uint8, width*height*channels),
	}
}

// NewImage returns a black image of the given shape.
//
// channels must be 1 (grayscale) or 3 (RGB); width and height must be positive.
func NewImage(width, height, channels int) (*Image, error) {
	if err := checkShape(width, height, channels); err != nil {
		return nil, err
	}
	return newImage(width, height, channels), nil
}

// FromPixels builds an image from a row-major interleaved sample slice.
// The slice is copied, so the caller may reuse it afterwards.
func FromPixels(width, height, channels int, pix []uint8) (*Image, error) {
	if err := checkShape(width, height, channels); err != nil {
		return nil, err
	}
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("%w: got %d samples, want %d for %dx%dx%d",
			ErrInvalidParameter, len(pix), width*height*channels, width, height, channels)
	}
	img := newImage(width, height, channels)
	copy(img.pix, pix)
	return img, nil
}

// FromGrayRows builds a grayscale image from a slice of rows.
// All rows must have the same, non-zero length.
func FromGrayRows(rows [][]uint8) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidParameter)
	}
	width := len(rows[0])
	img := newImage(width, len(rows), 1)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidParameter, y, len(row), width)
		}
		copy(img.pix[y*width:], row)
	}
	return img, nil
}

// Uniform returns an image whose every sample equals v.
func Uniform(width, height, channels int, v uint8) (*Image, error) {
	img, err := NewImage(width, height, channels)
	if err != nil {
		return nil, err
	}
	for i := range img.pix {
		img.pix[i] = v
	}
	return img, nil
}

// FromStdImage converts any image.Image into a 3-channel RGB Image.
// Alpha is discarded; color samples are taken non-premultiplied.
func FromStdImage(src image.Image) *Image {
	nrgba := imaging.Clone(src)
	b := nrgba.Bounds()
	img := newImage(b.Dx(), b.Dy(), 3)
	for y := 0; y < img.height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < img.width; x++ {
			o := (y*img.width + x) * 3
			img.pix[o] = row[x*4]
			img.pix[o+1] = row[x*4+1]
			img.pix[o+2] = row[x*4+2]
		}
	}
	return img
}

// ToStdImage returns a standard library view of the image: *image.Gray for
// grayscale images and an opaque *image.NRGBA for RGB images.
// The returned image owns its own buffer.
func (img *Image) ToStdImage() image.Image {
	r := image.Rect(0, 0, img.width, img.height)
	if img.channels == 1 {
		g := image.NewGray(r)
		copy(g.Pix, img.pix)
		return g
	}
	out := image.NewNRGBA(r)
	for i, j := 0, 0; i < len(img.pix); i, j = i+3, j+4 {
		out.Pix[j] = img.pix[i]
		out.Pix[j+1] = img.pix[i+1]
		out.Pix[j+2] = img.pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}

// Width returns the number of columns.
func (img *Image) Width() int { return img.width }

// Height returns the number of rows.
func (img *Image) Height() int { return img.height }

// Channels returns 1 for grayscale images and 3 for RGB images.
func (img *Image) Channels() int { return img.channels }

// At returns the sample of channel c at column x, row y.
func (img *Image) At(x, y, c int) uint8 {
	return img.pix[(y*img.width+x)*img.channels+c]
}

// Pix returns a copy of the interleaved sample buffer.
func (img *Image) Pix() []uint8 {
	out := make([]uint8, len(img.pix))
	copy(out, img.pix)
	return out
}

// Equal reports whether both images have the same shape and samples.
func (img *Image) Equal(other *Image) bool {
	if img.width != other.width || img.height != other.height || img.channels != other.channels {
		return false
	}
	for i := range img.pix {
		if img.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Gray reduces the image to a single luma channel using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B). A grayscale image is copied as is.
func (img *Image) Gray() *Image {
	out := newImage(img.width, img.height, 1)
	if img.channels == 1 {
		copy(out.pix, img.pix)
		return out
	}
	for i := range out.pix {
		o := i * 3
		out.pix[i] = luma(img.pix[o], img.pix[o+1], img.pix[o+2])
	}
	return out
}

// ToRGB broadcasts a grayscale image to three identical channels.
// An RGB image is copied as is.
func (img *Image) ToRGB() *Image {
	out := newImage(img.width, img.height, 3)
	if img.channels == 3 {
		copy(out.pix, img.pix)
		return out
	}
	for i, v := range img.pix {
		out.pix[i*3] = v
		out.pix[i*3+1] = v
		out.pix[i*3+2] = v
	}
	return out
}

func luma(r, g, b uint8) uint8 {
	return clip8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

// clip8 saturates v to [0,255] and rounds it to the nearest sample value.
func clip8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func checkShape(width, height, channels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image dimensions %dx%d must be positive", ErrInvalidParameter, width, height)
	}
	if channels != 1 && channels != 3 {
		return fmt.Errorf("%w: %d channels, want 1 or 3", ErrInvalidParameter, channels)
	}
	return nil
}
