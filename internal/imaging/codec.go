package imaging

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pbnjay/memory"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultJPEGQuality is used when an encoder is asked for quality 0.
const DefaultJPEGQuality = 95

// DecodeImage decodes a raster file into a 3-channel RGB image. The format
// is detected from the content, not from any file name.
//
// Images whose sample buffer would take more than half of physical memory
// are rejected before the pixel data is decoded.
func DecodeImage(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image header: %v", ErrDecode, err)
	}
	if total := memory.TotalMemory(); total > 0 {
		need := uint64(cfg.Width) * uint64(cfg.Height) * 3
		if need > total/2 {
			return nil, fmt.Errorf("%w: %s image %dx%d needs %d bytes, more than half of %d bytes of memory",
				ErrDecode, format, cfg.Width, cfg.Height, need, total)
		}
	}
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s image: %v", ErrDecode, format, err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}
	return FromStdImage(src), nil
}

// FormatFromExtension maps a file extension (with or without the leading dot)
// to an encoder format. An empty extension selects JPEG.
func FormatFromExtension(ext string) (imaging.Format, error) {
	if ext == "" {
		return imaging.JPEG, nil
	}
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrEncode, ext, err)
	}
	return f, nil
}

// EncodeImage writes img to w in the given format. quality applies to JPEG
// only; 0 selects DefaultJPEGQuality.
func EncodeImage(w io.Writer, img *Image, format imaging.Format, quality int) error {
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("%w: JPEG quality %d outside [1,100]", ErrInvalidParameter, quality)
	}
	if err := imaging.Encode(w, img.ToStdImage(), format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", ErrEncode, format, err)
	}
	return nil
}

// DecodeCSV parses a rectangular comma separated numeric matrix into an RGB
// image with three identical channels.
//
// If the matrix holds a single distinct value it is taken as already being
// in [0,255] and is only saturated. Otherwise the values are min-max
// normalized onto [0,255] and rounded to the nearest integer, so the matrix
// 0,1,2 loads as 0,128,255 (a truncating conversion would give 127). Lines
// starting with '#' are ignored.
//
// Any structural or numeric problem is returned as ErrDecode; substituting a
// placeholder is left to the caller (see Loader).
func DecodeCSV(r io.Reader) (*Image, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrDecode)
	}

	height, width := len(records), len(records[0])
	values := make([]float64, 0, width*height)
	lo, hi := math.Inf(1), math.Inf(-1)
	for y, rec := range records {
		for x, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d column %d: %q is not a finite number", ErrDecode, y+1, x+1, field)
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			values = append(values, v)
		}
	}

	gray := newImage(width, height, 1)
	for i, v := range values {
		if hi != lo {
			v = (v - lo) * 255 / (hi - lo)
		}
		gray.pix[i] = clip8(v)
	}
	return gray.ToRGB(), nil
}

// EncodeCSV writes the luma of img as integers, one row per line.
func EncodeCSV(w io.Writer, img *Image) error {
	gray := img.Gray()
	cw := csv.NewWriter(w)
	record := make([]string, gray.width)
	for y := 0; y < gray.height; y++ {
		for x := range record {
			record[x] = strconv.Itoa(int(gray.pix[y*gray.width+x]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
