package imaging

import (
	"testing"

	"github.com/valyala/fastrand"
)

// mustImage fails the test if an image constructor returned an error.
func mustImage(t *testing.T, img *Image, err error) *Image {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to build image: %v", err)
	}
	return img
}

// grayImage builds a grayscale image from rows.
func grayImage(t *testing.T, rows [][]uint8) *Image {
	t.Helper()
	img, err := FromGrayRows(rows)
	return mustImage(t, img, err)
}

// randomImage fills an image with uniformly distributed samples.
func randomImage(t *testing.T, width, height, channels int) *Image {
	t.Helper()
	var rng fastrand.RNG
	pix := make([]uint8, width*height*channels)
	for i := range pix {
		pix[i] = uint8(rng.Uint32n(256))
	}
	img, err := FromPixels(width, height, channels, pix)
	return mustImage(t, img, err)
}

// stepImage returns a grayscale image whose first cols columns are left and
// the rest are right.
func stepImage(t *testing.T, width, height, cols int, left, right uint8) *Image {
	t.Helper()
	rows := make([][]uint8, height)
	for y := range rows {
		rows[y] = make([]uint8, width)
		for x := range rows[y] {
			if x < cols {
				rows[y][x] = left
			} else {
				rows[y][x] = right
			}
		}
	}
	return grayImage(t, rows)
}

// countNonZero counts non-zero samples.
func countNonZero(img *Image) int {
	n := 0
	for _, v := range img.pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
