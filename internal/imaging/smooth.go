package imaging

import (
	"slices"
)

// MeanFilter replaces each sample by the average of its size x size
// neighbourhood. Even sizes are bumped to the next odd value.
func MeanFilter(img *Image, size int) (*Image, error) {
	k, err := MeanKernel(size)
	if err != nil {
		return nil, err
	}
	return Convolve(img, k)
}

// GaussianFilter blurs img with a size x size Gaussian kernel.
// Even sizes are bumped to the next odd value.
func GaussianFilter(img *Image, size int) (*Image, error) {
	k, err := GaussianKernel(size)
	if err != nil {
		return nil, err
	}
	return Convolve(img, k)
}

// MedianFilter replaces each sample by the median of its size x size window,
// per channel, using the same edge replication as Convolve. Since the
// window side is always odd the median is the exact middle sample.
func MedianFilter(img *Image, size int) (*Image, error) {
	size, err := checkKernelSize(size)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(img, size); err != nil {
		return nil, err
	}

	p := pad(img, size/2)
	ch := img.channels
	out := newImage(img.width, img.height, ch)
	window := make([]uint8, size*size)
	mid := len(window) / 2
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			for c := 0; c < ch; c++ {
				n := 0
				for i := 0; i < size; i++ {
					row := ((y+i)*p.width + x) * ch
					for j := 0; j < size; j++ {
						window[n] = p.pix[row+j*ch+c]
						n++
					}
				}
				slices.Sort(window)
				out.pix[(y*img.width+x)*ch+c] = window[mid]
			}
		}
	}
	return out, nil
}
