package imaging

import (
	"fmt"
	"math"
)

// PostFilter transforms an edge magnitude image before it is returned.
type PostFilter func(*Image) *Image

// Threshold returns a PostFilter that zeroes every magnitude sample below t
// and passes samples >= t through unchanged. A threshold of 0 returns the
// raw magnitude.
func Threshold(t int) (PostFilter, error) {
	if t < 0 || t > 255 {
		return nil, fmt.Errorf("%w: threshold %d outside [0,255]", ErrInvalidParameter, t)
	}
	if t == 0 {
		return func(img *Image) *Image { return img }, nil
	}
	cut := uint8(t)
	return func(img *Image) *Image {
		out := newImage(img.width, img.height, img.channels)
		for i, v := range img.pix {
			if v >= cut {
				out.pix[i] = v
			}
		}
		return out
	}, nil
}

// Sobel returns the Sobel gradient magnitude of img's luma as a 3-channel
// image. Samples below threshold are suppressed; pass 0 to keep all.
func Sobel(img *Image, threshold int) (*Image, error) {
	return gradient(img, SobelX(), SobelY(), threshold)
}

// Prewitt is Sobel with the Prewitt kernel pair.
func Prewitt(img *Image, threshold int) (*Image, error) {
	return gradient(img, PrewittX(), PrewittY(), threshold)
}

// Laplacian returns the clipped response of img's luma to the 4-neighbour
// Laplace kernel as a 3-channel image, thresholded like Sobel.
func Laplacian(img *Image, threshold int) (*Image, error) {
	post, err := Threshold(threshold)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(img, 3); err != nil {
		return nil, err
	}
	mag, err := Convolve(img.Gray(), LaplacianKernel())
	if err != nil {
		return nil, err
	}
	return post(mag).ToRGB(), nil
}

// gradient combines the clipped responses to kx and ky as
// 0.5*|gx| + 0.5*|gy|. This is the weighted absolute approximation, not the
// Euclidean norm.
func gradient(img *Image, kx, ky *Kernel, threshold int) (*Image, error) {
	post, err := Threshold(threshold)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(img, kx.Size()); err != nil {
		return nil, err
	}
	gray := img.Gray()
	gx, err := Convolve(gray, kx)
	if err != nil {
		return nil, err
	}
	gy, err := Convolve(gray, ky)
	if err != nil {
		return nil, err
	}
	mag := newImage(gray.width, gray.height, 1)
	for i := range mag.pix {
		mag.pix[i] = clip8(0.5*math.Abs(float64(gx.pix[i])) + 0.5*math.Abs(float64(gy.pix[i])))
	}
	return post(mag).ToRGB(), nil
}
