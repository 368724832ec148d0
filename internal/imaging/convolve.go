package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/clone"
)

// Convolve applies k to every channel of img independently and returns a new
// image of the same shape.
//
// The kernel is rotated by 180 degrees before the weighted sum is taken, so
// directional kernels respond to the opposite transition than they would
// under Correlate. Out-of-bounds samples replicate the nearest border sample.
// Each output sample is accumulated in float64 and clipped to [0,255] once,
// after the full sum.
//
// The kernel side must not exceed the smaller image dimension; larger kernels
// are rejected with ErrInvalidParameter.
func Convolve(img *Image, k *Kernel) (*Image, error) {
	return Correlate(img, k.Flip())
}

// Correlate is Convolve without the kernel flip.
func Correlate(img *Image, k *Kernel) (*Image, error) {
	if err := checkWindow(img, k.Size()); err != nil {
		return nil, err
	}
	if k.Separable() {
		return correlateSeparable(img, k.factor), nil
	}
	return correlate2D(img, k), nil
}

func checkWindow(img *Image, size int) error {
	if img == nil || len(img.pix) == 0 {
		return fmt.Errorf("%w: empty image", ErrInvalidParameter)
	}
	if size%2 == 0 {
		return fmt.Errorf("%w: kernel side %d must be odd", ErrInvalidParameter, size)
	}
	if size > img.width || size > img.height {
		return fmt.Errorf("%w: kernel side %d exceeds image size %dx%d",
			ErrInvalidParameter, size, img.width, img.height)
	}
	return nil
}

func correlate2D(img *Image, k *Kernel) *Image {
	n := k.Size()
	taps := k.taps()
	p := pad(img, n/2)
	out := newImage(img.width, img.height, img.channels)
	ch := img.channels
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			for c := 0; c < ch; c++ {
				var sum float64
				for i := 0; i < n; i++ {
					row := ((y+i)*p.width + x) * ch
					for j := 0; j < n; j++ {
						sum += taps[i*n+j] * float64(p.pix[row+j*ch+c])
					}
				}
				out.pix[(y*img.width+x)*ch+c] = clip8(sum)
			}
		}
	}
	return out
}

// correlateSeparable runs the 1D factor f along rows of the padded buffer,
// keeping the intermediate in float64, then along columns.
func correlateSeparable(img *Image, f []float64) *Image {
	n := len(f)
	p := pad(img, n/2)
	ch := img.channels
	tmp := make([]float64, p.height*img.width*ch)
	for y := 0; y < p.height; y++ {
		for x := 0; x < img.width; x++ {
			for c := 0; c < ch; c++ {
				var sum float64
				base := (y*p.width + x) * ch
				for j := 0; j < n; j++ {
					sum += f[j] * float64(p.pix[base+j*ch+c])
				}
				tmp[(y*img.width+x)*ch+c] = sum
			}
		}
	}
	out := newImage(img.width, img.height, ch)
	stride := img.width * ch
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			for c := 0; c < ch; c++ {
				var sum float64
				base := y*stride + x*ch + c
				for i := 0; i < n; i++ {
					sum += f[i] * tmp[base+i*stride]
				}
				out.pix[y*stride+x*ch+c] = clip8(sum)
			}
		}
	}
	return out
}

// pad returns a copy of img grown by r samples on every border, where the new
// samples replicate the nearest edge sample.
func pad(img *Image, r int) *Image {
	if r == 0 {
		out := newImage(img.width, img.height, img.channels)
		copy(out.pix, img.pix)
		return out
	}
	rgba := clone.Pad(img.ToStdImage(), r, r, clone.EdgeExtend)
	b := rgba.Bounds()
	out := newImage(img.width+2*r, img.height+2*r, img.channels)
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			src := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			dst := (y*out.width + x) * out.channels
			copy(out.pix[dst:dst+out.channels], rgba.Pix[src:src+out.channels])
		}
	}
	return out
}
