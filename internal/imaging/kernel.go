package imaging

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel is a square matrix of floating point weights with an odd side.
//
// Smoothing kernels (mean, Gaussian) are normalized so their weights sum to
// 1 and are built as the outer product of a 1D factor; the factor is kept so
// Convolve can run rows and columns separately. Derivative kernels carry
// signed weights and no factor.
type Kernel struct {
	weights *mat.Dense
	factor  []float64
}

// NewKernel builds a kernel from its rows. The matrix must be square with an
// odd side length.
func NewKernel(rows [][]float64) (*Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return nil, fmt.Errorf("%w: kernel side %d must be odd", ErrInvalidParameter, n)
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: kernel row %d has %d weights, want %d", ErrInvalidParameter, i, len(row), n)
		}
		data = append(data, row...)
	}
	return &Kernel{weights: mat.NewDense(n, n, data)}, nil
}

func mustKernel(rows [][]float64) *Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// separableKernel returns outer(f, f).
func separableKernel(f []float64) *Kernel {
	v := mat.NewVecDense(len(f), f)
	var d mat.Dense
	d.Outer(1, v, v)
	return &Kernel{weights: &d, factor: f}
}

// Size returns the side length of the kernel.
func (k *Kernel) Size() int {
	n, _ := k.weights.Dims()
	return n
}

// At returns the weight at row r, column c.
func (k *Kernel) At(r, c int) float64 {
	return k.weights.At(r, c)
}

// Sum returns the total of all weights.
func (k *Kernel) Sum() float64 {
	return mat.Sum(k.weights)
}

// Separable reports whether the kernel is the outer product of a 1D factor.
func (k *Kernel) Separable() bool {
	return k.factor != nil
}

// Flip returns the kernel rotated by 180 degrees.
func (k *Kernel) Flip() *Kernel {
	n := k.Size()
	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data[r*n+c] = k.weights.At(n-1-r, n-1-c)
		}
	}
	flipped := &Kernel{weights: mat.NewDense(n, n, data)}
	if k.factor != nil {
		flipped.factor = make([]float64, n)
		for i, v := range k.factor {
			flipped.factor[n-1-i] = v
		}
	}
	return flipped
}

// taps returns the weights row-major.
func (k *Kernel) taps() []float64 {
	n := k.Size()
	out := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[r*n+c] = k.weights.At(r, c)
		}
	}
	return out
}

// OddSize forces a requested kernel side to be odd by bumping even values up
// by one.
func OddSize(size int) int {
	if size%2 == 0 {
		return size + 1
	}
	return size
}

func checkKernelSize(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("%w: kernel size %d must be at least 1", ErrInvalidParameter, size)
	}
	return OddSize(size), nil
}

// MeanKernel returns a size x size box kernel with every weight 1/size².
// Even sizes are bumped to the next odd value.
func MeanKernel(size int) (*Kernel, error) {
	size, err := checkKernelSize(size)
	if err != nil {
		return nil, err
	}
	f := make([]float64, size)
	for i := range f {
		f[i] = 1 / float64(size)
	}
	return separableKernel(f), nil
}

// GaussianSigma derives the standard deviation used for a Gaussian kernel of
// the given (odd) side.
func GaussianSigma(size int) float64 {
	return 0.3*((float64(size)-1)*0.5-1) + 0.8
}

// GaussianKernel returns a normalized size x size Gaussian kernel sampled at
// integer offsets from the center, with sigma from GaussianSigma.
// Even sizes are bumped to the next odd value.
func GaussianKernel(size int) (*Kernel, error) {
	size, err := checkKernelSize(size)
	if err != nil {
		return nil, err
	}
	sigma := GaussianSigma(size)
	half := float64(size-1) / 2
	g := make([]float64, size)
	for i := range g {
		x := float64(i) - half
		g[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(g), g)
	return separableKernel(g), nil
}

// SobelX returns the horizontal Sobel derivative kernel.
func SobelX() *Kernel {
	return mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// SobelY returns the vertical Sobel derivative kernel.
func SobelY() *Kernel {
	return mustKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// PrewittX returns the horizontal Prewitt derivative kernel.
func PrewittX() *Kernel {
	return mustKernel([][]float64{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	})
}

// PrewittY returns the vertical Prewitt derivative kernel.
func PrewittY() *Kernel {
	return mustKernel([][]float64{
		{-1, -1, -1},
		{0, 0, 0},
		{1, 1, 1},
	})
}

// LaplacianKernel returns the 4-neighbour discrete Laplace operator.
func LaplacianKernel() *Kernel {
	return mustKernel([][]float64{
		{0, 1, 0},
		{1, -4, 1},
		{0, 1, 0},
	})
}
