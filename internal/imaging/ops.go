package imaging

import (
	"fmt"
	"sort"
)

// Operation names accepted by Apply.
const (
	OpMean      = "mean"
	OpGaussian  = "gaussian"
	OpMedian    = "median"
	OpSobel     = "sobel"
	OpPrewitt   = "prewitt"
	OpLaplacian = "laplacian"
)

type operation struct {
	smoothing bool
	run       func(img *Image, param int) (*Image, error)
}

var operations = map[string]operation{
	OpMean:      {smoothing: true, run: MeanFilter},
	OpGaussian:  {smoothing: true, run: GaussianFilter},
	OpMedian:    {smoothing: true, run: MedianFilter},
	OpSobel:     {run: Sobel},
	OpPrewitt:   {run: Prewitt},
	OpLaplacian: {run: Laplacian},
}

// Operations lists the names accepted by Apply in sorted order.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSmoothing reports whether op takes a kernel size rather than a threshold.
func IsSmoothing(op string) bool {
	return operations[op].smoothing
}

// Apply runs the named operation. Smoothing filters use kernelSize and ignore
// threshold; edge detectors use threshold and ignore kernelSize.
func Apply(img *Image, op string, kernelSize, threshold int) (*Image, error) {
	o, ok := operations[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidParameter, op)
	}
	if o.smoothing {
		return o.run(img, kernelSize)
	}
	return o.run(img, threshold)
}
