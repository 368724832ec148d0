// Package imaging implements the spatial filtering engine behind the MCP
// server: smoothing filters, gradient edge detectors, and the codecs that let
// raster files and CSV matrices share one in-memory representation.
//
// # Image Representation
//
// Image is a dense 8-bit raster with 1 (grayscale) or 3 (RGB) channels.
// Images are immutable values: every operator allocates its result and never
// writes to an input, so "original" and "current" images held by a caller can
// never alias the same buffer.
//
// # Convolution
//
// Convolve rotates the kernel by 180 degrees before summing (true
// convolution). Borders are handled by edge replication: out-of-bounds
// samples take the value of the nearest in-bounds sample. Sums are kept in
// float64 and clipped to [0,255] once per output sample. Mean and Gaussian
// kernels are separable and are applied as a row pass followed by a column
// pass.
//
// # Filters
//
//   - MeanFilter, GaussianFilter: Convolve with MeanKernel/GaussianKernel
//   - MedianFilter: exact per-channel median of each size x size window
//   - Sobel, Prewitt: 0.5*|Gx| + 0.5*|Gy| over the luma channel
//   - Laplacian: clipped response to the 4-neighbour Laplace kernel
//
// Even kernel sizes are bumped to the next odd value. Kernels larger than the
// image are rejected with ErrInvalidParameter. Edge detectors always return
// RGB images and accept a threshold in [0,255]: samples below it are zeroed,
// the rest pass unchanged, and 0 disables suppression.
//
// # Formats
//
// DecodeImage sniffs PNG, JPEG, GIF, BMP, TIFF and WebP content. DecodeCSV
// min-max normalizes a numeric matrix into [0,255]. Loader dispatches on the
// file extension and applies the CSV recovery policy; Save never leaves a
// partially written file.
//
// # Thread Safety
//
// All operators are synchronous and stateless; concurrent calls on shared
// images are safe. ImageCache is safe for concurrent use.
package imaging
