package imaging

import (
	"errors"
	"testing"
)

func TestSobel_UniformImage(t *testing.T) {
	img, err := Uniform(5, 5, 1, 100)
	img = mustImage(t, img, err)

	out, err := Sobel(img, 0)
	if err != nil {
		t.Fatalf("Sobel failed: %v", err)
	}
	if out.Channels() != 3 || out.Width() != 5 || out.Height() != 5 {
		t.Fatalf("shape: got %dx%dx%d, want 5x5x3", out.Width(), out.Height(), out.Channels())
	}
	if n := countNonZero(out); n != 0 {
		t.Errorf("flat region produced %d non-zero samples", n)
	}
}

func TestSobel_VerticalEdge(t *testing.T) {
	// Bright left half: the flipped X kernel yields a positive response.
	img := stepImage(t, 5, 5, 2, 255, 0)

	out, err := Sobel(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 128, 128, 0, 0}
	for y := 0; y < 5; y++ {
		for x, w := range want {
			for c := 0; c < 3; c++ {
				if got := out.At(x, y, c); got != w {
					t.Errorf("(%d,%d,%d): got %d, want %d", x, y, c, got, w)
				}
			}
		}
	}
}

func TestSobel_RisingEdgeClipped(t *testing.T) {
	// Dark left half: each directional response is negative and clipped to
	// zero before the magnitudes are combined.
	img := stepImage(t, 5, 5, 2, 0, 255)

	out, err := Sobel(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n := countNonZero(out); n != 0 {
		t.Errorf("got %d non-zero samples, want 0", n)
	}
}

func TestPrewitt_VerticalEdge(t *testing.T) {
	img := stepImage(t, 5, 5, 2, 90, 0)

	out, err := Prewitt(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	// |Gx| = 3*90 = 270 -> 255, Gy = 0, magnitude = 127.5 -> 128.
	if got := out.At(1, 2, 0); got != 128 {
		t.Errorf("edge: got %d, want 128", got)
	}
	if got := out.At(4, 2, 0); got != 0 {
		t.Errorf("flat: got %d, want 0", got)
	}
}

func TestSobel_ColorInputUsesLuma(t *testing.T) {
	pix := make([]uint8, 0, 5*5*3)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x < 2 {
				pix = append(pix, 255, 0, 0)
			} else {
				pix = append(pix, 0, 0, 0)
			}
		}
	}
	img, err := FromPixels(5, 5, 3, pix)
	img = mustImage(t, img, err)

	out, err := Sobel(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Luma of pure red is 76; |Gx| = 4*76 = 304 -> 255.
	if got := out.At(1, 0, 0); got != 128 {
		t.Errorf("got %d, want 128", got)
	}
}

func TestLaplacian_CenterSpike(t *testing.T) {
	img := grayImage(t, [][]uint8{
		{0, 0, 0},
		{0, 255, 0},
		{0, 0, 0},
	})

	out, err := Laplacian(img, 0)
	if err != nil {
		t.Fatalf("Laplacian failed: %v", err)
	}
	// Center: -4*255 clipped to 0. Orthogonal neighbours: +255.
	want := [][]uint8{
		{0, 255, 0},
		{255, 0, 255},
		{0, 255, 0},
	}
	for y := range want {
		for x := range want[y] {
			if got := out.At(x, y, 0); got != want[y][x] {
				t.Errorf("(%d,%d): got %d, want %d", x, y, got, want[y][x])
			}
		}
	}
}

func TestLaplacian_DarkSpike(t *testing.T) {
	img := grayImage(t, [][]uint8{
		{255, 255, 255},
		{255, 0, 255},
		{255, 255, 255},
	})
	out, err := Laplacian(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(1, 1, 0); got != 255 {
		t.Errorf("center: got %d, want 255 (4*255 clipped)", got)
	}
}

func TestLaplacian_CheckerboardStaysInRange(t *testing.T) {
	rows := make([][]uint8, 8)
	for y := range rows {
		rows[y] = make([]uint8, 8)
		for x := range rows[y] {
			if (x+y)%2 == 0 {
				rows[y][x] = 255
			}
		}
	}
	img := grayImage(t, rows)

	out, err := Laplacian(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Interior dark cells see four bright neighbours: 4*255 -> 255.
	// Interior bright cells see -4*255 -> 0.
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			want := uint8(0)
			if (x+y)%2 == 1 {
				want = 255
			}
			if got := out.At(x, y, 0); got != want {
				t.Errorf("(%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestThreshold_SuppressesWithoutBinarizing(t *testing.T) {
	img := grayImage(t, [][]uint8{{10, 50, 100, 200}})
	post, err := Threshold(50)
	if err != nil {
		t.Fatal(err)
	}
	out := post(img)
	want := []uint8{0, 50, 100, 200}
	for x, w := range want {
		if got := out.At(x, 0, 0); got != w {
			t.Errorf("x=%d: got %d, want %d", x, got, w)
		}
	}
	if img.At(0, 0, 0) != 10 {
		t.Error("Threshold mutated its input")
	}
}

func TestThreshold_ZeroIsIdentity(t *testing.T) {
	img := randomImage(t, 4, 4, 1)
	post, err := Threshold(0)
	if err != nil {
		t.Fatal(err)
	}
	if !post(img).Equal(img) {
		t.Error("threshold 0 changed the magnitude")
	}
}

func TestThreshold_Invalid(t *testing.T) {
	img := randomImage(t, 5, 5, 3)
	for _, threshold := range []int{-1, 256} {
		if _, err := Threshold(threshold); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Threshold(%d): got %v, want ErrInvalidParameter", threshold, err)
		}
		if _, err := Sobel(img, threshold); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Sobel(%d): got %v, want ErrInvalidParameter", threshold, err)
		}
		if _, err := Laplacian(img, threshold); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Laplacian(%d): got %v, want ErrInvalidParameter", threshold, err)
		}
	}
}

func TestEdgeDetectors_ThresholdMonotonic(t *testing.T) {
	detectors := map[string]func(*Image, int) (*Image, error){
		"sobel":     Sobel,
		"prewitt":   Prewitt,
		"laplacian": Laplacian,
	}
	img := randomImage(t, 24, 16, 3)

	for name, detect := range detectors {
		t.Run(name, func(t *testing.T) {
			prev := -1
			for _, threshold := range []int{0, 1, 16, 64, 128, 200, 255} {
				out, err := detect(img, threshold)
				if err != nil {
					t.Fatalf("threshold %d: %v", threshold, err)
				}
				n := countNonZero(out)
				if prev >= 0 && n > prev {
					t.Errorf("threshold %d: %d non-zero samples, more than %d at the previous threshold", threshold, n, prev)
				}
				prev = n
			}
		})
	}
}

func TestSobel_ThresholdBoundary(t *testing.T) {
	img := stepImage(t, 5, 5, 2, 255, 0)

	kept, err := Sobel(img, 128)
	if err != nil {
		t.Fatal(err)
	}
	if got := kept.At(1, 0, 0); got != 128 {
		t.Errorf("threshold 128: got %d, want 128", got)
	}

	dropped, err := Sobel(img, 129)
	if err != nil {
		t.Fatal(err)
	}
	if n := countNonZero(dropped); n != 0 {
		t.Errorf("threshold 129: %d non-zero samples, want 0", n)
	}
}

func TestEdgeDetectors_TooSmall(t *testing.T) {
	img := randomImage(t, 2, 5, 3)
	if _, err := Sobel(img, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Sobel: got %v, want ErrInvalidParameter", err)
	}
	if _, err := Laplacian(nil, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Laplacian(nil): got %v, want ErrInvalidParameter", err)
	}
}
