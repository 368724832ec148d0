package imaging

import (
	"errors"
	"testing"
)

func TestMeanFilter_UniformImage(t *testing.T) {
	for _, channels := range []int{1, 3} {
		img, err := Uniform(5, 5, channels, 100)
		img = mustImage(t, img, err)

		out, err := MeanFilter(img, 3)
		if err != nil {
			t.Fatalf("MeanFilter failed: %v", err)
		}
		if !out.Equal(img) {
			t.Errorf("%d channels: mean of a uniform image changed it", channels)
		}
	}
}

func TestMeanFilter_Average(t *testing.T) {
	img := grayImage(t, [][]uint8{
		{0, 0, 0},
		{0, 90, 0},
		{0, 0, 0},
	})
	out, err := MeanFilter(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := out.At(x, y, 0); got != 10 {
				t.Errorf("(%d,%d): got %d, want 10", x, y, got)
			}
		}
	}
}

func TestMeanFilter_EvenSizeBumped(t *testing.T) {
	img := randomImage(t, 9, 9, 3)
	even, err := MeanFilter(img, 4)
	if err != nil {
		t.Fatal(err)
	}
	odd, err := MeanFilter(img, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !even.Equal(odd) {
		t.Error("size 4 should behave like size 5")
	}
}

func TestGaussianFilter(t *testing.T) {
	img, err := Uniform(7, 7, 3, 42)
	img = mustImage(t, img, err)
	out, err := GaussianFilter(img, 5)
	if err != nil {
		t.Fatalf("GaussianFilter failed: %v", err)
	}
	if !out.Equal(img) {
		t.Error("Gaussian of a uniform image changed it")
	}

	spike := grayImage(t, [][]uint8{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 255, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})
	blurred, err := GaussianFilter(spike, 3)
	if err != nil {
		t.Fatal(err)
	}
	center, side, corner := blurred.At(2, 2, 0), blurred.At(2, 1, 0), blurred.At(1, 1, 0)
	if !(center > side && side > corner && corner > 0) {
		t.Errorf("expected decreasing response from center: center=%d side=%d corner=%d", center, side, corner)
	}
	if blurred.At(0, 0, 0) != 0 {
		t.Errorf("response outside kernel support: got %d", blurred.At(0, 0, 0))
	}
}

func TestMedianFilter_FlatRegion(t *testing.T) {
	img, err := Uniform(6, 4, 3, 77)
	img = mustImage(t, img, err)
	out, err := MedianFilter(img, 3)
	if err != nil {
		t.Fatalf("MedianFilter failed: %v", err)
	}
	if !out.Equal(img) {
		t.Error("median of a flat region changed it")
	}
}

func TestMedianFilter_RemovesImpulse(t *testing.T) {
	img := grayImage(t, [][]uint8{
		{50, 50, 50, 50},
		{50, 255, 50, 50},
		{50, 50, 0, 50},
		{50, 50, 50, 50},
	})
	out, err := MedianFilter(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.At(x, y, 0); got != 50 {
				t.Errorf("(%d,%d): got %d, want 50", x, y, got)
			}
		}
	}
}

func TestMedianFilter_ExactMedian(t *testing.T) {
	img := grayImage(t, [][]uint8{
		{9, 1, 8},
		{2, 7, 3},
		{6, 4, 5},
	})
	out, err := MedianFilter(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(1, 1, 0); got != 5 {
		t.Errorf("center: got %d, want 5", got)
	}
	// Window at (0,0) with replication: 9 9 1 / 9 9 1 / 2 2 7 -> sorted middle is 7.
	if got := out.At(0, 0, 0); got != 7 {
		t.Errorf("corner: got %d, want 7", got)
	}
}

func TestMedianFilter_ChannelsIndependent(t *testing.T) {
	pix := make([]uint8, 0, 3*3*3)
	for i := 0; i < 9; i++ {
		pix = append(pix, 10, 20, 30)
	}
	// Impulse only in the green channel.
	pix[4*3+1] = 255
	img, err := FromPixels(3, 3, 3, pix)
	img = mustImage(t, img, err)

	out, err := MedianFilter(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.At(1, 1, 0) != 10 || out.At(1, 1, 1) != 20 || out.At(1, 1, 2) != 30 {
		t.Errorf("center: got (%d,%d,%d), want (10,20,30)", out.At(1, 1, 0), out.At(1, 1, 1), out.At(1, 1, 2))
	}
}

func TestSmoothing_InvalidSizes(t *testing.T) {
	img := randomImage(t, 4, 4, 3)
	filters := map[string]func(*Image, int) (*Image, error){
		"mean":     MeanFilter,
		"gaussian": GaussianFilter,
		"median":   MedianFilter,
	}

	for name, f := range filters {
		for _, size := range []int{0, -1, 4, 5, 6} {
			if _, err := f(img, size); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%s size %d: got %v, want ErrInvalidParameter", name, size, err)
			}
		}
		if _, err := f(img, 3); err != nil {
			t.Errorf("%s size 3: unexpected error %v", name, err)
		}
	}
}
