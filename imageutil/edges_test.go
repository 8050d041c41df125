package imageutil

import (
	"math"
	"testing"
)

func TestDirectionBucketAngles(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  int
	}{
		{"zero", 0, DirVertical},
		{"pi", math.Pi, DirVertical},
		{"minus pi", -math.Pi, DirVertical},
		{"half pi", math.Pi / 2, DirHorizontal},
		{"minus half pi", -math.Pi / 2, DirHorizontal},
		{"quarter pi", math.Pi / 4, DirDiagonal1},
		{"minus quarter pi", -math.Pi / 4, DirDiagonal2},
		{"minus three quarter pi", -3 * math.Pi / 4, DirDiagonal1},
		{"three quarter pi", 3 * math.Pi / 4, DirDiagonal2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionBucket(tt.angle); got != tt.want {
				t.Errorf("Expected bucket %d, got %d", tt.want, got)
			}
		})
	}
}

// boundaryAngles covers the bucket boundaries at 0.05, 0.45, 0.55 and 0.95
// pi and angles just past them.
var boundaryAngles = []struct {
	angle float64
	want  int
}{
	{0.05 * math.Pi, DirVertical},
	{-0.05 * math.Pi, DirVertical},
	{0.05*math.Pi + 1e-4, DirDiagonal1},
	{-0.05*math.Pi - 1e-4, DirDiagonal2},
	{0.45 * math.Pi, DirDiagonal2},
	{0.45*math.Pi - 1e-4, DirDiagonal1},
	{0.45*math.Pi + 1e-4, DirHorizontal},
	{-0.55*math.Pi + 1e-4, DirHorizontal},
	{-0.55 * math.Pi, DirDiagonal2},
	{-0.55*math.Pi - 1e-4, DirDiagonal1},
	{0.55*math.Pi + 1e-4, DirDiagonal2},
	{-0.95 * math.Pi, DirDiagonal2},
	{-0.95*math.Pi - 1e-4, DirVertical},
	{0.95*math.Pi + 1e-4, DirVertical},
	{math.Pi, DirVertical},
	{-math.Pi, DirVertical},
}

func TestDirectionBucketBoundaries(t *testing.T) {
	for _, tt := range boundaryAngles {
		if got := DirectionBucket(tt.angle); got != tt.want {
			t.Errorf("angle=%v (%.4f pi): expected bucket %d, got %d",
				tt.angle, tt.angle/math.Pi, tt.want, got)
		}
	}
}

func TestQuantizeDirectionBoundaries(t *testing.T) {
	plane, err := NewFloatPlane(len(boundaryAngles), 1)
	if err != nil {
		t.Fatalf("NewFloatPlane failed: %v", err)
	}
	for x, tt := range boundaryAngles {
		plane.Set(x, 0, float32(tt.angle))
	}

	quantized := QuantizeDirection(plane)
	for x, tt := range boundaryAngles {
		if got := BucketFromValue(quantized.Get(x, 0, 0)); got != tt.want {
			t.Errorf("angle=%v as float32: expected bucket %d, got %d",
				float32(tt.angle), tt.want, got)
		}
	}
}

func TestQuantizeDirectionRoundTrip(t *testing.T) {
	tests := []struct {
		angle float32
		want  int
	}{
		{0, DirVertical},
		{math.Pi / 2, DirHorizontal},
		{math.Pi / 4, DirDiagonal1},
		{-math.Pi / 4, DirDiagonal2},
		// float32(pi) is slightly larger than pi
		{math.Pi, DirVertical},
		{-math.Pi, DirVertical},
	}
	plane, err := NewFloatPlane(len(tests), 1)
	if err != nil {
		t.Fatalf("NewFloatPlane failed: %v", err)
	}
	for x, tt := range tests {
		plane.Set(x, 0, tt.angle)
	}

	quantized := QuantizeDirection(plane)
	for x, tt := range tests {
		if got := BucketFromValue(quantized.Get(x, 0, 0)); got != tt.want {
			t.Errorf("angle=%v: expected bucket %d, got %d", tt.angle, tt.want, got)
		}
	}
}

func TestSobelBorderIsZero(t *testing.T) {
	img := CreateCheckerboardImage(10, 8, 2)
	info := Sobel(img)

	for x := 0; x < 10; x++ {
		for _, y := range []int{0, 7} {
			if info.Magnitude.Get(x, y) != 0 || info.Direction.Get(x, y) != 0 {
				t.Errorf("Border pixel (%d,%d) should be zero", x, y)
			}
		}
	}
	for y := 0; y < 8; y++ {
		for _, x := range []int{0, 9} {
			if info.Magnitude.Get(x, y) != 0 || info.Direction.Get(x, y) != 0 {
				t.Errorf("Border pixel (%d,%d) should be zero", x, y)
			}
		}
	}
}

func TestSobelVerticalStep(t *testing.T) {
	img := CreateStepImage(8, 8, 4)
	info := Sobel(img)

	for _, x := range []int{3, 4} {
		mag := info.Magnitude.Get(x, 4)
		if math.Abs(float64(mag)-4) > 1e-5 {
			t.Errorf("Expected magnitude 4 at x=%d, got %v", x, mag)
		}
		if b := DirectionBucket(float64(info.Direction.Get(x, 4))); b != DirVertical {
			t.Errorf("Expected vertical edge bucket at x=%d, got %d", x, b)
		}
	}
	if mag := info.Magnitude.Get(1, 4); mag != 0 {
		t.Errorf("Expected no gradient in flat region, got %v", mag)
	}
}

func TestSobelBrightToDarkStep(t *testing.T) {
	img := mustBuffer(6, 5, 1)
	for y := 0; y < 5; y++ {
		for x := 0; x <= 2; x++ {
			img.Set8(x, y, 0, 255)
		}
	}
	info := Sobel(img)
	quantized := QuantizeDirection(info.Direction)

	for _, x := range []int{2, 3} {
		if mag := info.Magnitude.Get(x, 2); mag == 0 {
			t.Errorf("Expected gradient at x=%d", x)
		}
		if v := quantized.Get(x, 2, 0); v != 0 {
			t.Errorf("Expected vertical bucket (0) at x=%d, got value %v (bucket %d, angle %v)",
				x, v, BucketFromValue(v), info.Direction.Get(x, 2))
		}
	}
}

func TestSobelTinyImage(t *testing.T) {
	img := mustBuffer(2, 2, 1)
	info := Sobel(img)
	if info.Magnitude.Width() != 2 || info.Magnitude.Height() != 2 {
		t.Errorf("Expected 2x2 planes, got %dx%d", info.Magnitude.Width(), info.Magnitude.Height())
	}
}

func TestDifferenceOfGaussiansStep(t *testing.T) {
	img := CreateStepImage(12, 6, 6)
	mask, err := DifferenceOfGaussians(img, 5, 1.0, DefaultDoGSigmaScale, DefaultDoGTau, 0.05)
	if err != nil {
		t.Fatalf("DifferenceOfGaussians failed: %v", err)
	}
	if mask.Channels() != 1 {
		t.Fatalf("Expected 1-channel mask, got %d", mask.Channels())
	}

	for y := 0; y < 6; y++ {
		for x := 0; x < 12; x++ {
			want := uint8(0)
			if x == 6 || x == 7 {
				want = 255
			}
			if got := mask.At8(x, y, 0); got != want {
				t.Errorf("(%d,%d): expected %d, got %d", x, y, want, got)
			}
		}
	}
}

func TestDifferenceOfGaussiansFlat(t *testing.T) {
	img := CreateSolidImage(16, 16, 200, 200, 200)
	mask, err := DifferenceOfGaussians(img, 5, 1.0, DefaultDoGSigmaScale, DefaultDoGTau, DefaultDoGThreshold)
	if err != nil {
		t.Fatalf("DifferenceOfGaussians failed: %v", err)
	}
	if mask.Checksum() != mustBuffer(16, 16, 1).Checksum() {
		t.Error("Flat image should produce an empty mask")
	}
}

func TestDifferenceOfGaussiansInvalidKernel(t *testing.T) {
	img := CreateSolidImage(4, 4, 0, 0, 0)
	if _, err := DifferenceOfGaussians(img, 0, 1.0, 1.6, 0.99, 0.1); err == nil {
		t.Error("Expected error for kernel size 0")
	}
}

func TestGateEdges(t *testing.T) {
	quantized := mustBuffer(3, 1, 1)
	quantized.Set(0, 0, 0, 1.0/3)
	quantized.Set(1, 0, 0, 2.0/3)
	quantized.Set(2, 0, 0, 1)

	mask := mustBuffer(3, 1, 1)
	mask.Set(1, 0, 0, 1)

	gated := GateEdges(quantized, mask)
	if gated.At8(0, 0, 0) != 0 || gated.At8(2, 0, 0) != 0 {
		t.Error("Expected pixels outside the mask to be cleared")
	}
	if got := BucketFromValue(gated.Get(1, 0, 0)); got != 2 {
		t.Errorf("Expected bucket 2 inside the mask, got %d", got)
	}
}
