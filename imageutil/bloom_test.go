package imageutil

import (
	"testing"
)

func TestBloomBelowThresholdUnchanged(t *testing.T) {
	img := CreateGradientImage(32, 20)
	// Keep every pixel at or below 0.6
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			for c := 0; c < 3; c++ {
				img.Set(x, y, c, img.Get(x, y, c)*0.6)
			}
		}
	}

	bloomed, err := Bloom(img, DefaultBloomThreshold, DefaultBloomIntensity)
	if err != nil {
		t.Fatalf("Bloom failed: %v", err)
	}
	if bloomed.Checksum() != img.Checksum() {
		t.Errorf("Bloom changed an image with no pixel above threshold (max diff %d)",
			CalculateMaxDiff(img, bloomed))
	}
}

func TestBloomBrightImageSaturates(t *testing.T) {
	img := CreateSolidImage(8, 8, 230, 230, 230)
	bloomed, err := Bloom(img, DefaultBloomThreshold, DefaultBloomIntensity)
	if err != nil {
		t.Fatalf("Bloom failed: %v", err)
	}
	// 0.90 + 0.90*0.3 > 1
	if got := bloomed.At8(4, 4, 0); got != 255 {
		t.Errorf("Expected 255, got %d", got)
	}
}

func TestExtractGlowThresholdIsExclusive(t *testing.T) {
	img := mustBuffer(2, 1, 1)
	img.Set8(0, 0, 0, 200)
	img.Set8(1, 0, 0, 100)

	glow := ExtractGlow(img, img.Intensity(0, 0))
	if got := glow.At8(0, 0, 0); got != 0 {
		t.Errorf("Expected pixel equal to threshold to be dropped, got %d", got)
	}

	glow = ExtractGlow(img, 0.5)
	if got := glow.At8(0, 0, 0); got != 200 {
		t.Errorf("Expected 200, got %d", got)
	}
	if got := glow.At8(1, 0, 0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestCompositeAddsToEveryChannel(t *testing.T) {
	img := CreateSolidImage(1, 1, 51, 102, 204) // 0.2, 0.4, 0.8
	glow := mustBuffer(1, 1, 1)
	glow.Set8(0, 0, 0, 255)

	out := Composite(img, glow, 0.4)
	want := []uint8{153, 204, 255}
	for c, w := range want {
		if got := out.At8(0, 0, c); got != w {
			t.Errorf("Channel %d: expected %d, got %d", c, w, got)
		}
	}
}
