package img2ascii

import (
	"fmt"
	"math"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// toUint32 packs the color as 0xRRGGBB.
func (c RGB) toUint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", c.toUint32())
}

// colorDistance calculates the Euclidean distance between two RGB colors.
func (c RGB) colorDistance(other RGB) float64 {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}

// sampleColor converts normalized channel values to an 8-bit color,
// clamping to [0,1] and truncating. The same 1e-3 guard as
// PixelBuffer.Set keeps 8-bit samples exact.
func sampleColor(r, g, b float32) RGB {
	return RGB{R: toByte(r), G: toByte(g), B: toByte(b)}
}

func toByte(v float32) uint8 {
	switch {
	case v != v || v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 1e-3)
}
