package chart

import (
	"fmt"
	"math/rand/v2"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(channel(c.R)) * 0x101
	g = uint32(channel(c.G)) * 0x101
	b = uint32(channel(c.B)) * 0x101
	return r, g, b, 0xffff
}

func channel(v float64) uint8 {
	return uint8(clamp(v, 0, 1)*255 + 0.5)
}

// RandomPastel returns a light color whose channels are uniform in [0.3, 1.0].
func RandomPastel(r *rand.Rand) RGB {
	return RGB{
		R: pastelChannel(r),
		G: pastelChannel(r),
		B: pastelChannel(r),
	}
}

func pastelChannel(r *rand.Rand) float64 {
	return r.Float64()*0.7 + 0.3
}
