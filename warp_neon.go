package bentpixel

import "math"

// Neon constants.
const (
	neonBlock = 4
	neonGain  = 80.0
	neonGamma = 0.8
	neonBloom = 50.0
	neonEdge  = 50.0
)

// neonPhase holds the channel phase offsets of the color bleed, in radians.
var neonPhase = [3]float64{0, 2.094, 4.189}

// neonTable returns the brightness lookup for the given pulse. Entries are
// held at float32 precision.
func neonTable(pulse float64) [256]float64 {
	var lut [256]float64
	for v := range lut {
		curved := math.Pow(float64(v)/255, neonGamma)
		lut[v] = float64(float32(min(255, float64(v)+curved*neonGain*pulse)))
	}
	return lut
}

// warpNeon brightens the cell through a pulsing curve, adds a luminance bloom
// that fades away from the center and boosts horizontal edges.
func warpNeon(dst, src []uint8, width int, c Cell, t float64) {
	pulse := math.Sin(3*t)*0.3 + 1.2
	lut := neonTable(pulse)
	var phase [3]float64
	for ch := range phase {
		phase[ch] = math.Sin(4*t+neonPhase[ch])*0.5 + 0.5
	}

	for y := c.Box.Min.Y; y < c.Box.Max.Y; y += neonBlock {
		for x := c.Box.Min.X; x < c.Box.Max.X; x += neonBlock {
			dist, _ := c.normalized(x, y)
			falloff := max(0, 1-dist*2)

			for py := y; py < y+neonBlock && py < c.Box.Max.Y; py++ {
				for px := x; px < x+neonBlock && px < c.Box.Max.X; px++ {
					i := (py*width + px) * 4
					lum := (0.299*float64(src[i]) + 0.587*float64(src[i+1]) + 0.114*float64(src[i+2])) / 255
					bloom := lum * lum * falloff

					var glow [3]float64
					for ch := range glow {
						glow[ch] = lut[src[i+ch]] + bloom*neonBloom*phase[ch]
					}

					// The left neighbor is the previous pixel in memory order,
					// which wraps to the end of the previous row.
					var edge float64
					if i >= 4 {
						for ch := range glow {
							edge = max(edge, math.Abs(glow[ch]-lut[src[i-4+ch]])/255)
						}
						edge *= pulse
					}

					for ch := range glow {
						dst[i+ch] = saturate(glow[ch] + edge*neonEdge)
					}
				}
			}
		}
	}
}
