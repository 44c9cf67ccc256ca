package bentpixel

import "math"

// Shatter constants.
const (
	shatterFractures    = 5
	shatterDisplacement = 100.0
	shatterBend         = 15.0
	shatterEdgeGain     = 0.8
)

// fracture is one radial crack direction of the shatter warp.
type fracture struct {
	angle    float64
	strength float64
}

// fractures returns the crack directions at time t.
func fractures(t float64) [shatterFractures]fracture {
	var fs [shatterFractures]fracture
	for i := range fs {
		fs[i] = fracture{
			angle:    2*math.Pi*float64(i)/shatterFractures + 0.2*t,
			strength: math.Sin(t+float64(i))*0.5 + 1.5,
		}
	}
	return fs
}

// dominantFracture returns the angle and power of the fracture best aligned
// with base. If no fracture has positive power, base itself is returned with
// power 0.
func dominantFracture(fs [shatterFractures]fracture, base float64) (angle, power float64) {
	angle = base
	for _, f := range fs {
		// math.Mod keeps the sign of the dividend.
		diff := math.Abs(math.Mod(base-f.angle+math.Pi, 2*math.Pi) - math.Pi)
		p := (1 - diff/math.Pi) * f.strength
		if p > power {
			power = p
			angle = f.angle
		}
	}
	return angle, power
}

// shardSize returns the side of a shatter shard in pixels.
func shardSize(c Cell) int {
	return max(1, floorInt(min(c.W, c.H)/6))
}

// warpShatter breaks the cell into square shards, each displaced along its
// dominant fracture, bent per subpixel and color-shifted toward its edges.
func warpShatter(dst, src []uint8, width int, c Cell, t float64) {
	s := shardSize(c)
	half := float64(s) / 2
	fs := fractures(t)

	for y := c.Box.Min.Y; y < c.Box.Max.Y; y += s {
		for x := c.Box.Min.X; x < c.Box.Max.X; x += s {
			dist, base := c.normalized(x, y)
			angle, power := dominantFracture(fs, base)

			chaos := math.Sin(0.05*float64(x)+0.05*float64(y)+t)*0.5 + 0.5
			disp := shatterDisplacement * dist * power * (1 + chaos)
			glitch := math.Floor(math.Sin(2*t+5*dist) * float64(s) * 0.5)
			offX := math.Cos(angle)*disp + glitch
			offY := math.Sin(angle) * disp

			for sy := 0; sy < s && y+sy < c.Box.Max.Y; sy++ {
				for sx := 0; sx < s && x+sx < c.Box.Max.X; sx++ {
					progress := float64(sx+sy) / float64(2*s)
					bend := math.Sin(progress*math.Pi+t) * shatterBend

					srcX := floorInt(float64(x+sx) + 0.5 + offX + bend)
					srcY := floorInt(float64(y+sy) + 0.5 + offY)
					if !c.contains(srcX, srcY) {
						continue
					}

					edge := max(math.Abs(float64(sx)-half), math.Abs(float64(sy)-half)) / half
					gain := 1 + edge*shatterEdgeGain
					shift := floorInt(edge*10) % 3

					di := ((y+sy)*width + x + sx) * 4
					si := (srcY*width + srcX) * 4
					for ch := range 3 {
						dst[di+ch] = saturate(float64(src[si+(shift+ch)%3]) * gain)
					}
				}
			}
		}
	}
}
