package bentpixel

import "math"

// Warp constants.
const (
	flowStrength    = 2.5
	flowWavelength  = 10.0
	vortexTwist     = 5.0
	rippleFrequency = 0.1
	rippleAmplitude = 10.0
	prismStrength   = 15.0
)

// warpPixelFlow pushes pixels radially along a sine of the distance.
func warpPixelFlow(dst, src []uint8, width int, c Cell, t float64) {
	for y := c.Box.Min.Y; y < c.Box.Max.Y; y++ {
		for x := c.Box.Min.X; x < c.Box.Max.X; x++ {
			d, theta := c.polar(x, y)
			flow := math.Sin(d/flowWavelength-t) * flowStrength
			sx := floorInt(float64(x) + 0.5 + math.Cos(theta)*flow)
			sy := floorInt(float64(y) + 0.5 + math.Sin(theta)*flow)
			copyRGB(dst, src, width, c, x, y, sx, sy)
		}
	}
}

// warpVortex twists the cell around its center, strongest at the center.
// The vortex is static in t.
func warpVortex(dst, src []uint8, width int, c Cell, _ float64) {
	maxR := math.Hypot(c.W, c.H) / 2
	if maxR == 0 {
		return
	}
	for y := c.Box.Min.Y; y < c.Box.Max.Y; y++ {
		for x := c.Box.Min.X; x < c.Box.Max.X; x++ {
			d, theta := c.polar(x, y)
			twist := (maxR - d) / maxR * vortexTwist
			a := theta + twist
			sx := floorInt(c.CX + math.Cos(a)*d)
			sy := floorInt(c.CY + math.Sin(a)*d)
			copyRGB(dst, src, width, c, x, y, sx, sy)
		}
	}
}

// warpRipple displaces pixels radially by concentric waves travelling with t.
func warpRipple(dst, src []uint8, width int, c Cell, t float64) {
	for y := c.Box.Min.Y; y < c.Box.Max.Y; y++ {
		for x := c.Box.Min.X; x < c.Box.Max.X; x++ {
			d, theta := c.polar(x, y)
			r := math.Sin(d*rippleFrequency-t) * rippleAmplitude
			sx := floorInt(float64(x) + 0.5 + math.Cos(theta)*r)
			sy := floorInt(float64(y) + 0.5 + math.Sin(theta)*r)
			copyRGB(dst, src, width, c, x, y, sx, sy)
		}
	}
}

// warpPrism samples R, G and B from three diagonal offsets whose size falls
// off with the distance from the center. A pixel whose three samples are not
// all inside the cell is left alone.
func warpPrism(dst, src []uint8, width int, c Cell, _ float64) {
	diag := math.Hypot(c.W, c.H)
	for y := c.Box.Min.Y; y < c.Box.Max.Y; y++ {
		for x := c.Box.Min.X; x < c.Box.Max.X; x++ {
			dist, angle := c.normalized(x, y)
			scale := prismStrength * (1 - dist/diag)
			or := scale * math.Cos(angle+math.Pi/3)
			og := scale * math.Cos(angle)
			ob := scale * math.Cos(angle-math.Pi/3)

			px, py := float64(x)+0.5, float64(y)+0.5
			rx, ry := floorInt(px+or), floorInt(py+or)
			gx, gy := floorInt(px+og), floorInt(py+og)
			bx, by := floorInt(px+ob), floorInt(py+ob)
			if !c.contains(rx, ry) || !c.contains(gx, gy) || !c.contains(bx, by) {
				continue
			}

			di := (y*width + x) * 4
			dst[di] = src[(ry*width+rx)*4]
			dst[di+1] = src[(gy*width+gx)*4+1]
			dst[di+2] = src[(by*width+bx)*4+2]
		}
	}
}
