package bentpixel

import (
	"math"
	"slices"
)

// Chain constants.
const (
	// offsetUnit is the number of bytes rotated per DataOffset step.
	offsetUnit = 100

	// pathBlock is the side of a PathSort block in pixels.
	pathBlock = 32

	// seedStride is the sampling step of SeedGrowth in both axes.
	seedStride = 4

	// seedThreshold is the brightness a sample must exceed to become a seed.
	seedThreshold = 200
)

// ApplyChain runs the seven chain operators over pm in fixed order.
//
// A snapshot of the bytes is taken once before the first operator. RGB split,
// scanlines and the seed colors of seed growth read the snapshot; every other
// read sees the live, already-mutated buffer. Operators with a zero intensity
// are skipped.
func ApplyChain(pm *Pixmap, p Params) {
	if p.IsZero() || len(pm.data) == 0 {
		return
	}
	data := pm.data
	snap := slices.Clone(data)
	w, h := pm.width, pm.height

	if p.BitShift > 0 {
		ShiftBits(data, p.BitShift)
	}
	if p.DataOffset > 0 {
		OffsetData(data, p.DataOffset*offsetUnit)
	}
	if p.RGBSplit > 0 {
		SplitRGB(data, snap, w, p.RGBSplit)
	}
	if p.Scanlines > 0 {
		Scanlines(data, snap, w, h)
	}
	if p.PathSort > 0 {
		PathSort(data, w, h)
	}
	if p.SeedGrowth > 0 {
		SeedGrowth(data, snap, w, h, p.SeedGrowth)
	}
	if p.PixelSort > 0 {
		PixelSort(data, w, h, p.PixelSort)
	}
}

// ShiftBits shifts R, G and B left by k, k+2 and k+4 (each mod 8) with
// saturation at 255. Alpha is untouched.
func ShiftBits(data []uint8, k int) {
	if k <= 0 {
		return
	}
	sr := uint(k % 8)
	sg := uint((k + 2) % 8)
	sb := uint((k + 4) % 8)
	for i := 0; i+3 < len(data); i += 4 {
		data[i] = saturateInt(int(data[i]) << sr)
		data[i+1] = saturateInt(int(data[i+1]) << sg)
		data[i+2] = saturateInt(int(data[i+2]) << sb)
	}
}

// OffsetData rotates the byte sequence left by n bytes, cyclically.
func OffsetData(data []uint8, n int) {
	if len(data) == 0 {
		return
	}
	n %= len(data)
	if n <= 0 {
		return
	}
	slices.Reverse(data[:n])
	slices.Reverse(data[n:])
	slices.Reverse(data)
}

// SplitRGB displaces the red and blue channels vertically by amount rows,
// reading from snap. For the pixel whose red byte sits at i, with
// v = amount*width*4: R = snap[max(0, i-v)], G = snap[i+1],
// B = snap[min(len-1, i+v)]. Alpha is untouched.
func SplitRGB(data, snap []uint8, width, amount int) {
	if amount <= 0 || len(snap) != len(data) {
		return
	}
	v := amount * width * 4
	last := len(data) - 1
	for i := 0; i+3 < len(data); i += 4 {
		data[i] = snap[max(0, i-v)]
		data[i+1] = snap[i+1]
		data[i+2] = snap[min(last, i+v)]
	}
}

// Scanlines rewrites R, G and B from snap, darkening two of every four rows
// to 70%. Alpha is untouched.
func Scanlines(data, snap []uint8, width, height int) {
	if len(snap) != len(data) || len(data) < width*height*4 {
		return
	}
	for y := range height {
		mod := 1.0
		if y%4 >= 2 {
			mod = 0.7
		}
		row := y * width * 4
		for x := range width {
			i := row + x*4
			for c := range 3 {
				data[i+c] = saturate(float64(snap[i+c]) * mod)
			}
		}
	}
}

// brightnessSum returns R+G+B of the pixel at byte offset i.
// Comparing sums orders pixels exactly as comparing (R+G+B)/3.
func brightnessSum(data []uint8, i int) int {
	return int(data[i]) + int(data[i+1]) + int(data[i+2])
}

// sortSpan stable-sorts the pixels [x0, x1) of the row starting at byte offset
// row by ascending brightness and rewrites all four channels in sorted order.
// scratch must hold at least (x1-x0)*4 bytes; keys at least x1-x0 entries.
func sortSpan(data []uint8, row, x0, x1 int, order []int, keys []int, scratch []uint8) {
	n := x1 - x0
	if n < 2 {
		return
	}
	order = order[:n]
	keys = keys[:n]
	for j := range n {
		order[j] = j
		keys[j] = brightnessSum(data, row+(x0+j)*4)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return keys[a] - keys[b]
	})
	buf := scratch[:n*4]
	for j, src := range order {
		copy(buf[j*4:j*4+4], data[row+(x0+src)*4:])
	}
	copy(data[row+x0*4:row+x1*4], buf)
}

// PathSort sorts each row segment of every 32x32 block by brightness of the
// live buffer. Edge blocks are clipped to the buffer.
func PathSort(data []uint8, width, height int) {
	if len(data) < width*height*4 {
		return
	}
	order := make([]int, pathBlock)
	keys := make([]int, pathBlock)
	scratch := make([]uint8, pathBlock*4)
	for by := 0; by < height; by += pathBlock {
		bh := min(pathBlock, height-by)
		for bx := 0; bx < width; bx += pathBlock {
			bw := min(pathBlock, width-bx)
			for y := by; y < by+bh; y++ {
				sortSpan(data, y*width*4, bx, bx+bw, order, keys, scratch)
			}
		}
	}
}

// seed is a SeedGrowth source pixel.
type seed struct {
	x, y int
}

// SeedGrowth finds bright seeds on a 4-pixel lattice of the live buffer and
// blends each seed's neighborhood toward the seed's snapshot color.
//
// Seeds are collected before any blending and processed in row-major order;
// where radii overlap the later seed blends over the earlier result.
func SeedGrowth(data, snap []uint8, width, height, level int) {
	if level <= 0 || len(snap) != len(data) || len(data) < width*height*4 {
		return
	}
	radius := level/10 + 1
	rf := float64(radius)

	var seeds []seed
	for y := 0; y < height; y += seedStride {
		row := y * width * 4
		for x := 0; x < width; x += seedStride {
			if brightnessSum(data, row+x*4) > seedThreshold*3 {
				seeds = append(seeds, seed{x, y})
			}
		}
	}

	for _, s := range seeds {
		si := (s.y*width + s.x) * 4
		for dy := -radius; dy <= radius; dy++ {
			y := s.y + dy
			if y < 0 || y >= height {
				continue
			}
			for dx := -radius; dx <= radius; dx++ {
				x := s.x + dx
				if x < 0 || x >= width {
					continue
				}
				d := math.Sqrt(float64(dx*dx + dy*dy))
				if d > rf {
					continue
				}
				inf := 1 - d/rf
				i := (y*width + x) * 4
				for c := range 3 {
					data[i+c] = saturate(float64(data[i+c])*(1-inf) + float64(snap[si+c])*inf)
				}
			}
		}
	}
}

// PixelSort splits every row into maximal runs of pixels darker than
// threshold, separated by pixels at or above it, and sorts each run by
// ascending brightness.
func PixelSort(data []uint8, width, height, threshold int) {
	if threshold <= 0 || len(data) < width*height*4 {
		return
	}
	limit := threshold * 3
	order := make([]int, width)
	keys := make([]int, width)
	scratch := make([]uint8, width*4)
	for y := range height {
		row := y * width * 4
		start := 0
		for x := 0; x <= width; x++ {
			if x < width && brightnessSum(data, row+x*4) < limit {
				continue
			}
			sortSpan(data, row, start, x, order, keys, scratch)
			start = x + 1
		}
	}
}
