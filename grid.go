package bentpixel

import (
	"image"
	"math"
	"slices"
)

// Cell is one region of the 3x3 grid.
//
// Warps measure distances and angles from the float center in pixel-center
// coordinates (pixel x sits at x+0.5). Reads and writes are confined to Box.
type Cell struct {
	Index int

	// X, Y is the float origin; W, H the float size.
	X, Y, W, H float64

	// CX, CY is the float center.
	CX, CY float64

	// Box is the integer region [floor(X), floor(X+W)) x [floor(Y), floor(Y+H)).
	// The nine boxes tile the buffer.
	Box image.Rectangle
}

// CellAt returns cell i (0..8, row-major) of a width x height buffer.
// Out-of-range indices return a cell with an empty box.
func CellAt(width, height, i int) Cell {
	if i < 0 || i >= CellCount || width <= 0 || height <= 0 {
		return Cell{Index: i}
	}
	col, row := i%GridSize, i/GridSize
	cw := float64(width) / GridSize
	ch := float64(height) / GridSize
	x0 := float64(col) * cw
	y0 := float64(row) * ch
	return Cell{
		Index: i,
		X:     x0,
		Y:     y0,
		W:     cw,
		H:     ch,
		CX:    x0 + cw/2,
		CY:    y0 + ch/2,
		// Integer division is the exact floor and keeps adjacent boxes
		// sharing an edge regardless of float rounding.
		Box: image.Rect(col*width/GridSize, row*height/GridSize,
			(col+1)*width/GridSize, (row+1)*height/GridSize),
	}
}

// Cells returns the nine cells of a width x height buffer in index order.
func Cells(width, height int) []Cell {
	cells := make([]Cell, CellCount)
	for i := range cells {
		cells[i] = CellAt(width, height, i)
	}
	return cells
}

// contains reports whether the integer point lies inside the cell box.
func (c Cell) contains(x, y int) bool {
	return x >= c.Box.Min.X && x < c.Box.Max.X && y >= c.Box.Min.Y && y < c.Box.Max.Y
}

// Step is one grid warp invocation.
type Step struct {
	Kind GridKind
	Cell int
}

// Plan lists the warp invocations for toggles: kinds in composition order,
// cells ascending within each kind.
func Plan(toggles GridToggles) []Step {
	var steps []Step
	for _, kind := range GridKinds() {
		for _, cell := range toggles.Cells(kind) {
			steps = append(steps, Step{Kind: kind, Cell: cell})
		}
	}
	return steps
}

// Composite folds Plan(toggles) over pm. Each step sees the buffer as left by
// every earlier step.
func Composite(pm *Pixmap, toggles GridToggles, t float64) {
	for _, s := range Plan(toggles) {
		ApplyWarp(pm, s.Kind, s.Cell, t)
	}
}

// warpFunc writes the warped cell into dst, reading only from src.
type warpFunc func(dst, src []uint8, width int, c Cell, t float64)

var warps = [kindCount]warpFunc{
	KindPixelFlow: warpPixelFlow,
	KindVortex:    warpVortex,
	KindShatter:   warpShatter,
	KindRipple:    warpRipple,
	KindNeon:      warpNeon,
	KindPrism:     warpPrism,
}

// ApplyWarp applies one warp to one cell of pm at time t. The warp reads a
// snapshot of pm taken on entry. Invalid kinds or cells leave pm unchanged.
func ApplyWarp(pm *Pixmap, kind GridKind, cell int, t float64) {
	if !kind.Valid() || cell < 0 || cell >= CellCount {
		return
	}
	c := CellAt(pm.width, pm.height, cell)
	if c.Box.Empty() || len(pm.data) != pm.width*pm.height*4 {
		return
	}
	src := slices.Clone(pm.data)
	warps[kind](pm.data, src, pm.width, c, t)
}

// polar returns the distance and angle of pixel (x, y) from the cell center.
func (c Cell) polar(x, y int) (d, theta float64) {
	dx := float64(x) + 0.5 - c.CX
	dy := float64(y) + 0.5 - c.CY
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

// normalized returns the offset of pixel (x, y) from the cell center
// divided by the cell size, with its length and angle.
func (c Cell) normalized(x, y int) (dist, angle float64) {
	dx := (float64(x) + 0.5 - c.CX) / c.W
	dy := (float64(y) + 0.5 - c.CY) / c.H
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

// floorInt floors v to an int.
func floorInt(v float64) int {
	return int(math.Floor(v))
}

// copyRGB copies R, G and B of pixel (sx, sy) of src into pixel (x, y) of dst
// when the source lies inside the cell.
func copyRGB(dst, src []uint8, width int, c Cell, x, y, sx, sy int) {
	if !c.contains(sx, sy) {
		return
	}
	di := (y*width + x) * 4
	si := (sy*width + sx) * 4
	dst[di] = src[si]
	dst[di+1] = src[si+1]
	dst[di+2] = src[si+2]
}
