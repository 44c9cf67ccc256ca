package bentpixel

import (
	"math/rand/v2"
	"testing"
)

// gradient returns a w x h opaque pixmap whose channels vary with position,
// so that any displacement changes some pixel.
func gradient(w, h int) *Pixmap {
	pm := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetRGBA(x, y, uint8(x*37+y*11), uint8(x*5+y*53), uint8(x*97^y*13), 255)
		}
	}
	return pm
}

// noise returns a w x h pixmap of seeded random bytes with opaque alpha.
func noise(w, h int, seed uint64) *Pixmap {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pm := NewPixmap(w, h)
	d := pm.Data()
	for i := range d {
		d[i] = uint8(rng.IntN(256))
		if i%4 == 3 {
			d[i] = 255
		}
	}
	return pm
}

// solid returns a w x h pixmap filled with one color.
func solid(w, h int, r, g, b, a uint8) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Fill(r, g, b, a)
	return pm
}

// seededRand returns a deterministic random source.
func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// assertOutsideUnchanged fails if any pixel outside box differs between a and b.
func assertOutsideUnchanged(t *testing.T, a, b *Pixmap, c Cell) {
	t.Helper()
	for y := range a.Height() {
		for x := range a.Width() {
			if c.contains(x, y) {
				continue
			}
			r1, g1, b1, a1 := a.RGBA(x, y)
			r2, g2, b2, a2 := b.RGBA(x, y)
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) outside cell %d changed: (%d,%d,%d,%d) -> (%d,%d,%d,%d)",
					x, y, c.Index, r1, g1, b1, a1, r2, g2, b2, a2)
			}
		}
	}
}

// brightnessAt returns R+G+B of pixel (x, y).
func brightnessAt(pm *Pixmap, x, y int) int {
	r, g, b, _ := pm.RGBA(x, y)
	return int(r) + int(g) + int(b)
}
