package bentpixel

import (
	"bytes"
	"testing"
)

func TestShiftBits(t *testing.T) {
	tests := []struct {
		name string
		k    int
		in   []uint8
		want []uint8
	}{
		{"saturate", 1, []uint8{250, 250, 250, 7}, []uint8{255, 255, 255, 7}},
		{"small", 1, []uint8{1, 1, 1, 9}, []uint8{2, 8, 32, 9}},
		{"wraps mod 8", 8, []uint8{1, 1, 1, 0}, []uint8{1, 4, 16, 0}},
		{"green and blue wrap", 6, []uint8{1, 1, 1, 0}, []uint8{64, 1, 4, 0}},
		{"zero is identity", 0, []uint8{250, 3, 200, 1}, []uint8{250, 3, 200, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bytes.Clone(tt.in)
			ShiftBits(got, tt.k)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ShiftBits(%v, %d) = %v, want %v", tt.in, tt.k, got, tt.want)
			}
		})
	}
}

func TestOffsetData(t *testing.T) {
	orig := make([]uint8, 16)
	for i := range orig {
		orig[i] = uint8(i)
	}

	got := bytes.Clone(orig)
	OffsetData(got, 4)
	for i := range 12 {
		if got[i] != orig[i+4] {
			t.Errorf("byte[%d] = %d, want %d", i, got[i], orig[i+4])
		}
	}
	for i := 12; i < 16; i++ {
		if got[i] != orig[i-12] {
			t.Errorf("byte[%d] = %d, want %d", i, got[i], orig[i-12])
		}
	}

	for _, n := range []int{0, 16, 32, 160} {
		got := bytes.Clone(orig)
		OffsetData(got, n)
		if !bytes.Equal(got, orig) {
			t.Errorf("OffsetData(%d) = %v, want identity", n, got)
		}
	}

	a, b := bytes.Clone(orig), bytes.Clone(orig)
	OffsetData(a, 20)
	OffsetData(b, 4)
	if !bytes.Equal(a, b) {
		t.Errorf("OffsetData(20) = %v, want OffsetData(4) = %v", a, b)
	}

	OffsetData(nil, 5)
}

func TestSplitRGB(t *testing.T) {
	// 2x3 buffer holding bytes 0..23.
	data := make([]uint8, 24)
	for i := range data {
		data[i] = uint8(i)
	}

	t.Run("zero", func(t *testing.T) {
		got := bytes.Clone(data)
		SplitRGB(got, data, 2, 0)
		if !bytes.Equal(got, data) {
			t.Errorf("SplitRGB(0) = %v, want identity", got)
		}
	})

	t.Run("one row", func(t *testing.T) {
		got := bytes.Clone(data)
		SplitRGB(got, data, 2, 1)
		checks := []struct {
			i    int
			want [4]uint8
		}{
			{0, [4]uint8{0, 1, 8, 3}},
			{8, [4]uint8{0, 9, 16, 11}},
			{20, [4]uint8{12, 21, 23, 23}},
		}
		for _, c := range checks {
			var px [4]uint8
			copy(px[:], got[c.i:c.i+4])
			if px != c.want {
				t.Errorf("pixel at %d = %v, want %v", c.i, px, c.want)
			}
		}
	})
}

func TestScanlines(t *testing.T) {
	pm := solid(2, 6, 100, 100, 100, 200)
	snap := bytes.Clone(pm.Data())
	Scanlines(pm.Data(), snap, 2, 6)

	for y := range 6 {
		want := uint8(100)
		if y%4 >= 2 {
			want = 70
		}
		r, g, b, a := pm.RGBA(1, y)
		if r != want || g != want || b != want || a != 200 {
			t.Errorf("row %d = (%d,%d,%d,%d), want (%d,%d,%d,200)", y, r, g, b, a, want, want, want)
		}
	}
}

func TestPathSort(t *testing.T) {
	t.Run("stable", func(t *testing.T) {
		pm := NewPixmap(4, 1)
		pm.SetRGBA(0, 0, 30, 0, 0, 1)
		pm.SetRGBA(1, 0, 0, 30, 0, 2)
		pm.SetRGBA(2, 0, 0, 0, 10, 3)
		pm.SetRGBA(3, 0, 0, 0, 0, 4)
		PathSort(pm.Data(), 4, 1)

		want := [][4]uint8{{0, 0, 0, 4}, {0, 0, 10, 3}, {30, 0, 0, 1}, {0, 30, 0, 2}}
		for x, w := range want {
			r, g, b, a := pm.RGBA(x, 0)
			if got := [4]uint8{r, g, b, a}; got != w {
				t.Errorf("pixel %d = %v, want %v", x, got, w)
			}
		}
	})

	t.Run("blocks", func(t *testing.T) {
		pm := NewPixmap(40, 1)
		for x := range 40 {
			v := uint8(40 - x)
			pm.SetRGBA(x, 0, v, v, v, 255)
		}
		PathSort(pm.Data(), 40, 1)

		checks := []struct{ x, want int }{{0, 9}, {31, 40}, {32, 1}, {39, 8}}
		for _, c := range checks {
			if r, _, _, _ := pm.RGBA(c.x, 0); int(r) != c.want {
				t.Errorf("pixel %d = %d, want %d", c.x, r, c.want)
			}
		}
	})
}

func TestSeedGrowth(t *testing.T) {
	pm := solid(9, 9, 0, 0, 0, 255)
	pm.SetRGBA(4, 4, 255, 255, 255, 255)
	snap := bytes.Clone(pm.Data())
	SeedGrowth(pm.Data(), snap, 9, 9, 10)

	tests := []struct {
		x, y int
		want uint8
	}{
		{4, 4, 255},
		{5, 4, 128},
		{4, 3, 128},
		{5, 5, 75},
		{6, 4, 0},
		{7, 4, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if r, _, _, a := pm.RGBA(tt.x, tt.y); r != tt.want || a != 255 {
			t.Errorf("pixel (%d,%d) = R %d A %d, want R %d A 255", tt.x, tt.y, r, a, tt.want)
		}
	}
}

func TestSeedGrowthLattice(t *testing.T) {
	pm := solid(9, 9, 0, 0, 0, 255)
	pm.SetRGBA(5, 5, 255, 255, 255, 255)
	orig := pm.Clone()
	SeedGrowth(pm.Data(), bytes.Clone(pm.Data()), 9, 9, 50)
	if !pm.Equal(orig) {
		t.Error("bright pixel off the 4-pixel lattice acted as a seed")
	}
}

func TestPixelSort(t *testing.T) {
	vals := []uint8{90, 50, 200, 80, 10, 99}
	pm := NewPixmap(len(vals), 1)
	for x, v := range vals {
		pm.SetRGBA(x, 0, v, v, v, 255)
	}
	PixelSort(pm.Data(), len(vals), 1, 100)

	want := []uint8{50, 90, 200, 10, 80, 99}
	for x, w := range want {
		if r, _, _, _ := pm.RGBA(x, 0); r != w {
			t.Errorf("pixel %d = %d, want %d", x, r, w)
		}
	}
}

func TestPixelSortRunsNonDecreasing(t *testing.T) {
	for _, threshold := range []int{1, 40, 128, 200, 255} {
		pm := noise(64, 8, uint64(threshold))
		PixelSort(pm.Data(), 64, 8, threshold)

		limit := threshold * 3
		for y := range 8 {
			prev := -1
			for x := range 64 {
				b := brightnessAt(pm, x, y)
				if b >= limit {
					prev = -1
					continue
				}
				if b < prev {
					t.Fatalf("threshold %d row %d: brightness %d at x=%d after %d", threshold, y, b, x, prev)
				}
				prev = b
			}
		}
	}
}

func TestApplyChainIdentity(t *testing.T) {
	pm := noise(17, 13, 1)
	orig := pm.Clone()
	ApplyChain(pm, Params{})
	if !pm.Equal(orig) {
		t.Error("ApplyChain with zero params changed the buffer")
	}
}

func TestApplyChainPreservesLength(t *testing.T) {
	full := Params{BitShift: 100, DataOffset: 100, RGBSplit: 50, Scanlines: 100, PathSort: 100, SeedGrowth: 100, PixelSort: 255}
	sizes := []struct{ w, h int }{{37, 23}, {1, 1}, {0, 0}, {3, 0}, {64, 2}}
	for _, s := range sizes {
		pm := noise(s.w, s.h, 7)
		ApplyChain(pm, full)
		if len(pm.Data()) != s.w*s.h*4 {
			t.Errorf("%dx%d: len = %d, want %d", s.w, s.h, len(pm.Data()), s.w*s.h*4)
		}
	}
}

func TestApplyChainSplitReadsSnapshot(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.SetRGBA(0, 0, 10, 20, 30, 255)
	ApplyChain(pm, Params{BitShift: 1, RGBSplit: 1})

	// The split rewrites R, G and B from the pre-chain snapshot, discarding
	// the shift. B reads one row below, clamped to the last byte (alpha).
	r, g, b, a := pm.RGBA(0, 0)
	if r != 10 || g != 20 || b != 255 || a != 255 {
		t.Errorf("pixel = (%d,%d,%d,%d), want (10,20,255,255)", r, g, b, a)
	}
}
