package bentpixel

import "testing"

func TestRenderIdentity(t *testing.T) {
	src := noise(31, 17, 1)
	out := Render(src, State{}, 12.5)
	if out == src {
		t.Fatal("Render returned the source pixmap")
	}
	if !out.Equal(src) {
		t.Error("identity state changed the buffer")
	}
}

func TestRenderDoesNotMutateSource(t *testing.T) {
	src := noise(30, 30, 2)
	orig := src.Clone()

	var st State
	st.Params = Params{BitShift: 3, DataOffset: 5, PixelSort: 90}
	st.Grid.Set(KindRipple, 4, true)
	out := Render(src, st, 1)

	if !src.Equal(orig) {
		t.Error("Render mutated its source")
	}
	if out.Equal(orig) {
		t.Error("Render with active state returned an unchanged buffer")
	}
}

func TestRenderIsChainThenGrid(t *testing.T) {
	src := noise(36, 36, 3)
	var st State
	st.Params = Params{BitShift: 2, RGBSplit: 3, SeedGrowth: 40, PixelSort: 160}
	st.Grid.Set(KindPixelFlow, 0, true)
	st.Grid.Set(KindNeon, 4, true)

	want := src.Clone()
	ApplyChain(want, st.Params)
	Composite(want, st.Grid, 0.25)

	if got := Render(src, st, 0.25); !got.Equal(want) {
		t.Error("Render differs from ApplyChain followed by Composite")
	}
}

func TestRenderClampsParams(t *testing.T) {
	src := noise(20, 20, 4)
	over := State{Params: Params{BitShift: 1000, RGBSplit: -5, PixelSort: 999}}
	clamped := State{Params: Params{BitShift: 100, PixelSort: 255}}
	if !Render(src, over, 0).Equal(Render(src, clamped, 0)) {
		t.Error("out-of-range params were not clamped")
	}
}

func TestRenderDeterministicInTime(t *testing.T) {
	src := noise(45, 45, 5)
	var st State
	for _, k := range GridKinds() {
		st.Grid.Set(k, 4, true)
	}
	a := Render(src, st, 3.25)
	b := Render(src, st, 3.25)
	if !a.Equal(b) {
		t.Error("same time produced different frames")
	}
}
