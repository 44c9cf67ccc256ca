package bentpixel

import (
	"errors"
	"slices"
	"testing"
)

func TestParamsSetGet(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"bitShift", 7, 7},
		{"bitShift", 500, 100},
		{"rgbSplit", 51, 50},
		{"pixelSort", 255, 255},
		{"pixelSort", -3, 0},
		{"seedGrowth", 100, 100},
	}
	for _, tt := range tests {
		var p Params
		if err := p.Set(tt.name, tt.in); err != nil {
			t.Fatalf("Set(%q) error = %v", tt.name, err)
		}
		got, err := p.Get(tt.name)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Set(%q, %d); Get = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}

	var p Params
	if err := p.Set("brightness", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("Set(brightness) error = %v, want ErrUnknownParam", err)
	}
	if _, err := p.Get(""); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("Get(\"\") error = %v, want ErrUnknownParam", err)
	}
}

func TestParamNames(t *testing.T) {
	want := []string{"bitShift", "dataOffset", "rgbSplit", "scanlines", "pathSort", "seedGrowth", "pixelSort"}
	if got := ParamNames(); !slices.Equal(got, want) {
		t.Errorf("ParamNames() = %v, want %v", got, want)
	}
	if m, ok := ParamMax("rgbSplit"); !ok || m != 50 {
		t.Errorf("ParamMax(rgbSplit) = %d, %v, want 50, true", m, ok)
	}
	if _, ok := ParamMax("nope"); ok {
		t.Error("ParamMax(nope) ok = true")
	}
}

func TestRandomizeParams(t *testing.T) {
	rng := seededRand(1)
	for range 200 {
		p := Randomize(rng)
		for _, name := range ParamNames() {
			v, _ := p.Get(name)
			m, _ := ParamMax(name)
			if v < 0 || v >= m {
				t.Fatalf("%s = %d, want in [0, %d)", name, v, m)
			}
		}
	}
}

func TestParseGridKind(t *testing.T) {
	for _, k := range GridKinds() {
		got, err := ParseGridKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseGridKind(%q) = %v, %v, want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseGridKind("swirl"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseGridKind(swirl) error = %v, want ErrUnknownKind", err)
	}
	if s := GridKind(42).String(); s != "GridKind(42)" {
		t.Errorf("String() = %q, want GridKind(42)", s)
	}
}

func TestGridToggles(t *testing.T) {
	var g GridToggles
	if g.Any() {
		t.Fatal("zero GridToggles reports active cells")
	}
	if !g.Toggle(KindNeon, 3) {
		t.Error("Toggle() = false, want true")
	}
	g.Set(KindNeon, 7, true)
	g.Set(KindPrism, 3, true)
	g.Set(KindPrism, 12, true)
	g.Set(GridKind(-1), 0, true)

	if got := g.Cells(KindNeon); !slices.Equal(got, []int{3, 7}) {
		t.Errorf("Cells(neon) = %v, want [3 7]", got)
	}
	if !g.Active(KindPrism, 3) || g.Active(KindPrism, 12) {
		t.Error("Active(prism) mismatch")
	}
	if g.Toggle(KindNeon, 3) {
		t.Error("second Toggle() = true, want false")
	}

	g.Clear(KindNeon)
	if len(g.Cells(KindNeon)) != 0 || !g.Active(KindPrism, 3) {
		t.Error("Clear(neon) touched the wrong kind")
	}
	g.ClearAll()
	if g.Any() {
		t.Error("ClearAll() left active cells")
	}
}

func TestGridTogglesRandomize(t *testing.T) {
	rng := seededRand(2)
	var g GridToggles
	active := 0
	for range 200 {
		g.Randomize(KindVortex, rng)
		active += len(g.Cells(KindVortex))
	}
	// 1800 draws at probability 0.3.
	if active < 360 || active > 720 {
		t.Errorf("active cells = %d of 1800, want about 540", active)
	}
	if len(g.Cells(KindRipple)) != 0 {
		t.Error("Randomize(vortex) touched ripple")
	}
}

func TestStateIdentity(t *testing.T) {
	var s State
	if !s.IsIdentity() {
		t.Error("zero State is not identity")
	}
	s.Grid.Set(KindShatter, 0, true)
	if s.IsIdentity() {
		t.Error("State with an active cell is identity")
	}
	s.Reset()
	s.Params.Scanlines = 1
	if s.IsIdentity() {
		t.Error("State with scanlines is identity")
	}
	s.Reset()
	if !s.IsIdentity() {
		t.Error("Reset() did not restore identity")
	}
}

func TestParseGridSpec(t *testing.T) {
	tests := []struct {
		spec    string
		kind    GridKind
		want    []int
		wantErr error
	}{
		{"ripple=0,4,8", KindRipple, []int{0, 4, 8}, nil},
		{"Neon= 2 , 3", KindNeon, []int{2, 3}, nil},
		{"prism=", KindPrism, nil, nil},
		{"swirl=1", 0, nil, ErrUnknownKind},
		{"vortex=9", KindVortex, nil, ErrInvalidCell},
		{"vortex=1,x", KindVortex, nil, ErrInvalidCell},
	}
	for _, tt := range tests {
		var g GridToggles
		err := g.ParseGridSpec(tt.spec)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseGridSpec(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			}
			if g.Any() {
				t.Errorf("ParseGridSpec(%q) changed toggles on error", tt.spec)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseGridSpec(%q) error = %v", tt.spec, err)
		}
		if got := g.Cells(tt.kind); !slices.Equal(got, tt.want) {
			t.Errorf("ParseGridSpec(%q) cells = %v, want %v", tt.spec, got, tt.want)
		}
	}

	var g GridToggles
	if err := g.ParseGridSpec("ripple"); err == nil {
		t.Error("ParseGridSpec without '=' succeeded")
	}
}

func TestReadOnlyMethodsOnValues(t *testing.T) {
	stateOf := func(kind GridKind, cell int) State {
		var st State
		st.Grid.Set(kind, cell, true)
		return st
	}

	if stateOf(KindNeon, 4).IsIdentity() {
		t.Error("IsIdentity() = true with an active cell")
	}
	if !stateOf(KindNeon, 4).Grid.Any() {
		t.Error("Any() = false with an active cell")
	}
	if got := stateOf(KindRipple, 7).Grid.Cells(KindRipple); !slices.Equal(got, []int{7}) {
		t.Errorf("Cells() = %v, want [7]", got)
	}
	if !stateOf(KindPrism, 2).Grid.Active(KindPrism, 2) {
		t.Error("Active() = false for the set cell")
	}
	if !(State{}).IsIdentity() {
		t.Error("zero State is not the identity")
	}
}
