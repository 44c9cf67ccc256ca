package bentpixel

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Parameter errors.
var (
	// ErrUnknownParam is returned when a slider name is not recognized.
	ErrUnknownParam = errors.New("bentpixel: unknown parameter")

	// ErrUnknownKind is returned when a grid effect name is not recognized.
	ErrUnknownKind = errors.New("bentpixel: unknown grid effect")

	// ErrInvalidCell is returned for a cell index outside 0..8.
	ErrInvalidCell = errors.New("bentpixel: invalid grid cell")
)

// Params holds the seven chain intensities, one per slider.
// Zero disables the corresponding operator.
type Params struct {
	BitShift   int `json:"bitShift" yaml:"bitShift"`
	DataOffset int `json:"dataOffset" yaml:"dataOffset"`
	RGBSplit   int `json:"rgbSplit" yaml:"rgbSplit"`
	Scanlines  int `json:"scanlines" yaml:"scanlines"`
	PathSort   int `json:"pathSort" yaml:"pathSort"`
	SeedGrowth int `json:"seedGrowth" yaml:"seedGrowth"`
	PixelSort  int `json:"pixelSort" yaml:"pixelSort"`
}

// paramSpec names a slider, its maximum and its field.
type paramSpec struct {
	name  string
	max   int
	field func(*Params) *int
}

// paramSpecs lists the sliders in chain order.
var paramSpecs = [...]paramSpec{
	{"bitShift", 100, func(p *Params) *int { return &p.BitShift }},
	{"dataOffset", 100, func(p *Params) *int { return &p.DataOffset }},
	{"rgbSplit", 50, func(p *Params) *int { return &p.RGBSplit }},
	{"scanlines", 100, func(p *Params) *int { return &p.Scanlines }},
	{"pathSort", 100, func(p *Params) *int { return &p.PathSort }},
	{"seedGrowth", 100, func(p *Params) *int { return &p.SeedGrowth }},
	{"pixelSort", 255, func(p *Params) *int { return &p.PixelSort }},
}

func lookupParam(name string) (paramSpec, bool) {
	for _, s := range paramSpecs {
		if s.name == name {
			return s, true
		}
	}
	return paramSpec{}, false
}

// ParamNames returns the slider names in chain order.
func ParamNames() []string {
	names := make([]string, len(paramSpecs))
	for i, s := range paramSpecs {
		names[i] = s.name
	}
	return names
}

// ParamMax returns the slider maximum for name, or 0 and false if unknown.
func ParamMax(name string) (int, bool) {
	s, ok := lookupParam(name)
	return s.max, ok
}

// Get returns the value of the named slider.
func (p Params) Get(name string) (int, error) {
	s, ok := lookupParam(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *s.field(&p), nil
}

// Set assigns the named slider, clamped to its domain.
func (p *Params) Set(name string, v int) error {
	s, ok := lookupParam(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*s.field(p) = min(max(v, 0), s.max)
	return nil
}

// Clamp returns a copy with every slider limited to [0, max].
func (p Params) Clamp() Params {
	for _, s := range paramSpecs {
		f := s.field(&p)
		*f = min(max(*f, 0), s.max)
	}
	return p
}

// IsZero reports whether every operator is disabled.
func (p Params) IsZero() bool {
	return p == Params{}
}

// Randomize returns parameters with every slider drawn as floor(rand*max).
func Randomize(rng *rand.Rand) Params {
	var p Params
	for _, s := range paramSpecs {
		*s.field(&p) = int(rng.Float64() * float64(s.max))
	}
	return p
}

// GridKind selects one of the six grid warps.
type GridKind int

// Grid kinds, in composition order.
const (
	KindPixelFlow GridKind = iota
	KindVortex
	KindShatter
	KindRipple
	KindNeon
	KindPrism

	kindCount
)

var kindNames = [kindCount]string{"pixelflow", "vortex", "shatter", "ripple", "neon", "prism"}

// String returns the lowercase effect name.
func (k GridKind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("GridKind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names one of the six warps.
func (k GridKind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseGridKind maps an effect name to its GridKind.
func ParseGridKind(name string) (GridKind, error) {
	for i, n := range kindNames {
		if n == name {
			return GridKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// GridKinds returns all kinds in composition order.
func GridKinds() []GridKind {
	kinds := make([]GridKind, kindCount)
	for i := range kinds {
		kinds[i] = GridKind(i)
	}
	return kinds
}

// Grid geometry.
const (
	// GridSize is the number of cells per axis.
	GridSize = 3

	// CellCount is the number of grid cells.
	CellCount = GridSize * GridSize
)

// GridToggles records, per kind, which cells are active.
// A cell may be active in several kinds at once. The zero value has no active cells.
type GridToggles struct {
	cells [kindCount][CellCount]bool
}

func validCell(kind GridKind, cell int) bool {
	return kind.Valid() && cell >= 0 && cell < CellCount
}

// Set activates or deactivates a cell for kind. Invalid arguments are ignored.
func (g *GridToggles) Set(kind GridKind, cell int, on bool) {
	if validCell(kind, cell) {
		g.cells[kind][cell] = on
	}
}

// Toggle flips a cell for kind and returns its new state.
func (g *GridToggles) Toggle(kind GridKind, cell int) bool {
	if !validCell(kind, cell) {
		return false
	}
	g.cells[kind][cell] = !g.cells[kind][cell]
	return g.cells[kind][cell]
}

// Active reports whether cell is active for kind.
func (g GridToggles) Active(kind GridKind, cell int) bool {
	return validCell(kind, cell) && g.cells[kind][cell]
}

// Cells returns the active cell indices for kind in ascending order.
func (g GridToggles) Cells(kind GridKind) []int {
	if !kind.Valid() {
		return nil
	}
	var out []int
	for i, on := range g.cells[kind] {
		if on {
			out = append(out, i)
		}
	}
	return out
}

// Clear deactivates every cell of kind.
func (g *GridToggles) Clear(kind GridKind) {
	if kind.Valid() {
		g.cells[kind] = [CellCount]bool{}
	}
}

// ClearAll deactivates every cell of every kind.
func (g *GridToggles) ClearAll() {
	g.cells = [kindCount][CellCount]bool{}
}

// Any reports whether at least one cell is active in any kind.
func (g GridToggles) Any() bool {
	for _, row := range g.cells {
		for _, on := range row {
			if on {
				return true
			}
		}
	}
	return false
}

// Randomize redraws the cells of kind, each active with probability 0.3.
func (g *GridToggles) Randomize(kind GridKind, rng *rand.Rand) {
	if !kind.Valid() {
		return
	}
	for i := range g.cells[kind] {
		g.cells[kind][i] = rng.Float64() > 0.7
	}
}

// SetCells activates the comma-separated cell indices in list for kind,
// e.g. "0,4,8". The toggles are left untouched on error.
func (g *GridToggles) SetCells(kind GridKind, list string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	var cells []int
	for f := range strings.SplitSeq(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i, err := strconv.Atoi(f)
		if err != nil || i < 0 || i >= CellCount {
			return fmt.Errorf("%w: %q", ErrInvalidCell, f)
		}
		cells = append(cells, i)
	}
	for _, i := range cells {
		g.cells[kind][i] = true
	}
	return nil
}

// ParseGridSpec applies a "kind=cells" spec such as "ripple=0,4,8".
func (g *GridToggles) ParseGridSpec(spec string) error {
	name, list, ok := strings.Cut(spec, "=")
	if !ok {
		return fmt.Errorf("bentpixel: grid spec %q: want kind=cells", spec)
	}
	kind, err := ParseGridKind(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}
	return g.SetCells(kind, list)
}

// State is the complete parameter state handed to Render.
type State struct {
	Params Params
	Grid   GridToggles
}

// Reset zeroes every slider and clears every grid cell.
func (s *State) Reset() {
	*s = State{}
}

// IsIdentity reports whether rendering with s leaves a buffer unchanged.
func (s State) IsIdentity() bool {
	return s.Params.IsZero() && !s.Grid.Any()
}
