package bentpixel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownPreset is returned when a preset name is not recognized.
var ErrUnknownPreset = errors.New("bentpixel: unknown preset")

// Preset is a named slider configuration. Presets do not touch the grid.
type Preset struct {
	Name   string `json:"name" yaml:"name"`
	Params Params `json:"params" yaml:"params"`
}

var titleCaser = cases.Title(language.English)

// Title returns the display name: "analog_corrupt" becomes "Analog Corrupt".
func (p Preset) Title() string {
	return titleCaser.String(strings.ReplaceAll(p.Name, "_", " "))
}

// builtinPresets are the factory presets.
var builtinPresets = map[string]Params{
	"glitch":         {BitShift: 50, DataOffset: 30, RGBSplit: 20, PixelSort: 128},
	"wave":           {DataOffset: 70, RGBSplit: 30, PixelSort: 200},
	"dissolve":       {BitShift: 20, DataOffset: 50, RGBSplit: 10, PixelSort: 50},
	"chaos":          {BitShift: 80, DataOffset: 90, RGBSplit: 40, PixelSort: 255},
	"analog_corrupt": {BitShift: 15, DataOffset: 65, RGBSplit: 25, Scanlines: 70, PixelSort: 150},
	"organic":        {BitShift: 10, DataOffset: 20, RGBSplit: 15, Scanlines: 30, PathSort: 75, SeedGrowth: 60, PixelSort: 100},
	"audacity_pitch": {BitShift: 30, DataOffset: 80, RGBSplit: 40, PixelSort: 200},
	"bass_boost":     {BitShift: 60, DataOffset: 40, RGBSplit: 15, Scanlines: 40, PathSort: 90, PixelSort: 180},
	"echo_bend":      {BitShift: 25, DataOffset: 100, RGBSplit: 35, Scanlines: 20, PathSort: 40, SeedGrowth: 30, PixelSort: 160},
	"equalizer":      {BitShift: 45, DataOffset: 55, RGBSplit: 25, Scanlines: 60, PathSort: 60, SeedGrowth: 40, PixelSort: 140},
	"phaser_corrupt": {BitShift: 35, DataOffset: 75, RGBSplit: 45, Scanlines: 50, PathSort: 80, SeedGrowth: 20, PixelSort: 220},
	"hex_edit":       {BitShift: 70, DataOffset: 95, RGBSplit: 50, Scanlines: 10, PathSort: 100, SeedGrowth: 50, PixelSort: 255},
}

// Presets returns the built-in presets sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(builtinPresets))
	for name, p := range builtinPresets {
		out = append(out, Preset{Name: name, Params: p})
	}
	slices.SortFunc(out, func(a, b Preset) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// LookupPreset returns the built-in preset with the given name.
func LookupPreset(name string) (Preset, error) {
	p, ok := builtinPresets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return Preset{Name: name, Params: p}, nil
}

// IsBuiltinPreset reports whether name is a built-in preset.
func IsBuiltinPreset(name string) bool {
	_, ok := builtinPresets[name]
	return ok
}
