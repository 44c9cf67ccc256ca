// Package overlay draws the 3x3 effect grid over a rendered image: cell
// borders plus a label with the cell index and the active warps.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bentpixel"
)

// Colors used by Draw.
var (
	LineColor  = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	LabelColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ShadeColor = color.RGBA{A: 140}
)

// kindCodes are the label abbreviations, indexed by GridKind.
var kindCodes = [...]string{"PF", "VX", "SH", "RP", "NE", "PR"}

// Code returns the two-letter label abbreviation for kind.
func Code(kind bentpixel.GridKind) string {
	if !kind.Valid() {
		return "??"
	}
	return kindCodes[kind]
}

// Label returns the text drawn in cell i: its index followed by the codes of
// every kind active there, e.g. "4 RP,NE".
func Label(toggles bentpixel.GridToggles, i int) string {
	var codes []string
	for _, k := range bentpixel.GridKinds() {
		if toggles.Active(k, i) {
			codes = append(codes, Code(k))
		}
	}
	if len(codes) == 0 {
		return strconv.Itoa(i)
	}
	return strconv.Itoa(i) + " " + strings.Join(codes, ",")
}

// Draw paints the grid and cell labels onto img.
func Draw(img *image.RGBA, toggles bentpixel.GridToggles) {
	b := img.Bounds()
	face := basicfont.Face7x13
	lineSrc := image.NewUniform(LineColor)
	shadeSrc := image.NewUniform(ShadeColor)

	for _, c := range bentpixel.Cells(b.Dx(), b.Dy()) {
		box := c.Box.Add(b.Min)
		if box.Empty() {
			continue
		}
		// Right and bottom borders; the outer frame comes from the neighbors.
		if box.Max.X < b.Max.X {
			draw.Draw(img, image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y), lineSrc, image.Point{}, draw.Over)
		}
		if box.Max.Y < b.Max.Y {
			draw.Draw(img, image.Rect(box.Min.X, box.Max.Y-1, box.Max.X, box.Max.Y), lineSrc, image.Point{}, draw.Over)
		}

		label := Label(toggles, c.Index)
		d := &font.Drawer{Dst: img, Src: image.NewUniform(LabelColor), Face: face}
		w := d.MeasureString(label).Ceil()
		h := face.Metrics().Height.Ceil()
		bg := image.Rect(box.Min.X+2, box.Min.Y+2, box.Min.X+4+w, box.Min.Y+4+h).Intersect(box)
		draw.Draw(img, bg, shadeSrc, image.Point{}, draw.Over)

		d.Dot = fixed.P(box.Min.X+3, box.Min.Y+3+face.Metrics().Ascent.Ceil())
		d.DrawString(label)
	}
}
