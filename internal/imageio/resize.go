package imageio

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/bentpixel"
)

// FitSize returns the largest size with the aspect ratio of w x h that fits
// in maxW x maxH, never larger than w x h. A non-positive bound is ignored.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return max(w, 0), max(h, 0)
	}
	scale := 1.0
	if maxW > 0 {
		scale = min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = min(scale, float64(maxH)/float64(h))
	}
	if scale >= 1 {
		return w, h
	}
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// Fit downscales pm to fit in maxW x maxH preserving its aspect ratio.
// Pixmaps that already fit are returned unchanged.
func Fit(pm *bentpixel.Pixmap, maxW, maxH int) *bentpixel.Pixmap {
	w, h := FitSize(pm.Width(), pm.Height(), maxW, maxH)
	if w == pm.Width() && h == pm.Height() {
		return pm
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), pm.ToNRGBA(), pm.Bounds(), xdraw.Src, nil)
	return bentpixel.FromImage(dst)
}
