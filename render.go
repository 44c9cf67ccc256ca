package bentpixel

import "time"

// Render returns a transformed copy of src: the chain under st.Params, then
// the grid warps under st.Grid at time t (seconds). src is not modified.
func Render(src *Pixmap, st State, t float64) *Pixmap {
	out := src.Clone()
	RenderInto(out, st, t)
	return out
}

// RenderInto transforms pm in place. An identity state leaves pm untouched.
func RenderInto(pm *Pixmap, st State, t float64) {
	if st.IsIdentity() {
		return
	}
	start := time.Now()
	p := st.Params.Clamp()
	ApplyChain(pm, p)
	Composite(pm, st.Grid, t)
	Logger().Debug("bentpixel: render",
		"width", pm.width,
		"height", pm.height,
		"steps", len(Plan(st.Grid)),
		"t", t,
		"elapsed", time.Since(start))
}
