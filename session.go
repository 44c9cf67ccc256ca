package bentpixel

import "math/rand/v2"

// Session owns a source image, the parameter state, the last rendered output
// and the audio derived from it.
//
// Audio is computed on first request and reused until the output changes.
// A Session is not safe for concurrent use.
type Session struct {
	src    *Pixmap
	state  State
	out    *Pixmap
	audio  *AudioBuffer
	rng    *rand.Rand
	clock  func() float64
	stale  bool
	lastT  float64
	framed bool
}

// NewSession creates a session over src with a reset state.
func NewSession(src *Pixmap, opts ...SessionOption) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{rng: o.rng, clock: o.clock}
	s.Load(src)
	return s
}

// Load replaces the source image and resets the state.
func (s *Session) Load(src *Pixmap) {
	if src == nil {
		src = NewPixmap(0, 0)
	}
	s.src = src
	s.state.Reset()
	s.out = src.Clone()
	s.audio = nil
	s.stale = false
	s.framed = false
}

// Source returns the source image.
func (s *Session) Source() *Pixmap {
	return s.src
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state
}

// SetState replaces the whole state.
func (s *Session) SetState(st State) {
	st.Params = st.Params.Clamp()
	s.state = st
	s.stale = true
}

// SetParam assigns one slider by name.
func (s *Session) SetParam(name string, v int) error {
	if err := s.state.Params.Set(name, v); err != nil {
		return err
	}
	s.stale = true
	return nil
}

// ApplyPreset replaces every slider with the preset's values.
// The grid is left as is.
func (s *Session) ApplyPreset(p Preset) {
	s.state.Params = p.Params.Clamp()
	s.stale = true
}

// Randomize draws every slider uniformly from [0, max).
func (s *Session) Randomize() {
	s.state.Params = Randomize(s.rng)
	s.stale = true
}

// Toggle flips one grid cell for kind and returns its new state.
func (s *Session) Toggle(kind GridKind, cell int) bool {
	on := s.state.Grid.Toggle(kind, cell)
	s.stale = true
	return on
}

// ClearGrid deactivates every cell of kind.
func (s *Session) ClearGrid(kind GridKind) {
	s.state.Grid.Clear(kind)
	s.stale = true
}

// RandomizeGrid redraws the cells of kind.
func (s *Session) RandomizeGrid(kind GridKind) {
	s.state.Grid.Randomize(kind, s.rng)
	s.stale = true
}

// Reset zeroes every slider and clears the grid.
func (s *Session) Reset() {
	s.state.Reset()
	s.stale = true
}

// Render renders the source at the current clock reading.
func (s *Session) Render() *Pixmap {
	return s.RenderAt(s.clock())
}

// RenderAt renders the source at time t and returns the output.
// The returned pixmap is owned by the session and replaced by the next render.
func (s *Session) RenderAt(t float64) *Pixmap {
	if !s.stale && s.framed && (s.lastT == t || !s.animated()) {
		return s.out
	}
	out := Render(s.src, s.state, t)
	if !out.Equal(s.out) {
		s.audio = nil
	}
	s.out = out
	s.stale = false
	s.lastT = t
	s.framed = true
	return s.out
}

// animated reports whether any active warp depends on time.
func (s *Session) animated() bool {
	for _, step := range Plan(s.state.Grid) {
		if step.Kind != KindPrism && step.Kind != KindVortex {
			return true
		}
	}
	return false
}

// Output returns the last rendered output, or a copy of the source if
// nothing has been rendered since the last Load.
func (s *Session) Output() *Pixmap {
	return s.out
}

// Audio returns the sonified output, computing it on first use after the
// output changed.
func (s *Session) Audio() *AudioBuffer {
	if s.audio == nil {
		s.audio = Sonify(s.out)
	}
	return s.audio
}
