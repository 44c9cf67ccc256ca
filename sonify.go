package bentpixel

import "math"

// Sonification constants.
const (
	// SampleRate is the rate of every AudioBuffer, in Hz.
	SampleRate = 44100

	// MinDuration and MaxDuration bound the length of a sonified buffer, in seconds.
	MinDuration = 5.0
	MaxDuration = 15.0

	baseFreq = 110.0
	maxFreq  = 1760.0
)

// AudioBuffer is a stereo signal derived from a pixel buffer.
// Left and Right always have the same length and hold samples in (-1, 1).
type AudioBuffer struct {
	SampleRate int
	Duration   float64
	Left       []float32
	Right      []float32
}

// Len returns the number of samples per channel.
func (b *AudioBuffer) Len() int {
	return len(b.Left)
}

// Channels returns 2.
func (b *AudioBuffer) Channels() int {
	return 2
}

// Interleaved returns the samples as L, R, L, R, ...
func (b *AudioBuffer) Interleaved() []float32 {
	out := make([]float32, 0, 2*len(b.Left))
	for i := range b.Left {
		out = append(out, b.Left[i], b.Right[i])
	}
	return out
}

// Peak returns the largest absolute sample value over both channels.
func (b *AudioBuffer) Peak() float32 {
	var peak float32
	for i := range b.Left {
		peak = max(peak, abs32(b.Left[i]), abs32(b.Right[i]))
	}
	return peak
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// AudioDuration returns the sonification length for a width x height buffer:
// sqrt(W*H/10000) seconds clamped to [MinDuration, MaxDuration].
func AudioDuration(width, height int) float64 {
	px := float64(max(width, 0)) * float64(max(height, 0))
	return min(MaxDuration, max(MinDuration, math.Sqrt(px/10000)))
}

// SampleCount returns the per-channel sample count for a width x height buffer.
func SampleCount(width, height int) int {
	return int(math.Round(SampleRate * AudioDuration(width, height)))
}

// Sonify maps a finished pixel buffer to a stereo signal.
//
// Each sample averages a consecutive group of pixels, wrapping around the
// buffer. A pixel's brightness selects a frequency between 110 and 1760 Hz,
// its R, G and B weight three harmonics and its column sets the stereo pan.
// The sums are soft-clipped with tanh. An empty buffer yields silence of
// MinDuration.
func Sonify(pm *Pixmap) *AudioBuffer {
	w, h := pm.width, pm.height
	n := SampleCount(w, h)
	buf := &AudioBuffer{
		SampleRate: SampleRate,
		Duration:   AudioDuration(w, h),
		Left:       make([]float32, n),
		Right:      make([]float32, n),
	}
	total := w * h
	if total == 0 || len(pm.data) < total*4 {
		return buf
	}

	pps := max(1, total/n)
	inv := 1 / float64(pps)
	for i := range n {
		t := float64(i) / SampleRate
		var left, right float64
		for j := range pps {
			k := (i*pps + j) % total
			p := pm.data[k*4 : k*4+3]
			r := float64(p[0]) / 255
			g := float64(p[1]) / 255
			b := float64(p[2]) / 255

			f := baseFreq + (maxFreq-baseFreq)*(r+g+b)/3
			wave := math.Sin(2*math.Pi*f*t)*r +
				math.Sin(3*math.Pi*f*t)*g*0.5 +
				math.Sin(4*math.Pi*f*t)*b*0.25

			pan := 2*float64(k%w)/float64(w) - 1
			left += wave * (1 - max(0, pan)) * inv
			right += wave * (1 + min(0, pan)) * inv
		}
		buf.Left[i] = float32(math.Tanh(left))
		buf.Right[i] = float32(math.Tanh(right))
	}
	return buf
}
