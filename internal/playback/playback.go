// Package playback plays sonified buffers on the default audio device.
//
// The default build uses ebitengine/oto. Building with the headless tag swaps
// in a player that accepts buffers without producing sound.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/bentpixel"
)

// Playback errors.
var (
	// ErrSampleRate is returned when a buffer's rate differs from the device rate.
	ErrSampleRate = errors.New("playback: sample rate mismatch")

	// ErrClosed is returned by Play after Close.
	ErrClosed = errors.New("playback: player closed")
)

// channels is the output channel count.
const channels = 2

// encodePCM returns buf interleaved as little-endian float32 frames.
func encodePCM(buf *bentpixel.AudioBuffer) []byte {
	samples := buf.Interleaved()
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(s))
	}
	return out
}

// checkRate validates buf against the device rate.
func checkRate(buf *bentpixel.AudioBuffer, rate int) error {
	if buf.SampleRate != rate {
		return fmt.Errorf("%w: buffer %d Hz, device %d Hz", ErrSampleRate, buf.SampleRate, rate)
	}
	return nil
}
