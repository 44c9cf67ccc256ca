// Package wavio exports sonified buffers as 16-bit PCM WAV.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"

	"github.com/gogpu/bentpixel"
)

// BitDepth is the sample depth of exported files.
const BitDepth = 16

// ErrInvalidFile is returned when Decode is given something that is not a WAV file.
var ErrInvalidFile = errors.New("wavio: invalid WAV file")

const pcmScale = 1<<(BitDepth-1) - 1

// Encode writes buf to ws as stereo 16-bit PCM.
func Encode(ws io.WriteSeeker, buf *bentpixel.AudioBuffer) error {
	enc := wav.NewEncoder(ws, buf.SampleRate, BitDepth, buf.Channels(), 1)

	samples := buf.Interleaved()
	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: buf.Channels(),
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: BitDepth,
	}
	for i, s := range samples {
		intBuf.Data[i] = int(s * pcmScale)
	}

	if err := enc.Write(intBuf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("wavio: write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: close: %w", err)
	}
	return nil
}

// EncodeBytes encodes buf in memory.
func EncodeBytes(buf *bentpixel.AudioBuffer) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}
	if err := Encode(ws, buf); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("wavio: read: %w", err)
	}
	return data, nil
}

// Save writes buf to the WAV file at path.
func Save(path string, buf *bentpixel.AudioBuffer) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("wavio: create file: %w", err)
	}
	if err := Encode(f, buf); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Decode reads a stereo or mono WAV stream into an AudioBuffer.
// Mono input is duplicated to both channels.
func Decode(r io.ReadSeeker) (*bentpixel.AudioBuffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	nch := pcm.Format.NumChannels
	if nch < 1 || nch > 2 {
		return nil, fmt.Errorf("wavio: decode: %d channels: %w", nch, ErrInvalidFile)
	}
	scale := float32(int(1)<<(dec.BitDepth-1) - 1)
	frames := len(pcm.Data) / nch
	out := &bentpixel.AudioBuffer{
		SampleRate: pcm.Format.SampleRate,
		Left:       make([]float32, frames),
		Right:      make([]float32, frames),
	}
	for i := range frames {
		out.Left[i] = float32(pcm.Data[i*nch]) / scale
		out.Right[i] = float32(pcm.Data[i*nch+nch-1]) / scale
	}
	if out.SampleRate > 0 {
		out.Duration = float64(frames) / float64(out.SampleRate)
	}
	return out, nil
}
