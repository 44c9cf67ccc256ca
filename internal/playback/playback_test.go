package playback

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/bentpixel"
)

func TestEncodePCM(t *testing.T) {
	buf := &bentpixel.AudioBuffer{
		SampleRate: bentpixel.SampleRate,
		Left:       []float32{0.5, -1},
		Right:      []float32{0.25, 0},
	}
	data := encodePCM(buf)
	if len(data) != 16 {
		t.Fatalf("len = %d, want 16", len(data))
	}
	want := []float32{0.5, 0.25, -1, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
		if got != w {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
}

func TestCheckRate(t *testing.T) {
	buf := &bentpixel.AudioBuffer{SampleRate: 48000}
	if err := checkRate(buf, 44100); !errors.Is(err, ErrSampleRate) {
		t.Errorf("checkRate() error = %v, want ErrSampleRate", err)
	}
	if err := checkRate(buf, 48000); err != nil {
		t.Errorf("checkRate() error = %v, want nil", err)
	}
}
