//go:build !headless

package playback

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/gogpu/bentpixel"
)

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func otoContext(sampleRate int) (*oto.Context, int, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("playback: open device: %w", err)
			return
		}
		<-ready
		otoCtx, otoRate = ctx, sampleRate
	})
	return otoCtx, otoRate, otoErr
}

// pollInterval is how often Play checks whether the device has drained.
const pollInterval = 20 * time.Millisecond

// Player plays buffers through the default audio device.
type Player struct {
	ctx    *oto.Context
	rate   int
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// New opens the audio device at sampleRate. The device is opened once per
// process; later calls share it and fail if sampleRate differs.
func New(sampleRate int, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = bentpixel.Logger()
	}
	ctx, rate, err := otoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	if rate != sampleRate {
		return nil, fmt.Errorf("%w: device opened at %d Hz, want %d Hz", ErrSampleRate, rate, sampleRate)
	}
	return &Player{ctx: ctx, rate: rate, logger: logger}, nil
}

// Play plays buf and blocks until it has drained or ctx is done.
func (p *Player) Play(ctx context.Context, buf *bentpixel.AudioBuffer) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if err := checkRate(buf, p.rate); err != nil {
		return err
	}

	pl := p.ctx.NewPlayer(bytes.NewReader(encodePCM(buf)))
	defer func() { _ = pl.Close() }()

	p.logger.Info("playback: start", "samples", buf.Len(), "duration", buf.Duration)
	pl.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for pl.IsPlaying() {
		select {
		case <-ctx.Done():
			pl.Pause()
			p.logger.Info("playback: stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := pl.Err(); err != nil {
		return fmt.Errorf("playback: play: %w", err)
	}
	p.logger.Debug("playback: drained")
	return nil
}

// Close stops accepting buffers. The shared device stays open.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
