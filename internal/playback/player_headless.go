//go:build headless

package playback

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/bentpixel"
)

// Player accepts buffers without producing sound.
type Player struct {
	rate   int
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	played int
}

// New returns a silent player at sampleRate.
func New(sampleRate int, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = bentpixel.Logger()
	}
	return &Player{rate: sampleRate, logger: logger}, nil
}

// Play validates buf and returns immediately.
func (p *Player) Play(ctx context.Context, buf *bentpixel.AudioBuffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkRate(buf, p.rate); err != nil {
		return err
	}
	p.played += len(encodePCM(buf))
	p.logger.Info("playback: headless", "samples", buf.Len(), "duration", buf.Duration)
	return nil
}

// Close stops accepting buffers.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
