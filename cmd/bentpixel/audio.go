package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/imageio"
	"github.com/gogpu/bentpixel/internal/playback"
	"github.com/gogpu/bentpixel/internal/wavio"
)

// audioFlags are the flags of sonify and play.
type audioFlags struct {
	common commonFlags
	state  stateFlags
	output string
	maxW   int
	maxH   int
	input  string
	logger *slog.Logger
}

// renderAudio loads one image, renders it and sonifies the result.
// withOutput adds the -o flag.
func (c *cli) renderAudio(ctx context.Context, name string, args []string, withOutput bool) (*bentpixel.AudioBuffer, *audioFlags, error) {
	fs := c.newFlagSet(name, "input")
	af := &audioFlags{}
	af.common.register(fs)
	af.state.register(fs)
	if withOutput {
		fs.StringVar(&af.output, "o", "", "output WAV file, or - for stdout (default: input name with .wav)")
	}
	fs.IntVar(&af.maxW, "max-width", 0, "downscale to fit this width before rendering")
	fs.IntVar(&af.maxH, "max-height", 0, "downscale to fit this height before rendering")
	if err := fs.Parse(args); err != nil {
		return nil, nil, errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, nil, errUsage
	}
	af.input = fs.Arg(0)

	cfg, logger, err := c.setup(af.common)
	if err != nil {
		return nil, nil, err
	}
	af.logger = logger
	st, t, err := c.state(ctx, cfg, &af.state)
	if err != nil {
		return nil, nil, err
	}
	src, err := imageio.Load(af.input)
	if err != nil {
		return nil, nil, err
	}
	src = imageio.Fit(src, af.maxW, af.maxH)
	return bentpixel.Sonify(bentpixel.Render(src, st, t)), af, nil
}

func (c *cli) runSonify(ctx context.Context, args []string) error {
	buf, af, err := c.renderAudio(ctx, "sonify", args, true)
	if err != nil {
		return err
	}

	if af.output == "-" {
		if c.isTerminal(c.stdout) {
			return errTerminal
		}
		data, err := wavio.EncodeBytes(buf)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)
		return err
	}

	out := af.output
	if out == "" {
		out = strings.TrimSuffix(af.input, filepath.Ext(af.input)) + ".wav"
	}
	if err := wavio.Save(out, buf); err != nil {
		return err
	}
	af.logger.Info("sonified", "input", af.input, "output", out, "duration", buf.Duration, "peak", buf.Peak())
	return nil
}

func (c *cli) runPlay(ctx context.Context, args []string) error {
	buf, af, err := c.renderAudio(ctx, "play", args, false)
	if err != nil {
		return err
	}
	p, err := playback.New(buf.SampleRate, af.logger)
	if err != nil {
		return err
	}
	defer p.Close()

	af.logger.Info("playing", "input", af.input, "duration", buf.Duration)
	return p.Play(ctx, buf)
}
