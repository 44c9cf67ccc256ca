package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/imageio"
	"github.com/gogpu/bentpixel/internal/overlay"
)

var errTerminal = errors.New("refusing to write binary output to a terminal")

// renderJob is one input and its destination.
type renderJob struct {
	in  string
	out string
}

func (c *cli) runRender(ctx context.Context, args []string) error {
	fs := c.newFlagSet("render", "input...")
	var (
		common  commonFlags
		sf      stateFlags
		output  = fs.String("o", ".", "output file, directory for several inputs, or - for stdout")
		format  = fs.String("format", "", "png or jpeg (default: png when the image has transparency)")
		quality = fs.Int("quality", 0, "JPEG quality (default from config)")
		maxW    = fs.Int("max-width", 0, "downscale to fit this width")
		maxH    = fs.Int("max-height", 0, "downscale to fit this height")
		drawOvl = fs.Bool("overlay", false, "draw the grid and active cell labels")
	)
	common.register(fs)
	sf.register(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, logger, err := c.setup(common)
	if err != nil {
		return err
	}
	st, t, err := c.state(ctx, cfg, &sf)
	if err != nil {
		return err
	}
	f, err := imageio.ParseFormat(*format)
	if err != nil {
		return err
	}
	q := *quality
	if q <= 0 {
		q = cfg.JPEGQuality
	}

	render := func(in string) (*bentpixel.Pixmap, error) {
		src, err := imageio.Load(in)
		if err != nil {
			return nil, err
		}
		src = imageio.Fit(src, *maxW, *maxH)
		out := bentpixel.Render(src, st, t)
		if *drawOvl {
			img := out.ToImage()
			overlay.Draw(img, st.Grid)
			out = bentpixel.FromImage(img)
		}
		return out, nil
	}

	if *output == "-" {
		if fs.NArg() != 1 {
			return errors.New("-o - takes exactly one input")
		}
		if c.isTerminal(c.stdout) {
			return errTerminal
		}
		out, err := render(fs.Arg(0))
		if err != nil {
			return err
		}
		_, err = imageio.Encode(c.stdout, out, f, q)
		return err
	}

	jobs, err := planOutputs(fs.Args(), *output, f)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchWorkers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := render(job.in)
			if err != nil {
				return fmt.Errorf("%s: %w", job.in, err)
			}
			path, err := saveAs(job.out, out, f, q)
			if err != nil {
				return fmt.Errorf("%s: %w", job.in, err)
			}
			logger.Info("rendered", "input", job.in, "output", path, "width", out.Width(), "height", out.Height())
			return nil
		})
	}
	return g.Wait()
}

// planOutputs maps inputs to output paths. A single input may name a file;
// otherwise output is a directory and each result is named after its input.
func planOutputs(inputs []string, output string, f imageio.Format) ([]renderJob, error) {
	info, err := os.Stat(output)
	isDir := err == nil && info.IsDir()
	if len(inputs) == 1 && !isDir {
		return []renderJob{{in: inputs[0], out: output}}, nil
	}
	if !isDir {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return nil, err
		}
	}

	jobs := make([]renderJob, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + "-bent"
		if f != "" {
			base += f.Ext()
		}
		if seen[base] {
			return nil, fmt.Errorf("inputs produce the same output name %q", base)
		}
		seen[base] = true
		jobs[i] = renderJob{in: in, out: filepath.Join(output, base)}
	}
	return jobs, nil
}

// saveAs writes pm to path. An explicit format overrides the extension.
func saveAs(path string, pm *bentpixel.Pixmap, f imageio.Format, quality int) (string, error) {
	if f == "" {
		return imageio.Save(path, pm, quality)
	}
	data, _, err := imageio.EncodeToBytes(pm, f, quality)
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += f.Ext()
	}
	return path, os.WriteFile(path, data, 0o644)
}
