package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/config"
	"github.com/gogpu/bentpixel/internal/presetstore"
)

// commonFlags are accepted by every command.
type commonFlags struct {
	config   string
	logLevel string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "path to bentpixel.yaml config file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// stateFlags select the render state.
type stateFlags struct {
	sliders map[string]*int
	preset  string
	grid    bentpixel.GridToggles
	t       float64
	now     bool
}

// unset marks a slider flag that was not given.
const unset = -1

func (f *stateFlags) register(fs *flag.FlagSet) {
	f.sliders = make(map[string]*int)
	for _, name := range bentpixel.ParamNames() {
		maxV, _ := bentpixel.ParamMax(name)
		f.sliders[name] = fs.Int(name, unset, fmt.Sprintf("%s intensity 0..%d", name, maxV))
	}
	fs.StringVar(&f.preset, "preset", "", "start from a built-in or saved preset")
	fs.Func("grid", "activate cells, kind=cells such as ripple=0,4,8 (repeatable)", f.grid.ParseGridSpec)
	fs.Float64Var(&f.t, "t", 0, "animation time in seconds")
	fs.BoolVar(&f.now, "now", false, "use the wall clock as animation time")
}

// newFlagSet returns a flag set reporting errors instead of exiting.
func (c *cli) newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "usage: bentpixel %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// setup loads the configuration and installs the logger.
func (c *cli) setup(f commonFlags) (*config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.LoadFile(f.config); err != nil {
			return nil, nil, err
		}
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := cfg.NewLogger(c.stderr)
	bentpixel.SetLogger(logger)
	return cfg, logger, nil
}

// state resolves the preset, then applies explicit sliders over it.
func (c *cli) state(ctx context.Context, cfg *config.Config, f *stateFlags) (bentpixel.State, float64, error) {
	var st bentpixel.State
	if f.preset != "" {
		p, err := lookupPreset(ctx, cfg, f.preset)
		if err != nil {
			return st, 0, err
		}
		st.Params = p.Params
	}
	for name, v := range f.sliders {
		if *v == unset {
			continue
		}
		if err := st.Params.Set(name, *v); err != nil {
			return st, 0, err
		}
	}
	st.Grid = f.grid

	t := f.t
	if f.now {
		t = float64(c.now().UnixMilli()) / 1000
	}
	return st, t, nil
}

// lookupPreset resolves built-ins directly and opens the preset database
// only when it exists.
func lookupPreset(ctx context.Context, cfg *config.Config, name string) (bentpixel.Preset, error) {
	p, err := bentpixel.LookupPreset(name)
	if err == nil || !errors.Is(err, bentpixel.ErrUnknownPreset) {
		return p, err
	}
	if _, statErr := os.Stat(cfg.DBPath); statErr != nil {
		return p, err
	}
	store, err := presetstore.Open(cfg.DBPath)
	if err != nil {
		return bentpixel.Preset{}, err
	}
	defer store.Close()
	return store.Lookup(ctx, name)
}
