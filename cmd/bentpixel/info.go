package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/config"
	"github.com/gogpu/bentpixel/internal/presetstore"
)

func (c *cli) runPresets(ctx context.Context, args []string) error {
	fs := c.newFlagSet("presets", "")
	var common commonFlags
	common.register(fs)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	cfg, _, err := c.setup(common)
	if err != nil {
		return err
	}

	presets := bentpixel.Presets()
	if _, err := os.Stat(cfg.DBPath); err == nil {
		store, err := presetstore.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if presets, err = store.All(ctx); err != nil {
			return err
		}
	}

	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(presets)
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "NAME\tTITLE")
	for _, name := range bentpixel.ParamNames() {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)
	for _, p := range presets {
		fmt.Fprintf(tw, "%s\t%s", p.Name, p.Title())
		for _, name := range bentpixel.ParamNames() {
			v, _ := p.Params.Get(name)
			fmt.Fprintf(tw, "\t%d", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// openStore opens the configured preset database for writing.
func openStore(cfg *config.Config) (*presetstore.Store, error) {
	return presetstore.Open(cfg.DBPath, presetstore.WithMkdirAll())
}

func (c *cli) runSavePreset(ctx context.Context, args []string) error {
	fs := c.newFlagSet("save-preset", "name")
	var (
		common commonFlags
		sf     stateFlags
	)
	common.register(fs)
	sf.register(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	cfg, logger, err := c.setup(common)
	if err != nil {
		return err
	}
	st, _, err := c.state(ctx, cfg, &sf)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	p := bentpixel.Preset{Name: fs.Arg(0), Params: st.Params}
	if err := store.Save(ctx, p); err != nil {
		return err
	}
	logger.Info("preset saved", "name", p.Name, "db", cfg.DBPath)
	return nil
}

func (c *cli) runDeletePreset(ctx context.Context, args []string) error {
	fs := c.newFlagSet("delete-preset", "name")
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	cfg, logger, err := c.setup(common)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Delete(ctx, fs.Arg(0)); err != nil {
		return err
	}
	logger.Info("preset deleted", "name", fs.Arg(0))
	return nil
}

func (c *cli) runCells(_ context.Context, args []string) error {
	fs := c.newFlagSet("cells", "")
	var common commonFlags
	common.register(fs)
	w := fs.Int("w", 0, "image width")
	h := fs.Int("h", 0, "image height")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *w <= 0 || *h <= 0 {
		fs.Usage()
		return errUsage
	}
	if _, _, err := c.setup(common); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CELL\tX\tY\tW\tH\tCENTER")
	for _, cell := range bentpixel.Cells(*w, *h) {
		b := cell.Box
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.1f,%.1f\n", cell.Index, b.Min.X, b.Min.Y, b.Dx(), b.Dy(), cell.CX, cell.CY)
	}
	return tw.Flush()
}
