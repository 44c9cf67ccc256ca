// Command bentpixel renders databent images and sonifies them.
//
// Usage:
//
//	bentpixel render -preset glitch -grid ripple=0,4,8 -o out/ a.png b.jpg
//	bentpixel render -pixelSort 200 -o - in.png > out.png
//	bentpixel sonify -preset wave -o in.wav in.png
//	bentpixel play -preset chaos in.png
//	bentpixel serve -config bentpixel.yaml
//	bentpixel presets [-json]
//	bentpixel save-preset -bitShift 40 -rgbSplit 10 mine
//	bentpixel delete-preset mine
//	bentpixel cells -w 640 -h 480
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newCLI(os.Stdout, os.Stderr)
	if err := c.run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "bentpixel: %v\n", err)
		}
		os.Exit(1)
	}
}

// cli carries the process environment so that commands can be tested.
type cli struct {
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func(io.Writer) bool
	now        func() time.Time
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout:     stdout,
		stderr:     stderr,
		isTerminal: isTerminal,
		now:        time.Now,
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type command struct {
	name    string
	summary string
	run     func(c *cli, ctx context.Context, args []string) error
}

var commands = []command{
	{"render", "render images through the chain and grid", (*cli).runRender},
	{"sonify", "render an image and write its audio as WAV", (*cli).runSonify},
	{"play", "render an image and play its audio", (*cli).runPlay},
	{"serve", "run the HTTP service", (*cli).runServe},
	{"presets", "list built-in and saved presets", (*cli).runPresets},
	{"save-preset", "store the slider flags as a named preset", (*cli).runSavePreset},
	{"delete-preset", "remove a saved preset", (*cli).runDeletePreset},
	{"cells", "print the grid cell boxes for a size", (*cli).runCells},
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return errUsage
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(c, ctx, args[1:])
		}
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "-help" {
		c.usage()
		return nil
	}
	c.usage()
	return fmt.Errorf("unknown command %q", args[0])
}

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, "usage: bentpixel <command> [flags] [args]")
	fmt.Fprintln(c.stderr)
	fmt.Fprintln(c.stderr, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(c.stderr, "  %-14s %s\n", cmd.name, cmd.summary)
	}
}
