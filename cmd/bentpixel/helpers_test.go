package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/bentpixel"
	"github.com/gogpu/bentpixel/internal/imageio"
)

// testCLI returns a cli writing into buffers. terminal controls what the
// TTY check reports for stdout.
func testCLI(terminal bool) (*cli, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	c := newCLI(&stdout, &stderr)
	c.isTerminal = func(io.Writer) bool { return terminal }
	c.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return c, &stdout, &stderr
}

// writeImage saves an opaque gradient as PNG in dir and returns its path.
func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	pm := bentpixel.NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetRGBA(x, y, uint8(x*9), uint8(y*9), uint8(x^y), 255)
		}
	}
	path, err := imageio.Save(filepath.Join(dir, name), pm, 0)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// writeConfig writes a config pointing the preset database into dir.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bentpixel.yaml")
	data := "db_path: " + filepath.Join(dir, "presets.db") + "\nlog_level: error\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
