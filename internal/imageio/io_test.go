package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/bentpixel"
)

func testPixmap(w, h int, alpha uint8) *bentpixel.Pixmap {
	pm := bentpixel.NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetRGBA(x, y, uint8(x*40), uint8(y*40), uint8(x+y), alpha)
		}
	}
	return pm
}

func TestPNGRoundTrip(t *testing.T) {
	pm := testPixmap(5, 4, 128)
	data, f, err := EncodeToBytes(pm, "", 0)
	if err != nil {
		t.Fatalf("EncodeToBytes() error = %v", err)
	}
	if f != FormatPNG {
		t.Errorf("format = %q, want png for a translucent image", f)
	}

	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if !got.Equal(pm) {
		t.Error("PNG round trip changed pixels")
	}
}

func TestJPEGForOpaque(t *testing.T) {
	pm := testPixmap(16, 8, 255)
	if f := ChooseFormat(pm); f != FormatJPEG {
		t.Fatalf("ChooseFormat() = %q, want jpeg", f)
	}
	var buf bytes.Buffer
	if _, err := Encode(&buf, pm, "", 0); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if got.Width() != 16 || got.Height() != 8 {
		t.Errorf("size = %dx%d, want 16x8", got.Width(), got.Height())
	}
}

func TestDecodeExtraFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = uint8(i*10), uint8(i*3), 7, 255
	}
	want := bentpixel.FromImage(src)

	encoders := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }},
		{"tiff", func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) }},
	}
	for _, e := range encoders {
		t.Run(e.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := e.encode(&buf); err != nil {
				t.Fatal(err)
			}
			got, format, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if format != e.name {
				t.Errorf("format = %q, want %q", format, e.name)
			}
			if !got.Equal(want) {
				t.Errorf("pixel at (1,1) = %v, want %v", got.At(1, 1), want.At(1, 1))
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := DecodeBytes([]byte("not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeBytes(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{".jpeg", FormatJPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(filepath.Join(dir, "out"), testPixmap(4, 4, 255), 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Ext(path) != ".jpg" {
		t.Errorf("Save() path = %q, want .jpg extension", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}

	translucent := testPixmap(4, 4, 10)
	path, err = Save(filepath.Join(dir, "x.png"), translucent, 0)
	if err != nil {
		t.Fatalf("Save(png) error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(translucent) {
		t.Error("Save/Load changed pixels")
	}

	if _, err := Save(filepath.Join(dir, "x.bmp"), translucent, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(bmp) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportName(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 20, 30, 123_000_000, time.UTC)
	tests := []struct {
		f    Format
		want string
	}{
		{FormatJPEG, "bent-pixel-2024-05-01T10-20-30-123Z.jpg"},
		{FormatPNG, "bent-pixel-2024-05-01T10-20-30-123Z.png"},
	}
	for _, tt := range tests {
		if got := ExportName(now, tt.f); got != tt.want {
			t.Errorf("ExportName(%q) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{100, 50, 40, 40, 40, 20},
		{100, 50, 0, 10, 20, 10},
		{10, 10, 100, 100, 10, 10},
		{10, 10, 0, 0, 10, 10},
		{1000, 1, 10, 10, 10, 1},
		{0, 0, 10, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitSize(%d,%d,%d,%d) = %d,%d, want %d,%d", tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestFit(t *testing.T) {
	pm := bentpixel.NewPixmap(100, 50)
	pm.Fill(200, 10, 10, 255)

	small := Fit(pm, 40, 40)
	if small.Width() != 40 || small.Height() != 20 {
		t.Fatalf("Fit() size = %dx%d, want 40x20", small.Width(), small.Height())
	}
	if got := small.At(20, 10); got != (color.NRGBA{R: 200, G: 10, B: 10, A: 255}) {
		t.Errorf("Fit() pixel = %v, want uniform color", got)
	}

	if same := Fit(pm, 200, 200); same != pm {
		t.Error("Fit() upscaled or copied a pixmap that already fits")
	}
}
