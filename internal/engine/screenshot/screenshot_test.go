package screenshot

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPixelsToImageFlips(t *testing.T) {
	// 1x2 image: bottom row red, top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	img, err := PixelsToImage(pixels, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top := img.RGBAAt(0, 0)
	if top.B != 255 || top.R != 0 {
		t.Errorf("expected blue top row, got %v", top)
	}
	bottom := img.RGBAAt(0, 1)
	if bottom.R != 255 || bottom.B != 0 {
		t.Errorf("expected red bottom row, got %v", bottom)
	}
}

func TestPixelsToImageErrors(t *testing.T) {
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short buffer", make([]byte, 7), 1, 2},
		{"long buffer", make([]byte, 9), 1, 2},
		{"zero width", nil, 0, 2},
		{"negative height", nil, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PixelsToImage(tt.pixels, tt.width, tt.height); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFilename(t *testing.T) {
	c := New("shots", "objviewer")
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }

	want := filepath.Join("shots", "objviewer_2024-03-09_14-05-07.png")
	if got := c.Filename(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	c.outputDir = ""
	if got := c.Filename(); got != "objviewer_2024-03-09_14-05-07.png" {
		t.Errorf("expected bare file name, got %s", got)
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := New(dir, "snap")

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}

	path, err := c.SavePixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("SavePixels failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "snap_") {
		t.Errorf("unexpected file name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written file: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("written file is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("expected 4x3 image, got %dx%d", b.Dx(), b.Dy())
	}
}
