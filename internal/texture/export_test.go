package texture

import (
	"errors"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	_ "golang.org/x/image/bmp"
)

func TestExport(t *testing.T) {
	for _, name := range []string{"uv.png", "nested/dir/uv.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Export(path, UVDebug(), 4); err != nil {
				t.Fatal(err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			cfg, _, err := image.DecodeConfig(f)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != 32 || cfg.Height != 32 {
				t.Errorf("size = %dx%d, want 32x32", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestExportErrors(t *testing.T) {
	dir := t.TempDir()
	if err := Export(filepath.Join(dir, "uv.png"), UVDebug(), 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("scale 0: err = %v, want ErrInvalidScale", err)
	}
	if err := Export(filepath.Join(dir, "uv.gif"), UVDebug(), 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf(".gif: err = %v, want ErrUnsupportedFormat", err)
	}
}
