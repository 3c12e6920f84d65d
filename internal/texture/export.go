package texture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/bmp"
)

var (
	// ErrInvalidScale is returned by Export for a scale below 1.
	ErrInvalidScale = errors.New("texture: scale must be at least 1")
	// ErrUnsupportedFormat is returned by Export for an unknown file extension.
	ErrUnsupportedFormat = errors.New("texture: unsupported output format")
)

// encoderFor picks an encoder from the file extension.
func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".bmp":
		return bmp.Encode, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Export writes img to path, enlarged scale times with nearest-neighbour sampling so each
// texel stays a sharp square. The format follows the extension (.png or .bmp).
// Parent directories are created as needed.
func Export(path string, img *Image, scale int) error {
	if scale < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("texture: %w", err)
		}
	}
	out := transform.Resize(img.RGBA(), img.Width*scale, img.Height*scale, transform.NearestNeighbor)
	if err := imgio.Save(path, out, enc); err != nil {
		return fmt.Errorf("texture: save %s: %w", path, err)
	}
	return nil
}
