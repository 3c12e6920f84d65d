package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// bytesPerPixel is the stride of one RGBA8 pixel in Image.Pix.
const bytesPerPixel = 4

// UVDebugSize is the width and height of the built-in debug texture.
const UVDebugSize = 8

// ErrSizeMismatch is returned when a palette cannot tile a row of the requested width.
var ErrSizeMismatch = errors.New("texture: palette length does not divide width")

// Format identifies the pixel layout of an Image.
type Format int

const (
	// RGBA8UnormSRGB is 8 bits per channel, alpha last, sRGB encoded.
	RGBA8UnormSRGB Format = iota
)

func (f Format) String() string {
	switch f {
	case RGBA8UnormSRGB:
		return "rgba8unorm-srgb"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Palette is an ordered band of colors. One palette fills (part of) one row.
type Palette []color.RGBA

// Bytes returns the palette as packed RGBA8 bytes.
func (p Palette) Bytes() []byte {
	out := make([]byte, 0, len(p)*bytesPerPixel)
	for _, c := range p {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}

// rotateRight shifts every color one slot to the right; the last color wraps to the front.
func (p Palette) rotateRight() {
	if len(p) < 2 {
		return
	}
	last := p[len(p)-1]
	copy(p[1:], p[:len(p)-1])
	p[0] = last
}

// UVDebugPalette returns the 8-color band used by UVDebug.
func UVDebugPalette() Palette {
	return Palette{
		{R: 255, G: 102, B: 159, A: 255},
		{R: 255, G: 159, B: 102, A: 255},
		{R: 236, G: 255, B: 102, A: 255},
		{R: 121, G: 255, B: 102, A: 255},
		{R: 102, G: 255, B: 198, A: 255},
		{R: 102, G: 198, B: 255, A: 255},
		{R: 121, G: 102, B: 255, A: 255},
		{R: 236, G: 102, B: 255, A: 255},
	}
}

// Image is a tightly packed 2D pixel buffer, row-major from the top-left corner.
type Image struct {
	Width  int
	Height int
	Format Format
	Pix    []byte
}

// Row returns the bytes of row y. It aliases Pix.
func (img *Image) Row(y int) []byte {
	stride := img.Width * bytesPerPixel
	return img.Pix[y*stride : (y+1)*stride]
}

// RGBA copies the image into an *image.RGBA so it can be handed to image encoders.
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pix)
	return out
}

// Generate builds a width×height image of diagonal color bands. Each row repeats palette
// across the width, then the palette rotates right by one color for the next row.
// The caller's palette is not modified.
func Generate(width, height int, palette Palette) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrSizeMismatch, width, height)
	}
	if len(palette) == 0 || width%len(palette) != 0 {
		return nil, fmt.Errorf("%w: %d colors for width %d", ErrSizeMismatch, len(palette), width)
	}

	band := make(Palette, len(palette))
	copy(band, palette)

	img := &Image{
		Width:  width,
		Height: height,
		Format: RGBA8UnormSRGB,
		Pix:    make([]byte, width*height*bytesPerPixel),
	}
	bandLen := len(band) * bytesPerPixel
	for y := 0; y < height; y++ {
		row := img.Row(y)
		src := band.Bytes()
		for off := 0; off < len(row); off += bandLen {
			copy(row[off:], src)
		}
		band.rotateRight()
	}
	return img, nil
}

// UVDebug returns the 8×8 debug texture. The banding makes flipped or tiled UVs obvious.
func UVDebug() *Image {
	img, err := Generate(UVDebugSize, UVDebugSize, UVDebugPalette())
	if err != nil {
		// Sizes are constants; this cannot happen.
		panic(err)
	}
	return img
}
