// Package ascii turns images into colored ASCII art.
package ascii

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/colthorp/lolfetch-go/internal/output"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// brightness is added to every channel before sampling; the emblems and
	// icons are dark and lose detail otherwise.
	brightness     = 45
	alphaThreshold = 128
)

// glyphs run from dense (bright pixels) to sparse (dark pixels).
var glyphs = []rune{'@', '#', '$', 'S', '%', '*', '+', ';', '-', ':', ',', '.', '\'', '"'}

// Fetcher downloads a URL. *api.StaticData satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Render converts img to height lines of width characters.
func Render(img image.Image, width, height int) []output.Line {
	if width <= 0 || height <= 0 {
		return nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	src := brighten(img, brightness)
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	lines := make([]output.Line, height)
	for y := 0; y < height; y++ {
		line := make(output.Line, width)
		for x := 0; x < width; x++ {
			line[x] = cell(color.NRGBAModel.Convert(scaled.At(x, y)).(color.NRGBA))
		}
		lines[y] = line
	}
	return lines
}

func brighten(img image.Image, amount int) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x, y, color.NRGBA{
				R: clamp(int(c.R) + amount),
				G: clamp(int(c.G) + amount),
				B: clamp(int(c.B) + amount),
				A: c.A,
			})
		}
	}
	return out
}

func clamp(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// cell maps a pixel to a glyph by perceived luminance.
func cell(c color.NRGBA) output.Cell {
	if c.A < alphaThreshold {
		return output.Cell{Ch: ' '}
	}
	luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	idx := (255 - luma) * (len(glyphs) - 1) / 255
	fg := output.Color{R: c.R, G: c.G, B: c.B}
	return output.Cell{Ch: glyphs[idx], FG: &fg}
}

// FromBytes decodes an encoded image (PNG, JPEG, GIF or WebP) and renders it.
func FromBytes(data []byte, width, height int) ([]output.Line, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return Render(img, width, height), nil
}

// FromFile renders the image at path.
func FromFile(path string, width, height int) ([]output.Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return FromBytes(data, width, height)
}

// FromURL downloads and renders an image.
func FromURL(ctx context.Context, f Fetcher, url string, width, height int) ([]output.Line, error) {
	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	return FromBytes(data, width, height)
}
