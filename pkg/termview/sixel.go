package termview

import (
	"bytes"
	"fmt"
	"image"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/mattn/go-sixel"
	"github.com/soniakeys/quant/median"
)

// DefaultSixelColors is the palette size used when Options.Colors is unset
const DefaultSixelColors = 128

// SixelRenderer implements the Renderer interface for the Sixel protocol
type SixelRenderer struct{}

// Protocol returns the protocol type
func (r *SixelRenderer) Protocol() Protocol {
	return Sixel
}

// Render generates the escape sequence for displaying the image
func (r *SixelRenderer) Render(img image.Image, opts Options) (string, error) {
	opts = opts.withDefaults()

	processed := fitPixels(img, opts.Columns*opts.FontWidth, opts.Rows*opts.FontHeight)

	colors := opts.Colors
	if colors <= 0 {
		colors = DefaultSixelColors
	}
	colors = min(max(colors, 2), 256)

	processed = r.applyOptimizedPalette(processed, colors)

	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Colors = colors
	// the median cut palette is already dithered in
	enc.Dither = false

	if err := enc.Encode(processed); err != nil {
		return "", fmt.Errorf("failed to encode sixel: %w", err)
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("sixel encoding produced empty output")
	}

	return wrapTmuxPassthrough(buf.String()), nil
}

// applyOptimizedPalette reduces img to a median cut palette with Stucki
// error diffusion
func (r *SixelRenderer) applyOptimizedPalette(img image.Image, paletteSize int) image.Image {
	palette := median.Quantizer(paletteSize).Palette(img).ColorPalette()
	if len(palette) == 0 {
		return img
	}

	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.Stucki

	if out := ditherer.Dither(img); out != nil {
		return out
	}
	return img
}
