package termview

import (
	"image"

	"github.com/charmbracelet/x/mosaic"
)

// HalfblocksRenderer draws images with Unicode half blocks, two pixels per
// cell stacked vertically. It works on any truecolor terminal.
type HalfblocksRenderer struct{}

// Protocol returns the protocol type
func (r *HalfblocksRenderer) Protocol() Protocol {
	return Halfblocks
}

// Render generates the escape sequence for displaying the image
func (r *HalfblocksRenderer) Render(img image.Image, opts Options) (string, error) {
	opts = opts.withDefaults()

	cols, rows := halfblockSize(img.Bounds(), opts.Columns, opts.Rows)

	m := mosaic.New().Width(cols).Height(rows)
	return m.Render(img), nil
}

// halfblockSize fits the image into cols x rows cells. Each cell is one
// pixel wide and two pixels tall, so the effective pixel height is doubled.
func halfblockSize(bounds image.Rectangle, cols, rows int) (int, int) {
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	if srcW == 0 || srcH == 0 {
		return cols, rows
	}

	ratio := min(float64(cols)/srcW, float64(rows)*2.0/srcH)

	w := max(int(srcW*ratio), 1)
	h := max(int(srcH*ratio/2.0), 1)
	return w, h
}
