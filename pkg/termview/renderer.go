package termview

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/term"
)

// Default cell geometry used when the terminal cannot be asked
const (
	DefaultColumns    = 80
	DefaultRows       = 24
	DefaultFontWidth  = 8
	DefaultFontHeight = 16
)

// Renderer is the interface all protocol implementations satisfy
type Renderer interface {
	// Render generates the escape sequence for displaying the image
	Render(img image.Image, opts Options) (string, error)

	// Protocol returns the protocol type
	Protocol() Protocol
}

// Options controls the area an image is fitted into
type Options struct {
	// Columns and Rows bound the image in character cells. Zero means the
	// current terminal size.
	Columns int
	Rows    int

	// FontWidth and FontHeight are the pixel size of one cell
	FontWidth  int
	FontHeight int

	// Colors caps the sixel palette
	Colors int
}

// GetRenderer returns a renderer for the specified protocol
func GetRenderer(protocol Protocol) (Renderer, error) {
	switch protocol {
	case Auto:
		return GetRenderer(DetectProtocol())
	case Kitty:
		return &KittyRenderer{}, nil
	case Sixel:
		return &SixelRenderer{}, nil
	case ITerm2:
		return &ITerm2Renderer{}, nil
	case Halfblocks:
		return &HalfblocksRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}

// Print renders img with the given protocol and writes it to w
func Print(w io.Writer, img image.Image, protocol Protocol, opts Options) error {
	r, err := GetRenderer(protocol)
	if err != nil {
		return err
	}
	if r.Protocol() != Halfblocks {
		if inTmux() {
			enableTmuxPassthrough()
		}
		if opts.FontWidth <= 0 || opts.FontHeight <= 0 {
			if w, h, ok := QueryCellSize(); ok {
				opts.FontWidth, opts.FontHeight = w, h
			}
		}
	}
	out, err := r.Render(img, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// withDefaults fills in terminal geometry
func (o Options) withDefaults() Options {
	if o.Columns <= 0 || o.Rows <= 0 {
		cols, rows := terminalSize()
		if o.Columns <= 0 {
			o.Columns = cols
		}
		if o.Rows <= 0 {
			// leave a line for the prompt
			o.Rows = max(rows-1, 1)
		}
	}
	if o.FontWidth <= 0 {
		o.FontWidth = DefaultFontWidth
	}
	if o.FontHeight <= 0 {
		o.FontHeight = DefaultFontHeight
	}
	return o
}

func terminalSize() (cols, rows int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return DefaultColumns, DefaultRows
}

// fitPixels scales img to fit inside maxW x maxH pixels keeping the aspect
// ratio. Large images are downsampled with bilinear filtering; small
// textures are blown up with nearest neighbour so individual pixels stay
// crisp.
func fitPixels(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 || maxW <= 0 || maxH <= 0 {
		return img
	}

	if srcW > maxW || srcH > maxH {
		return resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Bilinear)
	}

	scale := min(maxW/srcW, maxH/srcH)
	if scale <= 1 {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, srcW*scale, srcH*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// cellsFor returns how many cells a w x h pixel image covers
func cellsFor(w, h int, opts Options) (cols, rows int) {
	cols = (w + opts.FontWidth - 1) / opts.FontWidth
	rows = (h + opts.FontHeight - 1) / opts.FontHeight
	return max(cols, 1), max(rows, 1)
}
