package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// KittyRenderer implements the Renderer interface for the Kitty graphics protocol
type KittyRenderer struct{}

// Protocol returns the protocol type
func (r *KittyRenderer) Protocol() Protocol {
	return Kitty
}

// Render transmits the image as PNG (f=100) and displays it at the cursor
// (a=T). Payloads larger than one chunk are split with m=1 continuation.
func (r *KittyRenderer) Render(img image.Image, opts Options) (string, error) {
	opts = opts.withDefaults()

	processed := fitPixels(img, opts.Columns*opts.FontWidth, opts.Rows*opts.FontHeight)
	bounds := processed.Bounds()
	cols, rows := cellsFor(bounds.Dx(), bounds.Dy(), opts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	chunks := ChunkedBase64Encode(buf.Bytes(), CHUNK_SIZE)

	var out strings.Builder
	for i, chunk := range chunks {
		more := 1
		if i == len(chunks)-1 {
			more = 0
		}

		var seq string
		if i == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,q=2,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, chunk)
		} else {
			seq = fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
		out.WriteString(wrapTmuxPassthrough(seq))
	}

	return out.String(), nil
}
