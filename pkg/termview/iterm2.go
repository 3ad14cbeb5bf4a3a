package termview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// ITerm2Renderer implements the Renderer interface for iTerm2 inline images
type ITerm2Renderer struct{}

// Protocol returns the protocol type
func (r *ITerm2Renderer) Protocol() Protocol {
	return ITerm2
}

// Render generates the escape sequence for displaying the image
func (r *ITerm2Renderer) Render(img image.Image, opts Options) (string, error) {
	opts = opts.withDefaults()

	processed := fitPixels(img, opts.Columns*opts.FontWidth, opts.Rows*opts.FontHeight)
	bounds := processed.Bounds()

	// PNG keeps alpha, JPEG would flatten it
	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	data := buf.Bytes()

	params := []string{
		"inline=1",
		fmt.Sprintf("size=%d", len(data)),
		fmt.Sprintf("width=%dpx", bounds.Dx()),
		fmt.Sprintf("height=%dpx", bounds.Dy()),
		"preserveAspectRatio=1",
	}

	// Format: \033]1337;File=[parameters]:[base64 data]\007
	seq := fmt.Sprintf("\x1b]1337;File=%s:%s\x07", strings.Join(params, ";"), base64.StdEncoding.EncodeToString(data))
	return wrapTmuxPassthrough(seq), nil
}
