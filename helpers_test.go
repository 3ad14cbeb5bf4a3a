package tileable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBuffer(t *testing.T, width, height, channels int) *Buffer {
	t.Helper()
	buf, err := NewBuffer(width, height, channels)
	require.NoError(t, err)
	return buf
}

// createSolidBuffer fills every pixel with px
func createSolidBuffer(t *testing.T, width, height int, px ...uint8) *Buffer {
	t.Helper()
	buf := newTestBuffer(t, width, height, len(px))
	for y := range height {
		for x := range width {
			buf.SetPixel(x, y, px)
		}
	}
	return buf
}

// createCheckerboardBuffer creates a black/white RGB checkerboard
func createCheckerboardBuffer(t *testing.T, width, height, squareSize int) *Buffer {
	t.Helper()
	buf := newTestBuffer(t, width, height, RGB)
	for y := range height {
		for x := range width {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				buf.SetPixel(x, y, []uint8{255, 255, 255})
			}
		}
	}
	return buf
}

// createCoordBuffer stores x in R and y in G so copies can be traced back
func createCoordBuffer(t *testing.T, width, height int) *Buffer {
	t.Helper()
	buf := newTestBuffer(t, width, height, RGB)
	for y := range height {
		for x := range width {
			buf.SetPixel(x, y, []uint8{uint8(x), uint8(y), 7})
		}
	}
	return buf
}

// createGradientBuffer creates a gray buffer whose columns hold step*x
func createGradientBuffer(t *testing.T, width, height, step int) *Buffer {
	t.Helper()
	buf := newTestBuffer(t, width, height, Gray)
	for y := range height {
		for x := range width {
			buf.Set(x, y, 0, uint8(step*x))
		}
	}
	return buf
}

// crop copies the w x h region at (x0, y0)
func crop(t *testing.T, src *Buffer, x0, y0, w, h int) *Buffer {
	t.Helper()
	dst := newTestBuffer(t, w, h, src.Channels)
	for y := range h {
		for x := range w {
			dst.SetPixel(x, y, src.Pixel(x0+x, y0+y))
		}
	}
	return dst
}
