package tileable

import (
	"fmt"
	"image"
	"image/color"
)

// Channel counts supported by Buffer
const (
	Gray = 1
	RGB  = 3
	RGBA = 4
)

// Buffer is an in-memory grid of 8-bit samples laid out row-major with
// Channels interleaved samples per pixel. RGBA buffers hold straight
// (non-premultiplied) alpha.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	switch channels {
	case Gray, RGB, RGBA:
	default:
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidDimensions, channels)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// mustBuffer is used by transforms whose output dimensions derive from an
// already valid buffer.
func mustBuffer(width, height, channels int) *Buffer {
	b, err := NewBuffer(width, height, channels)
	if err != nil {
		panic(err)
	}
	return b
}

// Bounds returns the buffer rectangle anchored at the origin
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Stride returns the number of samples in one row
func (b *Buffer) Stride() int {
	return b.Width * b.Channels
}

// offset returns the index of the first sample of (x, y)
func (b *Buffer) offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		panic(fmt.Sprintf("tileable: pixel (%d,%d) out of range %dx%d", x, y, b.Width, b.Height))
	}
	return (y*b.Width + x) * b.Channels
}

// At returns channel c of the pixel at (x, y)
func (b *Buffer) At(x, y, c int) uint8 {
	if c < 0 || c >= b.Channels {
		panic(fmt.Sprintf("tileable: channel %d out of range %d", c, b.Channels))
	}
	return b.Pix[b.offset(x, y)+c]
}

// Set stores v in channel c of the pixel at (x, y)
func (b *Buffer) Set(x, y, c int, v uint8) {
	if c < 0 || c >= b.Channels {
		panic(fmt.Sprintf("tileable: channel %d out of range %d", c, b.Channels))
	}
	b.Pix[b.offset(x, y)+c] = v
}

// Pixel returns the samples of (x, y). The slice aliases the buffer.
func (b *Buffer) Pixel(x, y int) []uint8 {
	i := b.offset(x, y)
	return b.Pix[i : i+b.Channels : i+b.Channels]
}

// SetPixel copies px into (x, y)
func (b *Buffer) SetPixel(x, y int, px []uint8) {
	copy(b.Pixel(x, y), px)
}

// Row returns the samples of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []uint8 {
	i := b.offset(0, y)
	return b.Pix[i : i+b.Stride() : i+b.Stride()]
}

// Clone creates a deep copy of the buffer
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      make([]uint8, len(b.Pix)),
	}
	copy(c.Pix, b.Pix)
	return c
}

// Equal reports whether both buffers have the same shape and samples
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer
func (b *Buffer) String() string {
	return fmt.Sprintf("%dx%d %s", b.Width, b.Height, channelName(b.Channels))
}

func channelName(channels int) string {
	switch channels {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	default:
		return fmt.Sprintf("%d-channel", channels)
	}
}

// FromImage converts any image.Image into a Buffer, keeping the channel
// mode of the source: grayscale stays single channel, fully opaque images
// become RGB and everything else RGBA.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf := mustBuffer(w, h, Gray)
		for y := 0; y < h; y++ {
			i := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.Row(y), src.Pix[i:i+w])
		}
		return buf
	case *image.Gray16:
		buf := mustBuffer(w, h, Gray)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				buf.Pix[y*w+x] = uint8(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
			}
		}
		return buf
	}

	channels := RGB
	if !isOpaque(img) {
		channels = RGBA
	}
	buf := mustBuffer(w, h, channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			px := buf.Pixel(x, y)
			px[0], px[1], px[2] = c.R, c.G, c.B
			if channels == RGBA {
				px[3] = c.A
			}
		}
	}
	return buf
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// Image returns an image.Image view of the buffer suitable for encoding.
// Gray buffers become *image.Gray, the rest *image.NRGBA.
func (b *Buffer) Image() image.Image {
	if b.Channels == Gray {
		g := image.NewGray(b.Bounds())
		copy(g.Pix, b.Pix)
		return g
	}
	img := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			px := b.Pixel(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = px[0]
			img.Pix[i+1] = px[1]
			img.Pix[i+2] = px[2]
			if b.Channels == RGBA {
				img.Pix[i+3] = px[3]
			} else {
				img.Pix[i+3] = 0xff
			}
		}
	}
	return img
}
