package tileable

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		channels int
		wantErr  bool
	}{
		{name: "gray", width: 10, height: 5, channels: Gray},
		{name: "rgb", width: 1, height: 1, channels: RGB},
		{name: "rgba", width: 3, height: 7, channels: RGBA},
		{name: "zero width", width: 0, height: 5, channels: RGB, wantErr: true},
		{name: "negative height", width: 5, height: -1, channels: RGB, wantErr: true},
		{name: "two channels", width: 5, height: 5, channels: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewBuffer(tt.width, tt.height, tt.channels)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimensions)
				assert.Nil(t, buf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, buf.Width)
			assert.Equal(t, tt.height, buf.Height)
			assert.Len(t, buf.Pix, tt.width*tt.height*tt.channels)
		})
	}
}

func TestBufferAccessors(t *testing.T) {
	buf := newTestBuffer(t, 4, 3, RGB)
	buf.SetPixel(2, 1, []uint8{10, 20, 30})
	buf.Set(3, 2, 1, 99)

	assert.Equal(t, []uint8{10, 20, 30}, buf.Pixel(2, 1))
	assert.Equal(t, uint8(20), buf.At(2, 1, 1))
	assert.Equal(t, uint8(99), buf.At(3, 2, 1))
	assert.Equal(t, (1*4+2)*3, indexOf(buf, 10))

	assert.Panics(t, func() { buf.At(4, 0, 0) })
	assert.Panics(t, func() { buf.At(0, -1, 0) })
	assert.Panics(t, func() { buf.At(0, 0, 3) })
	assert.Panics(t, func() { buf.Pixel(0, 3) })
}

func indexOf(buf *Buffer, v uint8) int {
	for i, p := range buf.Pix {
		if p == v {
			return i
		}
	}
	return -1
}

func TestBufferPixelDoesNotSpill(t *testing.T) {
	buf := newTestBuffer(t, 2, 1, Gray)
	px := buf.Pixel(0, 0)
	px = append(px, 42)
	assert.Equal(t, uint8(0), buf.At(1, 0, 0), "appending to a pixel must not overwrite its neighbour")
	assert.Len(t, px, 2)
}

func TestBufferClone(t *testing.T) {
	buf := createCoordBuffer(t, 5, 5)
	clone := buf.Clone()
	require.True(t, clone.Equal(buf))

	clone.SetPixel(1, 1, []uint8{0, 0, 0})
	assert.False(t, clone.Equal(buf))
	assert.Equal(t, []uint8{1, 1, 7}, buf.Pixel(1, 1), "modifying clone should not affect original")
}

func TestFromImageKeepsChannelMode(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})

	opaque := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			opaque.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	translucent := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	translucent.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	tests := []struct {
		name     string
		img      image.Image
		channels int
	}{
		{name: "gray", img: gray, channels: Gray},
		{name: "opaque rgba", img: opaque, channels: RGB},
		{name: "translucent nrgba", img: translucent, channels: RGBA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromImage(tt.img)
			assert.Equal(t, tt.channels, buf.Channels)
			assert.Equal(t, 3, buf.Width)
			assert.Equal(t, 2, buf.Height)

			back := FromImage(buf.Image())
			assert.True(t, back.Equal(buf), "Image() should round trip through FromImage")
		})
	}

	assert.Equal(t, uint8(200), FromImage(gray).At(1, 1, 0))
	assert.Equal(t, []uint8{10, 20, 30, 128}, FromImage(translucent).Pixel(2, 1))
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 6, 6))
	img.SetGray(3, 4, color.Gray{Y: 77})
	sub := img.SubImage(image.Rect(2, 2, 5, 6))

	buf := FromImage(sub)
	assert.Equal(t, 3, buf.Width)
	assert.Equal(t, 4, buf.Height)
	assert.Equal(t, uint8(77), buf.At(1, 2, 0))
}
