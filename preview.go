package tileable

import "fmt"

// Tile repeats src cols times horizontally and rows times vertically
func Tile(src *Buffer, cols, rows int) (*Buffer, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles", ErrInvalidDimensions, cols, rows)
	}
	dst, err := NewBuffer(src.Width*cols, src.Height*rows, src.Channels)
	if err != nil {
		return nil, err
	}

	stride := src.Stride()
	for ty := 0; ty < rows; ty++ {
		for y := 0; y < src.Height; y++ {
			line := src.Row(y)
			out := dst.Row(ty*src.Height + y)
			for tx := 0; tx < cols; tx++ {
				copy(out[tx*stride:(tx+1)*stride], line)
			}
		}
	}
	return dst, nil
}

// Preview returns the 2x2 tiling of src used to eyeball seams
func Preview(src *Buffer) *Buffer {
	dst, err := Tile(src, 2, 2)
	if err != nil {
		panic(err)
	}
	return dst
}
