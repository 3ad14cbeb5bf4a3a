package tileable

// OffsetTransform rolls the image by half its width and height and averages
// the rolled copy with the original. It softens the seam but does not
// guarantee continuity at the tile boundary.
type OffsetTransform struct{}

// Method returns Offset
func (OffsetTransform) Method() Method { return Offset }

// Apply implements Transform
func (OffsetTransform) Apply(src *Buffer) *Buffer {
	dst := mustBuffer(src.Width, src.Height, src.Channels)
	dx, dy := src.Width/2, src.Height/2

	for y := 0; y < src.Height; y++ {
		sy := wrap(y-dy, src.Height)
		for x := 0; x < src.Width; x++ {
			sx := wrap(x-dx, src.Width)
			orig := src.Pixel(x, y)
			shifted := src.Pixel(sx, sy)
			out := dst.Pixel(x, y)
			for c := range out {
				out[c] = uint8((int(orig[c]) + int(shifted[c])) / 2)
			}
		}
	}
	return dst
}

// wrap maps i into [0, n)
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
