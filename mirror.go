package tileable

// MirrorTransform places the original and its three reflections on a canvas
// twice the size of the input:
//
//	original | flip H
//	---------+-------
//	flip V   | flip HV
//
// Every internal seam joins a column (or row) with its own reflection, so
// the result tiles exactly at the cost of visible symmetry.
type MirrorTransform struct{}

// Method returns Mirror
func (MirrorTransform) Method() Method { return Mirror }

// Apply implements Transform
func (MirrorTransform) Apply(src *Buffer) *Buffer {
	w, h := src.Width, src.Height
	dst := mustBuffer(2*w, 2*h, src.Channels)

	for y := 0; y < h; y++ {
		fy := 2*h - 1 - y
		for x := 0; x < w; x++ {
			fx := 2*w - 1 - x
			px := src.Pixel(x, y)
			dst.SetPixel(x, y, px)
			dst.SetPixel(fx, y, px)
			dst.SetPixel(x, fy, px)
			dst.SetPixel(fx, fy, px)
		}
	}
	return dst
}

// FlipH returns a copy of src mirrored along the vertical axis
func FlipH(src *Buffer) *Buffer {
	dst := mustBuffer(src.Width, src.Height, src.Channels)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst.SetPixel(src.Width-1-x, y, src.Pixel(x, y))
		}
	}
	return dst
}

// FlipV returns a copy of src mirrored along the horizontal axis
func FlipV(src *Buffer) *Buffer {
	dst := mustBuffer(src.Width, src.Height, src.Channels)
	for y := 0; y < src.Height; y++ {
		copy(dst.Row(src.Height-1-y), src.Row(y))
	}
	return dst
}
