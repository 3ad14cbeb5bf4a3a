package tileable

import "slices"

// BlendWidth returns the edge-blend zone width for a w x h image
func BlendWidth(w, h int) int {
	return min(w, h) / 8
}

// BlendSource describes how coordinate i on an axis of length n is blended
// with a zone of width b. It returns the opposite-edge coordinate to blend
// with and the weight of i's own sample; ok is false when i lies outside
// both zones and keeps its value.
//
// On the leading edge i in [0,b) pairs with n-b+i. On the trailing edge the
// mirrored index x = n-1-i pairs with b-1-x. In both cases the self weight
// is x/b, so the outermost sample takes the opposite edge in full.
func BlendSource(i, n, b int) (opposite int, self float64, ok bool) {
	if b <= 0 || i < 0 || i >= n {
		return 0, 0, false
	}
	if i < b {
		return n - b + i, float64(i) / float64(b), true
	}
	if x := n - 1 - i; x < b {
		return b - 1 - x, float64(x) / float64(b), true
	}
	return 0, 0, false
}

// EdgeBlendTransform cross-fades each edge with the opposite edge over a
// zone of min(w,h)/8 pixels. Columns are blended first, then rows are
// blended over the column result, so corners receive both passes. Both
// passes run on a float64 plane; samples are truncated to 8 bits once, at
// the end.
type EdgeBlendTransform struct{}

// Method returns Blend
func (EdgeBlendTransform) Method() Method { return Blend }

// Apply implements Transform
func (EdgeBlendTransform) Apply(src *Buffer) *Buffer {
	b := BlendWidth(src.Width, src.Height)
	if b == 0 {
		return src.Clone()
	}

	p := newPlane(src)
	p = p.blendColumns(b).blendRows(b)

	dst := mustBuffer(src.Width, src.Height, src.Channels)
	for i, v := range p.pix {
		dst.Pix[i] = clamp8(v)
	}
	return dst
}

// plane is a Buffer widened to float64 so intermediate passes keep their
// fractional part
type plane struct {
	width, height, channels int
	pix                     []float64
}

func newPlane(src *Buffer) plane {
	pix := make([]float64, len(src.Pix))
	for i, v := range src.Pix {
		pix[i] = float64(v)
	}
	return plane{width: src.Width, height: src.Height, channels: src.Channels, pix: pix}
}

func (p plane) clone() plane {
	c := p
	c.pix = slices.Clone(p.pix)
	return c
}

func (p plane) offset(x, y int) int {
	return (y*p.width + x) * p.channels
}

// blendColumns runs the horizontal pass. Reads come from p only.
func (p plane) blendColumns(b int) plane {
	dst := p.clone()
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			ox, f, ok := BlendSource(x, p.width, b)
			if !ok {
				continue
			}
			p.mix(dst.pix, p.offset(x, y), p.offset(ox, y), f)
		}
	}
	return dst
}

// blendRows runs the vertical pass. Reads come from p only.
func (p plane) blendRows(b int) plane {
	dst := p.clone()
	for y := 0; y < p.height; y++ {
		oy, f, ok := BlendSource(y, p.height, b)
		if !ok {
			continue
		}
		for x := 0; x < p.width; x++ {
			p.mix(dst.pix, p.offset(x, y), p.offset(x, oy), f)
		}
	}
	return dst
}

// mix writes f*self + (1-f)*other into out at self. The lerp form keeps
// the result exact when both samples are equal.
func (p plane) mix(out []float64, self, other int, f float64) {
	for c := 0; c < p.channels; c++ {
		s, o := p.pix[self+c], p.pix[other+c]
		out[self+c] = o + f*(s-o)
	}
}
