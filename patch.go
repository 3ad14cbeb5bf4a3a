package tileable

// PatchSize returns the patch-copy band width for a w x h image
func PatchSize(w, h int) int {
	return min(w, h) / 16
}

// PatchCopyTransform overwrites each edge band of min(w,h)/16 pixels with
// the band just inside the opposite edge. The copies run in a fixed order
// on a working copy: left, right, top, bottom. The row copies take whole
// rows of the working copy, so the corners carry the already patched
// columns.
type PatchCopyTransform struct{}

// Method returns Patch
func (PatchCopyTransform) Method() Method { return Patch }

// Apply implements Transform
func (PatchCopyTransform) Apply(src *Buffer) *Buffer {
	dst := src.Clone()
	p := PatchSize(src.Width, src.Height)
	if p == 0 {
		return dst
	}
	w, h := src.Width, src.Height

	copyColumns(dst, 0, w-2*p, p)
	copyColumns(dst, w-p, p, p)
	copyRows(dst, 0, h-2*p, p)
	copyRows(dst, h-p, p, p)
	return dst
}

// copyColumns copies n columns starting at from onto the columns starting at to
func copyColumns(b *Buffer, to, from, n int) {
	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		copy(row[to*b.Channels:(to+n)*b.Channels], row[from*b.Channels:(from+n)*b.Channels])
	}
}

// copyRows copies n rows starting at from onto the rows starting at to
func copyRows(b *Buffer, to, from, n int) {
	for i := 0; i < n; i++ {
		copy(b.Row(to+i), b.Row(from+i))
	}
}
