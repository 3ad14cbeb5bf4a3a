/*
Package tileable turns a single raster image into a texture that repeats
edge-to-edge without a visible seam.

Four independent methods are provided, each a pure function from one Buffer
to a new Buffer:

  - Offset: roll the image by half its width and height and average the
    rolled copy with the original
  - Mirror: place the image and its three reflections on a 2x2 canvas
  - Blend: cross-fade every edge with the opposite edge over a zone of
    min(w,h)/8 pixels (the default)
  - Patch: copy the band just inside each edge over the opposite edge band,
    min(w,h)/16 pixels wide

Basic Usage:

	buf, err := tileable.Load("stone.png")
	if err != nil {
	    log.Fatal(err)
	}

	out, err := tileable.Apply(tileable.Blend, buf)
	if err != nil {
	    log.Fatal(err)
	}

	if err := tileable.Save(out, tileable.OutputPath("stone.png")); err != nil {
	    log.Fatal(err)
	}

Previewing:

	// Repeat the result 2x2 to inspect the seams
	preview := tileable.Preview(out)
	tileable.Save(preview, tileable.PreviewPath("stone_tileable.png"))

Buffers keep the channel mode of the decoded image (gray, RGB or RGBA) and
every transform works on each channel independently.
*/
package tileable
