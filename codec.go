package tileable

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is used when SaveOptions leaves the quality unset
const DefaultJPEGQuality = 95

// SaveOptions tunes the encoders
type SaveOptions struct {
	JPEGQuality int
}

// Load reads and decodes the image at path
func Load(path string) (*Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes any registered image format into a Buffer
func Decode(r io.Reader) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return FromImage(img), nil
}

// Encode writes buf to w in the given format
func Encode(w io.Writer, buf *Buffer, format imaging.Format, opts SaveOptions) error {
	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, buf.Image(), format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// FormatFor infers the output format from the extension of path
func FormatFor(path string) (imaging.Format, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return format, nil
}

// Save encodes buf to path using default options
func Save(buf *Buffer, path string) error {
	return SaveWithOptions(buf, path, SaveOptions{})
}

// SaveWithOptions encodes buf to path, picking the format from the
// extension. A partially written file is removed on failure.
func SaveWithOptions(buf *Buffer, path string, opts SaveOptions) error {
	format, err := FormatFor(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", ErrEncode, err)
	}

	if err := Encode(f, buf, format, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
