package tileable

import "errors"

var (
	// ErrInputNotFound is returned when the input path does not exist
	ErrInputNotFound = errors.New("input file not found")
	// ErrDecode is returned when the input exists but is not a readable image
	ErrDecode = errors.New("failed to decode image")
	// ErrEncode is returned when the output cannot be written
	ErrEncode = errors.New("failed to encode image")
	// ErrUnsupportedFormat is returned when a file extension maps to no encoder
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrInvalidMethod is returned for an unknown method name
	ErrInvalidMethod = errors.New("invalid method")
	// ErrInvalidDimensions is returned for non-positive sizes or unsupported channel counts
	ErrInvalidDimensions = errors.New("invalid dimensions")
)
