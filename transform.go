package tileable

import "fmt"

// Transform is the interface all tiling methods implement. Apply never
// mutates its input and always returns a fresh buffer.
type Transform interface {
	// Apply produces the tileable version of src
	Apply(src *Buffer) *Buffer

	// Method returns the method the transform implements
	Method() Method
}

// GetTransform returns the transform for the specified method
func GetTransform(m Method) (Transform, error) {
	switch m {
	case Offset:
		return OffsetTransform{}, nil
	case Mirror:
		return MirrorTransform{}, nil
	case Blend:
		return EdgeBlendTransform{}, nil
	case Patch:
		return PatchCopyTransform{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, m)
	}
}

// Apply runs the transform for m over src
func Apply(m Method, src *Buffer) (*Buffer, error) {
	t, err := GetTransform(m)
	if err != nil {
		return nil, err
	}
	return t.Apply(src), nil
}

// clamp8 clamps v into a sample, truncating the fractional part
func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
