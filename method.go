package tileable

import (
	"fmt"
	"strings"
)

// Method selects one of the tiling transforms
type Method int

const (
	// Blend is the default and blends opposite edges together
	Blend Method = iota
	// Offset shifts the image by half its size and averages it with itself
	Offset
	// Mirror builds a 2x2 canvas of flipped copies
	Mirror
	// Patch copies interior bands over the opposite edges
	Patch
)

var methodNames = map[Method]string{
	Offset: "offset",
	Mirror: "mirror",
	Blend:  "blend",
	Patch:  "patch",
}

// Methods returns every method in presentation order
func Methods() []Method {
	return []Method{Offset, Mirror, Blend, Patch}
}

// MethodNames returns the accepted names in presentation order
func MethodNames() []string {
	names := make([]string, 0, len(methodNames))
	for _, m := range Methods() {
		names = append(names, m.String())
	}
	return names
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts a method name into a Method
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w %q (choose from %s)", ErrInvalidMethod, s, strings.Join(MethodNames(), ", "))
}

// Set implements pflag.Value
func (m *Method) Set(s string) error {
	parsed, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *Method) Type() string {
	return "method"
}

// Next returns the method following m, wrapping around
func (m Method) Next() Method {
	all := Methods()
	for i, v := range all {
		if v == m {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev returns the method preceding m, wrapping around
func (m Method) Prev() Method {
	all := Methods()
	for i, v := range all {
		if v == m {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}
