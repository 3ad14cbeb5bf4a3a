package termview

import (
	"fmt"
	"strings"
)

// Protocol identifies a terminal image protocol
type Protocol int

const (
	Unsupported Protocol = iota
	Auto
	Kitty
	Sixel
	ITerm2
	Halfblocks
)

var protocolNames = map[Protocol]string{
	Unsupported: "unsupported",
	Auto:        "auto",
	Kitty:       "kitty",
	Sixel:       "sixel",
	ITerm2:      "iterm2",
	Halfblocks:  "halfblocks",
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// ParseProtocol converts a protocol name into a Protocol
func ParseProtocol(s string) (Protocol, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Auto, nil
	}
	for p, n := range protocolNames {
		if n == name && p != Unsupported {
			return p, nil
		}
	}
	return Unsupported, fmt.Errorf("unknown protocol %q (choose from auto, kitty, sixel, iterm2, halfblocks)", s)
}

// Set implements pflag.Value
func (p *Protocol) Set(s string) error {
	parsed, err := ParseProtocol(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type implements pflag.Value
func (p *Protocol) Type() string {
	return "protocol"
}
