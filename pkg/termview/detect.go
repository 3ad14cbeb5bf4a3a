package termview

import (
	"os"
	"strings"
)

// DetectProtocol picks the best protocol the current terminal advertises.
// Detection only looks at the environment; halfblocks is the fallback.
func DetectProtocol() Protocol {
	switch {
	case KittySupported():
		return Kitty
	case ITerm2Supported():
		return ITerm2
	case SixelSupported():
		return Sixel
	default:
		return Halfblocks
	}
}

// KittySupported checks if the current terminal supports Kitty graphics protocol
func KittySupported() bool {
	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return true
	case strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty"):
		return true
	case os.Getenv("TERM_PROGRAM") == "ghostty":
		return true
	case strings.Contains(os.Getenv("TERMINFO"), "Ghostty"): // tmux
		return true
	case os.Getenv("TERM_PROGRAM") == "rio":
		return true
	}
	return false
}

// ITerm2Supported checks if iTerm2 inline images are supported
func ITerm2Supported() bool {
	termProgram := os.Getenv("TERM_PROGRAM")

	switch {
	case termProgram == "iTerm.app":
		return true
	case termProgram == "WezTerm":
		return true
	case termProgram == "vscode" && os.Getenv("TERM_PROGRAM_VERSION") != "":
		return true
	case termProgram == "mintty" || os.Getenv("TERM") == "mintty":
		return true
	case termProgram == "WarpTerminal":
		return true
	case strings.Contains(strings.ToLower(os.Getenv("LC_TERMINAL")), "iterm"):
		return true
	case os.Getenv("ITERM_SESSION_ID") != "":
		return true
	}
	return false
}

// SixelSupported checks if Sixel is supported in the current environment
func SixelSupported() bool {
	termEnv := os.Getenv("TERM")

	switch {
	case strings.Contains(termEnv, "sixel"):
		return true
	case strings.Contains(termEnv, "mlterm"):
		return true
	case strings.Contains(termEnv, "foot"):
		return true
	case strings.Contains(termEnv, "yaft"):
		return true
	case strings.Contains(termEnv, "xterm") && os.Getenv("XTERM_VERSION") != "":
		// xterm needs to be started with -ti 340
		return true
	case strings.Contains(os.Getenv("TERM_PROGRAM"), "mlterm"):
		return true
	}
	return false
}
