package termview

import (
	"os"
	"os/exec"
	"strings"
	"sync"
)

var tmuxPassthroughOnce sync.Once

// inTmux checks if running inside tmux
func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// enableTmuxPassthrough turns on allow-passthrough for the current pane,
// graphics protocols are swallowed by tmux otherwise
func enableTmuxPassthrough() {
	tmuxPassthroughOnce.Do(func() {
		cmd := exec.Command("tmux", "set", "-p", "allow-passthrough", "on")
		cmd.Stdin = nil
		cmd.Stdout = nil
		cmd.Stderr = nil
		_ = cmd.Run()
	})
}

// wrapTmuxPassthrough wraps an escape sequence for tmux passthrough if needed
func wrapTmuxPassthrough(output string) string {
	if !inTmux() || !strings.HasPrefix(output, "\x1b") {
		return output
	}
	// tmux passthrough format: \ePtmux;\e{escaped_sequence}\e\\
	// All \e (ESC) characters in the sequence must be doubled
	return "\x1bPtmux;" + strings.ReplaceAll(output, "\x1b", "\x1b\x1b") + "\x1b\\"
}
