package termview

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// QueryTimeout bounds how long QueryCellSize waits for the terminal to answer
const QueryTimeout = 100 * time.Millisecond

var (
	cellSizeOnce    sync.Once
	cellW, cellH    int
	cellSizeQueried bool
)

// QueryCellSize asks the terminal for the pixel size of one character cell
// with CSI 16t. The answer is cached for the life of the process.
func QueryCellSize() (width, height int, ok bool) {
	cellSizeOnce.Do(func() {
		if !querySupported() {
			return
		}
		cellW, cellH, cellSizeQueried = queryCellSize()
	})
	return cellW, cellH, cellSizeQueried
}

func queryCellSize() (int, int, bool) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, false
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(wrapTmuxPassthrough("\x1b[16t")); err != nil {
		return 0, 0, false
	}

	type reply struct {
		w, h int
		ok   bool
	}
	replies := make(chan reply, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err != nil || n == 0 {
			replies <- reply{}
			return
		}
		w, h, ok := parseCellSizeReply(string(buf[:n]))
		replies <- reply{w, h, ok}
	}()

	select {
	case r := <-replies:
		return r.w, r.h, r.ok
	case <-time.After(QueryTimeout):
		return 0, 0, false
	}
}

// parseCellSizeReply parses "CSI 6 ; height ; width t"
func parseCellSizeReply(s string) (width, height int, ok bool) {
	i := strings.Index(s, "\x1b[6;")
	if i < 0 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(s[i:], "\x1b[6;%d;%dt", &height, &width); err != nil {
		return 0, 0, false
	}
	// anything outside this range is a bogus reply
	if width < 4 || width > 50 || height < 4 || height > 50 {
		return 0, 0, false
	}
	return width, height, true
}

// querySupported reports whether stdout is a terminal likely to answer CSI queries
func querySupported() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal", "vscode":
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
