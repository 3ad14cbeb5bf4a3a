// Package termview prints images inline in terminal emulators using the
// Kitty graphics protocol, Sixel, iTerm2 inline images or Unicode
// halfblocks as a fallback. Images are fitted to the terminal (or an
// explicit cell box) before encoding, and graphics escapes are wrapped for
// tmux passthrough when needed.
package termview
