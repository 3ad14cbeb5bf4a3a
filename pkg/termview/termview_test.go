package termview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRendererTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// Create a simple gradient pattern
	for y := range height {
		for x := range width {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8((x + y) % 255),
				A: 255,
			})
		}
	}
	return img
}

// clearTerminalEnv isolates detection from the terminal running the tests
func clearTerminalEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"TERM", "TERM_PROGRAM", "TERM_PROGRAM_VERSION", "TERMINFO", "KITTY_WINDOW_ID",
		"LC_TERMINAL", "ITERM_SESSION_ID", "XTERM_VERSION", "TMUX",
	} {
		t.Setenv(env, "")
	}
}

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected Protocol
	}{
		{
			name:     "Kitty terminal via TERM",
			envVars:  map[string]string{"TERM": "xterm-kitty"},
			expected: Kitty,
		},
		{
			name:     "Kitty terminal via KITTY_WINDOW_ID",
			envVars:  map[string]string{"KITTY_WINDOW_ID": "1"},
			expected: Kitty,
		},
		{
			name:     "Ghostty",
			envVars:  map[string]string{"TERM_PROGRAM": "ghostty"},
			expected: Kitty,
		},
		{
			name:     "iTerm2 terminal",
			envVars:  map[string]string{"TERM_PROGRAM": "iTerm.app"},
			expected: ITerm2,
		},
		{
			name:     "WezTerm terminal",
			envVars:  map[string]string{"TERM_PROGRAM": "WezTerm"},
			expected: ITerm2,
		},
		{
			name:     "foot",
			envVars:  map[string]string{"TERM": "foot"},
			expected: Sixel,
		},
		{
			name:     "Unknown terminal falls back to halfblocks",
			envVars:  map[string]string{"TERM": "xterm-256color"},
			expected: Halfblocks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTerminalEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, DetectProtocol())
		})
	}
}

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		in      string
		want    Protocol
		wantErr bool
	}{
		{in: "", want: Auto},
		{in: "auto", want: Auto},
		{in: "Kitty", want: Kitty},
		{in: "sixel", want: Sixel},
		{in: "iterm2", want: ITerm2},
		{in: "halfblocks", want: Halfblocks},
		{in: "unsupported", wantErr: true},
		{in: "vt100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProtocol(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetRenderer(t *testing.T) {
	tests := []struct {
		name     string
		protocol Protocol
		wantErr  bool
	}{
		{name: "Kitty renderer", protocol: Kitty},
		{name: "iTerm2 renderer", protocol: ITerm2},
		{name: "Sixel renderer", protocol: Sixel},
		{name: "Halfblocks renderer", protocol: Halfblocks},
		{name: "Auto protocol", protocol: Auto},
		{name: "Unsupported protocol", protocol: Unsupported, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := GetRenderer(tt.protocol)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestRendererBasicFunctionality(t *testing.T) {
	clearTerminalEnv(t)
	img := createRendererTestImage(20, 20)
	opts := Options{Columns: 10, Rows: 10, FontWidth: 8, FontHeight: 16}

	for _, protocol := range []Protocol{Kitty, ITerm2, Sixel, Halfblocks} {
		t.Run(fmt.Sprintf("Renderer_%s", protocol), func(t *testing.T) {
			renderer, err := GetRenderer(protocol)
			require.NoError(t, err)
			assert.Equal(t, protocol, renderer.Protocol())

			output, err := renderer.Render(img, opts)
			require.NoError(t, err)
			assert.NotEmpty(t, output)

			switch protocol {
			case Kitty:
				assert.True(t, strings.HasPrefix(output, "\x1b_Ga=T,f=100"))
				assert.True(t, strings.HasSuffix(output, "\x1b\\"))
			case ITerm2:
				assert.True(t, strings.HasPrefix(output, "\x1b]1337;File="))
				assert.True(t, strings.HasSuffix(output, "\x07"))
			case Sixel:
				assert.True(t, strings.HasPrefix(output, "\x1bP"))
			case Halfblocks:
				assert.Contains(t, output, "\x1b[")
			}
		})
	}
}

func TestKittyChunking(t *testing.T) {
	clearTerminalEnv(t)

	// noise compresses badly so the PNG spans several chunks
	img := image.NewNRGBA(image.Rect(0, 0, 96, 96))
	seed := uint32(1)
	for i := range img.Pix {
		seed = seed*1664525 + 1013904223
		img.Pix[i] = uint8(seed >> 24)
	}

	out, err := (&KittyRenderer{}).Render(img, Options{Columns: 12, Rows: 6, FontWidth: 8, FontHeight: 16})
	require.NoError(t, err)

	seqs := strings.Split(strings.TrimSuffix(out, "\x1b\\"), "\x1b\\")
	require.Greater(t, len(seqs), 1, "payload should be chunked")

	var payload strings.Builder
	for i, seq := range seqs {
		header, data, ok := strings.Cut(seq, ";")
		require.True(t, ok)
		assert.LessOrEqual(t, len(data), CHUNK_SIZE)
		if i == len(seqs)-1 {
			assert.True(t, strings.HasSuffix(header, "m=0"), "last chunk ends the transfer")
		} else {
			assert.True(t, strings.HasSuffix(header, "m=1"), "chunk %d continues the transfer", i)
		}
		payload.WriteString(data)
	}

	raw, err := base64.StdEncoding.DecodeString(payload.String())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}

func TestChunkedBase64Encode(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantChunks int
	}{
		{name: "empty", size: 0, wantChunks: 1},
		{name: "single chunk", size: 100, wantChunks: 1},
		{name: "exactly one chunk", size: 3 * CHUNK_SIZE / 4, wantChunks: 1},
		{name: "one byte over", size: 3*CHUNK_SIZE/4 + 1, wantChunks: 2},
		{name: "many chunks", size: 32000, wantChunks: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte("t"), tt.size)
			chunks := ChunkedBase64Encode(data, CHUNK_SIZE)
			require.Len(t, chunks, tt.wantChunks)
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c), CHUNK_SIZE)
			}
			assert.Equal(t, base64.StdEncoding.EncodeToString(data), strings.Join(chunks, ""))
		})
	}
}

func TestWrapTmuxPassthrough(t *testing.T) {
	clearTerminalEnv(t)
	assert.Equal(t, "\x1b_Ga=d\x1b\\", wrapTmuxPassthrough("\x1b_Ga=d\x1b\\"))

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	assert.Equal(t, "\x1bPtmux;\x1b\x1b_Ga=d\x1b\x1b\\\x1b\\", wrapTmuxPassthrough("\x1b_Ga=d\x1b\\"))
	assert.Equal(t, "plain", wrapTmuxPassthrough("plain"))
}

func TestFitPixels(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{name: "downscale keeps aspect", w: 400, h: 200, maxW: 100, maxH: 100, wantW: 100, wantH: 50},
		{name: "upscale by integer factor", w: 16, h: 8, maxW: 100, maxH: 100, wantW: 96, wantH: 48},
		{name: "already fits", w: 60, h: 60, maxW: 100, maxH: 100, wantW: 60, wantH: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := fitPixels(createRendererTestImage(tt.w, tt.h), tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}
}

func TestHalfblockSize(t *testing.T) {
	cols, rows := halfblockSize(image.Rect(0, 0, 64, 64), 80, 24)
	assert.Equal(t, 48, cols)
	assert.Equal(t, 24, rows)

	cols, rows = halfblockSize(image.Rect(0, 0, 200, 50), 80, 24)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 10, rows)
}

func TestPrint(t *testing.T) {
	clearTerminalEnv(t)
	var buf bytes.Buffer
	err := Print(&buf, createRendererTestImage(8, 8), Halfblocks, Options{Columns: 8, Rows: 4})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	err = Print(&buf, createRendererTestImage(8, 8), Unsupported, Options{})
	assert.Error(t, err)
}

func TestParseCellSizeReply(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		w, h  int
		valid bool
	}{
		{name: "plain", in: "\x1b[6;18;9t", w: 9, h: 18, valid: true},
		{name: "leading noise", in: "junk\x1b[6;20;10t", w: 10, h: 20, valid: true},
		{name: "wrong reply", in: "\x1b[4;600;800t"},
		{name: "truncated", in: "\x1b[6;18"},
		{name: "absurd size", in: "\x1b[6;200;100t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := parseCellSizeReply(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.w, w)
				assert.Equal(t, tt.h, h)
			}
		})
	}
}
