// Package tui is an interactive picker that previews every tiling method on
// the loaded image before anything is written to disk.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blacktop/go-tileable"
	"github.com/blacktop/go-tileable/pkg/termview"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned by Run when the user quits without choosing
var ErrAborted = errors.New("aborted")

var (
	primaryColor = lipgloss.Color("#7D56F4")
	textColor    = lipgloss.Color("#FAFAFA")
	mutedColor   = lipgloss.Color("#626262")
	accentColor  = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF5F87")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			PaddingLeft(2).
			PaddingRight(2)

	activeMethodStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor).
				Background(primaryColor).
				PaddingLeft(1).
				PaddingRight(1)

	methodStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1).
			PaddingRight(1)

	legendStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1)

	legendKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// chrome is the number of rows taken by the title, method bar and legend
const chrome = 4

// resultMsg carries a finished transform back into Update
type resultMsg struct {
	method tileable.Method
	buf    *tileable.Buffer
	err    error
}

// Model is the bubbletea model behind the picker
type Model struct {
	name    string
	src     *tileable.Buffer
	method  tileable.Method
	tiled   bool
	results map[tileable.Method]*tileable.Buffer
	pending map[tileable.Method]bool

	width    int
	height   int
	rendered string
	err      error

	chosen  bool
	aborted bool
}

// New returns a picker over src starting at method. name is shown in the title.
func New(name string, src *tileable.Buffer, method tileable.Method) Model {
	return Model{
		name:    name,
		src:     src,
		method:  method,
		results: make(map[tileable.Method]*tileable.Buffer),
		pending: make(map[tileable.Method]bool),
	}
}

func transformCmd(method tileable.Method, src *tileable.Buffer) tea.Cmd {
	return func() tea.Msg {
		out, err := tileable.Apply(method, src)
		return resultMsg{method: method, buf: out, err: err}
	}
}

// Init starts the transform for the initial method
func (m Model) Init() tea.Cmd {
	m.pending[m.method] = true
	return transformCmd(m.method, m.src)
}

// Update handles key presses, resizes and finished transforms
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "left", "h":
			return m.selectMethod(m.method.Prev())
		case "right", "l", "tab":
			return m.selectMethod(m.method.Next())
		case "p":
			m.tiled = !m.tiled
			m.refresh()
		case "enter":
			if _, ok := m.results[m.method]; ok {
				m.chosen = true
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
	case resultMsg:
		delete(m.pending, msg.method)
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.results[msg.method] = msg.buf
		}
		if msg.method == m.method {
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) selectMethod(method tileable.Method) (tea.Model, tea.Cmd) {
	m.method = method
	m.err = nil
	m.refresh()
	if _, ok := m.results[method]; ok || m.pending[method] {
		return m, nil
	}
	m.pending[method] = true
	return m, transformCmd(method, m.src)
}

// refresh re-renders the current result into the cached halfblock string
func (m *Model) refresh() {
	m.rendered = ""
	out, ok := m.results[m.method]
	if !ok || m.width == 0 || m.height == 0 {
		return
	}
	if m.tiled {
		out = tileable.Preview(out)
	}
	s, err := (&termview.HalfblocksRenderer{}).Render(out.Image(), termview.Options{
		Columns: max(m.width, 1),
		Rows:    max(m.height-chrome, 1),
	})
	if err != nil {
		m.err = err
		return
	}
	m.rendered = s
}

// View draws the title, the method bar, the preview and the key legend
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	title := fmt.Sprintf("tileable - %s (%dx%d)", m.name, m.src.Width, m.src.Height)
	if m.tiled {
		title += " [2x2]"
	}
	b.WriteString(titleStyle.Width(m.width).Render(title))
	b.WriteString("\n")

	var methods []string
	for _, method := range tileable.Methods() {
		if method == m.method {
			methods = append(methods, activeMethodStyle.Render(method.String()))
		} else {
			methods = append(methods, methodStyle.Render(method.String()))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, methods...))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.rendered == "":
		b.WriteString(methodStyle.Render("Rendering " + m.method.String() + "..."))
	default:
		b.WriteString(m.rendered)
	}
	b.WriteString("\n")

	legend := []string{
		legendKeyStyle.Render("←/→") + " method",
		legendKeyStyle.Render("p") + " 2x2 preview",
		legendKeyStyle.Render("enter") + " save",
		legendKeyStyle.Render("q/esc") + " quit",
	}
	b.WriteString(legendStyle.Width(m.width).Render(strings.Join(legend, " • ")))

	return b.String()
}

// Method returns the currently selected method
func (m Model) Method() tileable.Method {
	return m.method
}

// Result returns the chosen method and its output once the user pressed enter
func (m Model) Result() (tileable.Method, *tileable.Buffer, bool) {
	if !m.chosen {
		return m.method, nil, false
	}
	return m.method, m.results[m.method], true
}

// Run shows the picker and blocks until the user saves or quits
func Run(name string, src *tileable.Buffer, method tileable.Method) (tileable.Method, *tileable.Buffer, error) {
	final, err := tea.NewProgram(New(name, src, method), tea.WithAltScreen()).Run()
	if err != nil {
		return method, nil, fmt.Errorf("picker failed: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return method, nil, fmt.Errorf("picker returned unexpected model %T", final)
	}
	chosen, out, ok := fm.Result()
	if !ok {
		return chosen, nil, ErrAborted
	}
	return chosen, out, nil
}
