package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ColorMode selects whether Console emits ANSI styling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Console writes "[TAG] message" lines, coloured by tag.
type Console struct {
	out    io.Writer
	color  bool
	pass   lipgloss.Style
	fail   lipgloss.Style
	info   lipgloss.Style
	border lipgloss.Style
}

// NewConsole creates a console reporter writing to out. With ColorAuto,
// colour is enabled only when out is a terminal.
func NewConsole(out io.Writer, mode ColorMode) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:    out,
		color:  useColor(out, mode),
		pass:   r.NewStyle().Foreground(lipgloss.Color("34")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		info:   r.NewStyle().Foreground(lipgloss.Color("39")),
		border: r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Log implements Reporter.
func (c *Console) Log(message string, tag Tag, border ...string) {
	line := c.format(message, tag)
	b := strings.Trim(borderOf(border), "\n")
	if b != "" {
		fmt.Fprintln(c.out, c.paint(c.border, b))
	}
	fmt.Fprintln(c.out, line)
}

func (c *Console) format(message string, tag Tag) string {
	switch tag {
	case TagPass, TagTrue:
		return c.paint(c.pass, fmt.Sprintf("[%s] %s", tag, message))
	case TagFail, TagFalse:
		return c.paint(c.fail, fmt.Sprintf("[%s] %s", tag, message))
	case TagInfo:
		return c.paint(c.info, fmt.Sprintf("[%s] %s", tag, message))
	case "":
		return message
	default:
		return fmt.Sprintf("[%s] %s", tag, message)
	}
}

func (c *Console) paint(style lipgloss.Style, s string) string {
	if !c.color {
		return s
	}
	return style.Render(s)
}
