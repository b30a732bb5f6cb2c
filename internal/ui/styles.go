package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	Title   = lipgloss.NewStyle().Bold(true)
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	Accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	Muted   = lipgloss.NewStyle().Faint(true)
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	Selected = lipgloss.NewStyle().Bold(true).Reverse(true)
	Help     = lipgloss.NewStyle().Faint(true)

	symCheck = "✔"
	symCross = "✖"
	symWarn  = "!"
)

func OK(msg string) {
	fmt.Println(Success.Render(symCheck + " " + msg))
}

func Warn(msg string) {
	fmt.Println(Pending.Render(symWarn + " " + msg))
}

func Fail(msg string) {
	fmt.Fprintln(os.Stderr, Error.Render(symCross+" "+msg))
}

func Info(msg string) {
	fmt.Println(Muted.Render(msg))
}

// Panel draws a rounded framed box around the given lines.
func Panel(lines []string) {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	fmt.Println(border.Render(strings.Join(lines, "\n")))
}
