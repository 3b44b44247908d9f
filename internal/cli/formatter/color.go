package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style for a display status.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleBlue
	case domain.StatusOverdue:
		return StyleRed
	default:
		return StyleFg
	}
}

// StatusBadge renders a colored status label such as "● Pågående".
func StatusBadge(s domain.Status) string {
	return StatusStyle(s).Render("● " + string(s))
}

// PriorityStyle returns the style for a checklist priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityLow:
		return StyleDim
	default:
		return StyleYellow
	}
}

// DeadlineMark flags a passed or close deadline. It is empty otherwise.
func DeadlineMark(ts domain.TimeState) string {
	switch {
	case ts.IsOverdue:
		return StyleRed.Render("!")
	case ts.IsWarning:
		return StyleYellow.Render("⚠")
	default:
		return ""
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
