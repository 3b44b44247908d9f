package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes a day offset from today in Swedish.
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "idag"
	case days == 1:
		return "imorgon"
	case days == -1:
		return "igår"
	case days > 0 && days < 14:
		return fmt.Sprintf("om %d d", days)
	case days > 0:
		return fmt.Sprintf("om %d v", days/7)
	case days > -14:
		return fmt.Sprintf("%d d sedan", -days)
	default:
		return fmt.Sprintf("%d v sedan", -days/7)
	}
}

// DueText renders an ISO end date relative to today with urgency coloring.
// Missing or malformed dates render as a dash.
func DueText(endDate string, today time.Time) string {
	end, ok := calendar.ParseISO(endDate)
	if !ok {
		return Dim("–")
	}
	days := calendar.DaysBetween(today, end)
	text := RelativeDays(days)
	switch {
	case days < 0:
		return StyleRed.Render(text)
	case days <= 2:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DateRange renders "start → end", tolerating missing ends.
func DateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return Dim("inga datum")
	case start == "":
		return "→ " + end
	case end == "":
		return start + " →"
	default:
		return start + " → " + end
	}
}

// Truncate shortens s to n visible runes, ending with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// OrDash returns s, or a dim dash when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("–")
	}
	return s
}
