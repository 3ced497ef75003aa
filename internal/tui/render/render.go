// Package render draws the rows of the preferences editor.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/network"
	"github.com/charmbracelet/lipgloss"
)

const (
	cursorWidth      = 2
	defaultNameWidth = 32
	minNameWidth     = 8
	ageWidth         = 6
	spacesBetween    = 4
	optionOn         = "●"
	optionOff        = "○"
)

// RowState defines the inputs needed to render one network row.
type RowState struct {
	Entry    network.Entry
	Width    int
	Selected bool
	Now      time.Time
}

// Title renders the editor heading.
func Title() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue))).
		Render("AutoMute preferences")
}

// Header renders the column header.
func Header(width int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	header := fmt.Sprintf("%-*s%-*s  %-*s  %s",
		cursorWidth, "",
		nameWidth(width), "NETWORK",
		ageWidth, "SEEN",
		"WHEN CONNECTED",
	)
	return headerStyle.Render(header)
}

// Row renders a single network row with its action selector.
func Row(state RowState) string {
	rowStyle := lipgloss.NewStyle()
	cursor := "  "
	if state.Selected {
		rowStyle = rowStyle.Bold(true)
		cursor = "> "
	}

	nameStyle := lipgloss.NewStyle()
	if state.Entry.IsNotConnected() {
		nameStyle = nameStyle.Italic(true)
	}

	width := nameWidth(state.Width)
	name := fmt.Sprintf("%-*s", width, truncate(state.Entry.DisplayName(), width))
	age := fmt.Sprintf("%-*s", ageWidth, calculateAge(state.Entry.LastConnected, state.Now))

	return rowStyle.Render(cursor+nameStyle.Render(name)+"  "+age+"  ") + Selector(state.Entry.Action, state.Selected)
}

// Selector renders the three-way action choice with the current one marked.
func Selector(current action.Action, selected bool) string {
	on := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
	if selected {
		on = on.Bold(true)
	}
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	parts := make([]string, 0, len(action.All))
	for _, a := range action.All {
		if a == current {
			parts = append(parts, on.Render(optionOn+" "+a.Description()))
			continue
		}
		parts = append(parts, off.Render(optionOff+" "+a.Description()))
	}
	return strings.Join(parts, "  ")
}

// Status renders a transient message line; errors are shown in red.
func Status(message string, isError bool) string {
	if message == "" {
		return ""
	}
	color := colors.Green
	if isError {
		color = colors.Red
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color))).Render(message)
}

func nameWidth(width int) int {
	if width <= 0 {
		return defaultNameWidth
	}
	// Leave room for the age column and a selector of about 40 cells.
	w := width - cursorWidth - ageWidth - spacesBetween - 40
	if w < minNameWidth {
		return minNameWidth
	}
	if w > defaultNameWidth {
		return defaultNameWidth
	}
	return w
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}

func calculateAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}

	duration := now.Sub(t)
	if duration < 0 {
		duration = 0
	}

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh", int(duration.Hours()))
	}
	return fmt.Sprintf("%dd", int(duration.Hours()/24))
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
