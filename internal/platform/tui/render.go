package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

// RenderScreen styles the screen one color run at a time.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	run := make([]rune, 0, s.Width())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run = append(run, s.GetCell(x, y).Rune)
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(string(run)))
		}
	}
	return sb.String()
}

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))
	titleStyle    = statusStyle.Bold(true).Foreground(lipgloss.Color("10"))
	gameOverStyle = statusStyle.Bold(true).Foreground(lipgloss.Color("11"))
)

// renderStatus draws the one-line status bar under the LCD.
func renderStatus(title string, st core.Status, stats sched.Stats, width int) string {
	left := titleStyle.Render(" "+title+" ") +
		statusStyle.Render(fmt.Sprintf(" ticks %d  score %d  late %d ", st.Ticks, st.Score, stats.Late))
	if st.GameOver {
		left += gameOverStyle.Render(" GAME OVER ")
	}
	right := statusStyle.Render(st.Detail + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + statusStyle.Render(strings.Repeat(" ", gap)) + right
}
