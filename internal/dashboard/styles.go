package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/autoneura/console/internal/api"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}).
			Underline(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	statusActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})

	statusPausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	kpiValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	planActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})

	userMsgStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "13"})

	assistantMsgStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
)

// FrameBorder returns the style for the content area border.
func FrameBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// statusLabel renders a campaign status the way the web dashboard does:
// a colored dot plus the label, padded to a fixed cell width so table
// columns stay aligned despite the escape codes.
func statusLabel(status string) string {
	switch status {
	case api.StatusActive:
		return statusActiveStyle.Render(fmt.Sprintf("%-9s", "● Active"))
	case api.StatusPaused:
		return statusPausedStyle.Render(fmt.Sprintf("%-9s", "● Paused"))
	default:
		return mutedText.Render(fmt.Sprintf("%-9s", "● "+status))
	}
}
