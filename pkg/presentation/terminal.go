package presentation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	destructive = lipgloss.Color("#e53935")
	primary     = lipgloss.Color("#4f46e5")
	muted       = lipgloss.Color("#6b7280")

	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(1, 3).Align(lipgloss.Center)

	errorPanelStyle = panelStyle.BorderForeground(destructive)

	titleStyle      = lipgloss.NewStyle().Bold(true)
	errorTitleStyle = titleStyle.Foreground(destructive)
	keyStyle        = lipgloss.NewStyle().Bold(true)
	hintStyle       = lipgloss.NewStyle().Foreground(muted).Italic(true)
)

// RenderTerminal draws the modal for a terminal. A hidden modal renders as "".
func RenderTerminal(m Modal) string {
	switch m.View {
	case ViewResult:
		if m.Result == nil {
			return ""
		}
		body := strings.Join([]string{
			titleStyle.Render("Analysis result"),
			"",
			keyStyle.Render("Prediction: ") + m.Result.Label,
			keyStyle.Render("Probability: ") + m.Result.Probability,
		}, "\n")
		return panelStyle.Render(body)
	case ViewError:
		if m.Error == nil {
			return ""
		}
		body := strings.Join([]string{
			errorTitleStyle.Render("Error"),
			"",
			m.Error.Message,
			"",
			hintStyle.Render("Submit the form again to retry."),
		}, "\n")
		return errorPanelStyle.Render(body)
	default:
		return ""
	}
}
