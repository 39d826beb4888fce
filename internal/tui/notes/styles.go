package notes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/notetree/internal/workflow"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	treeStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	documentStyle = lipgloss.NewStyle().
			MarginLeft(1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1)

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	cursorStyle = focusedStyle.Copy()

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224")).
				Bold(true)

	activeRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF"))

	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#667")).
				Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FA0"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F55")).
			Bold(true)
)

func severityStyle(sev workflow.Severity) lipgloss.Style {
	switch sev {
	case workflow.SeverityWarning:
		return warningStyle
	case workflow.SeverityError:
		return errorStyle
	default:
		return infoStyle
	}
}

func renderHelpWithinWidth(width int, content string) string {
	if width <= 0 {
		return helpStyle.Render(content)
	}

	return helpStyle.Copy().
		Width(width).
		MaxWidth(width).
		Render(content)
}
