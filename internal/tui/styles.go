package tui

import "github.com/charmbracelet/lipgloss"

const maxContentWidth = 80

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	resultCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("10"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(14)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("12")).
				Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				Background(lipgloss.Color("14")).
				Bold(true)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)

	successTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("10")).
				Bold(true)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// Markdown 渲染样式
var (
	mdHeadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	mdStrongStyle = lipgloss.NewStyle().Bold(true)

	mdEmphStyle = lipgloss.NewStyle().Italic(true)

	mdDelStyle = lipgloss.NewStyle().Strikethrough(true)

	mdCodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	mdLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Underline(true)

	mdQuoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("8")).
			PaddingLeft(1)

	mdRuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)
