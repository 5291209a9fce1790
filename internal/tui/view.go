package tui

import (
	"fmt"
	"strings"

	"github.com/Zacy-Sokach/ContentGen/internal/content"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("✨ AI Content Generator"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("Create amazing content in seconds"))
	sb.WriteString("\n\n")

	sb.WriteString(cardStyle.Width(m.width - 2).Render(m.formView()))
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString(errorStyle.Width(m.width - 2).Render("✗ " + m.errMsg))
		sb.WriteString("\n")
	}

	// 请求进行中不展示旧结果
	if !m.result.Empty() && !m.loading {
		sb.WriteString(resultCardStyle.Width(m.width - 2).Render(m.resultView()))
		sb.WriteString("\n")
	}

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = statusErrorStyle
		}
		sb.WriteString(style.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString(m.helpView())
	return sb.String()
}

func (m Model) formView() string {
	var sb strings.Builder

	sb.WriteString(m.label("Topic", focusTopic))
	sb.WriteString(m.topic.View())
	sb.WriteString("\n")

	ct := content.ContentTypes[m.contentTypeIdx]
	sb.WriteString(m.selectRow("Content type", focusContentType, ct.Label()))
	tone := content.Tones[m.toneIdx]
	sb.WriteString(m.selectRow("Tone", focusTone, tone.Label()))
	length := content.Lengths[m.lengthIdx]
	sb.WriteString(m.selectRow("Length", focusLength, length.Label()))

	sb.WriteString("\n")
	sb.WriteString(m.buttonView())
	return sb.String()
}

func (m Model) label(text string, f focusIndex) string {
	if m.focus == f {
		return focusedLabelStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) selectRow(text string, f focusIndex, value string) string {
	v := optionStyle.Render(value)
	if m.focus == f {
		v = "◂ " + v + " ▸"
	}
	return m.label(text, f) + v + "\n"
}

func (m Model) buttonView() string {
	if m.loading {
		return disabledButtonStyle.Render(m.spinner.View() + " Generating...")
	}
	text := "🚀 Generate Content"
	switch {
	case m.SubmitDisabled():
		return disabledButtonStyle.Render(text)
	case m.focus == focusSubmit:
		return focusedButtonStyle.Render(text)
	default:
		return buttonStyle.Render(text)
	}
}

func (m Model) resultView() string {
	var sb strings.Builder
	sb.WriteString(successTitleStyle.Render("✓ Generated Content"))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n\n")

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		"Words: ", statStyle.Render(fmt.Sprint(m.result.WordCount)),
		"    Characters: ", statStyle.Render(fmt.Sprint(m.result.CharCount)),
	)
	sb.WriteString(stats)
	sb.WriteString("\n")
	sb.WriteString(m.help.ShortHelpView(m.keys.resultHelp()))
	return sb.String()
}

func (m Model) helpView() string {
	if m.loading {
		return subtitleStyle.Render("Generating content... ") + m.help.ShortHelpView(m.keys.ShortHelp()[3:])
	}
	help := m.help.View(m.keys)
	if m.endpoint != "" {
		help += "\n" + subtitleStyle.Render("endpoint: "+m.endpoint)
	}
	return help
}

// wrapText 按宽度折行
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
