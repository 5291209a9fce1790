package tui

import (
	"context"
	"time"

	"github.com/Zacy-Sokach/ContentGen/internal/content"
	"github.com/Zacy-Sokach/ContentGen/internal/logger"
	"github.com/Zacy-Sokach/ContentGen/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

func generateCmd(g Generator, input content.FormInput) tea.Cmd {
	return func() tea.Msg {
		result, err := g.GenerateResult(context.Background(), input)
		if err != nil {
			return GenerateErrorMsg{Input: input, Err: err}
		}
		return GenerateDoneMsg{Input: input, Result: result}
	}
}

func copyCmd(cb utils.ClipboardWriter, text string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Err: cb.WriteAll(text)}
	}
}

func exportCmd(dir, name string, data []byte) tea.Cmd {
	return func() tea.Msg {
		path, err := utils.WriteExport(dir, name, data)
		if err != nil {
			logger.Error(context.Background(), "export failed", err, "file", name)
			return ExportDoneMsg{Err: err}
		}
		logger.Info(context.Background(), "content exported", "path", path, "bytes", len(data))
		return ExportDoneMsg{Path: path}
	}
}

// setStatus 设置状态栏文本并在一段时间后自动清除
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
