package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zacy-Sokach/ContentGen/internal/api"
	"github.com/Zacy-Sokach/ContentGen/internal/content"
	"github.com/Zacy-Sokach/ContentGen/internal/logger"
	"github.com/Zacy-Sokach/ContentGen/internal/utils"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// 面向用户的提示文本
const (
	msgEmptyTopic     = "Please enter a topic!"
	msgGenerateFailed = "Failed to generate content"
	msgCopied         = "Copied to clipboard!"
)

// Generator 发送一次生成请求，*api.Client 满足该接口
type Generator interface {
	GenerateResult(ctx context.Context, input content.FormInput) (content.GenerationResult, error)
}

// Options 创建 Model 所需的依赖
type Options struct {
	Generator Generator
	Clipboard utils.ClipboardWriter
	OutputDir string
	// Endpoint 仅用于界面展示
	Endpoint string
}

type focusIndex int

const (
	focusTopic focusIndex = iota
	focusContentType
	focusTone
	focusLength
	focusSubmit
	focusCount
)

type Model struct {
	topic          textinput.Model
	contentTypeIdx int
	toneIdx        int
	lengthIdx      int
	focus          focusIndex

	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	generator Generator
	clipboard utils.ClipboardWriter
	outputDir string
	endpoint  string

	result    content.GenerationResult
	loading   bool
	errMsg    string
	status    string
	statusErr bool
	statusSeq int

	width int
}

// InitialModel 创建表单的初始状态
func InitialModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter your topic..."
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	vp := viewport.New(maxContentWidth-4, 10)

	if opts.Clipboard == nil {
		opts.Clipboard = utils.SystemClipboard{}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	defaults := content.DefaultFormInput()

	return Model{
		topic:          ti,
		contentTypeIdx: indexOf(content.ContentTypes, defaults.ContentType),
		toneIdx:        indexOf(content.Tones, defaults.Tone),
		lengthIdx:      indexOf(content.Lengths, defaults.Length),
		focus:          focusTopic,
		spinner:        sp,
		viewport:       vp,
		help:           help.New(),
		keys:           defaultKeyMap(),
		generator:      opts.Generator,
		clipboard:      opts.Clipboard,
		outputDir:      opts.OutputDir,
		endpoint:       opts.Endpoint,
		width:          maxContentWidth,
	}
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// FormInput 返回当前表单的值
func (m Model) FormInput() content.FormInput {
	return content.FormInput{
		Topic:       m.topic.Value(),
		ContentType: content.ContentTypes[m.contentTypeIdx],
		Tone:        content.Tones[m.toneIdx],
		Length:      content.Lengths[m.lengthIdx],
	}
}

// Result 当前展示的生成结果
func (m Model) Result() content.GenerationResult {
	return m.result
}

// Loading 是否有请求正在进行
func (m Model) Loading() bool {
	return m.loading
}

// ErrorMessage 当前错误提示
func (m Model) ErrorMessage() string {
	return m.errMsg
}

// Status 当前状态栏文本
func (m Model) Status() string {
	return m.status
}

// SubmitDisabled 请求进行中或主题为空时禁用提交按钮
func (m Model) SubmitDisabled() bool {
	return m.loading || m.topic.Value() == ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = min(msg.Width, maxContentWidth)
		m.help.Width = m.width
		m.topic.Width = max(m.width-labelStyle.GetWidth()-8, 10)
		m.viewport.Width = max(m.width-4, 10)
		// 表单与统计区域大约占 22 行
		m.viewport.Height = max(msg.Height-22, 5)
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GenerateDoneMsg:
		logger.Debug(context.Background(), "generate done",
			"content_type", msg.Input.ContentType,
			"length", msg.Input.Length,
			"word_count", msg.Result.WordCount,
		)
		m.loading = false
		m.result = msg.Result
		m.refreshViewport()
		m.viewport.GotoTop()
		return m, nil

	case GenerateErrorMsg:
		logger.Warn(context.Background(), "generate failed",
			"topic", msg.Input.Topic,
			"content_type", msg.Input.ContentType,
			"tone", msg.Input.Tone,
			"length", msg.Input.Length,
			"error", msg.Err,
		)
		m.loading = false
		m.errMsg = errorMessage(msg.Err)
		return m, nil

	case CopyDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Copy failed: %v", msg.Err), true)
		}
		return m, m.setStatus(msgCopied, false)

	case ExportDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Download failed: %v", msg.Err), true)
		}
		return m, m.setStatus("Saved to "+msg.Path, false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.topic, cmd = m.topic.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Regenerate):
		if m.result.Empty() {
			return m, nil
		}
		return m, m.submit()

	case key.Matches(msg, m.keys.Copy):
		if m.result.Empty() || m.loading {
			return m, nil
		}
		return m, copyCmd(m.clipboard, m.result.Content)

	case key.Matches(msg, m.keys.Download):
		if m.result.Empty() || m.loading {
			return m, nil
		}
		return m, exportCmd(m.outputDir, content.FileName(m.topic.Value(), "txt"), []byte(m.result.Content))

	case key.Matches(msg, m.keys.ExportHTML):
		if m.result.Empty() || m.loading {
			return m, nil
		}
		title := strings.TrimSpace(m.topic.Value())
		return m, exportCmd(m.outputDir, content.FileName(title, "html"), content.RenderHTML(title, m.result.Content))

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Left) && m.focus != focusTopic:
		m.cycleOption(-1)
		return m, nil

	case key.Matches(msg, m.keys.Right) && m.focus != focusTopic:
		m.cycleOption(1)
		return m, nil

	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.focus != focusTopic {
		return m, nil
	}
	var cmd tea.Cmd
	m.topic, cmd = m.topic.Update(msg)
	return m, cmd
}

// submit 校验表单并发起一次请求。请求进行中时直接忽略，保证同一时刻最多一个请求。
func (m *Model) submit() tea.Cmd {
	if m.loading {
		return nil
	}

	m.errMsg = ""
	input := m.FormInput().Normalized()
	if err := input.Validate(); err != nil {
		if errors.Is(err, content.ErrEmptyTopic) {
			m.errMsg = msgEmptyTopic
		} else {
			m.errMsg = err.Error()
		}
		logger.Debug(context.Background(), "form validation failed", "error", err)
		return nil
	}
	if m.generator == nil {
		m.errMsg = msgGenerateFailed + ": no endpoint configured"
		return nil
	}

	m.loading = true
	return tea.Batch(m.spinner.Tick, generateCmd(m.generator, input))
}

func (m *Model) setFocus(f focusIndex) tea.Cmd {
	m.focus = f
	if f == focusTopic {
		return m.topic.Focus()
	}
	m.topic.Blur()
	return nil
}

func (m *Model) cycleOption(delta int) {
	wrap := func(i, n int) int { return (i + delta + n) % n }
	switch m.focus {
	case focusContentType:
		m.contentTypeIdx = wrap(m.contentTypeIdx, len(content.ContentTypes))
	case focusTone:
		m.toneIdx = wrap(m.toneIdx, len(content.Tones))
	case focusLength:
		m.lengthIdx = wrap(m.lengthIdx, len(content.Lengths))
	}
}

func (m *Model) refreshViewport() {
	if m.result.Empty() {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(renderMarkdown(m.result.Content, m.viewport.Width))
}

// errorMessage 把请求错误转换为一条可读的提示
func errorMessage(err error) string {
	var se *api.ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return fmt.Sprintf("%s: %v", msgGenerateFailed, err)
}
