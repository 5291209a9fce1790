package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zacy-Sokach/ContentGen/internal/api"
	"github.com/Zacy-Sokach/ContentGen/internal/content"
	"github.com/Zacy-Sokach/ContentGen/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

// fakeGenerator 记录每次请求，并按顺序返回预设结果
type fakeGenerator struct {
	calls   []content.FormInput
	results []content.GenerationResult
	errs    []error
}

func (g *fakeGenerator) GenerateResult(_ context.Context, input content.FormInput) (content.GenerationResult, error) {
	i := len(g.calls)
	g.calls = append(g.calls, input)
	var err error
	if i < len(g.errs) {
		err = g.errs[i]
	}
	if err != nil {
		return content.GenerationResult{}, err
	}
	if i < len(g.results) {
		return g.results[i], nil
	}
	return content.GenerationResult{Content: "default", WordCount: 1, CharCount: 7}, nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return c.err
}

func newTestModel(g *fakeGenerator) Model {
	return InitialModel(Options{Generator: g, Clipboard: &fakeClipboard{}, OutputDir: os.TempDir()})
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func clearTopic(m Model) Model {
	for len(m.topic.Value()) > 0 {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	return m
}

func press(m Model, t tea.KeyType) (Model, tea.Cmd) {
	return send(m, tea.KeyMsg{Type: t})
}

// runCmd 执行命令并展开 BatchMsg，只返回业务消息
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	switch msg.(type) {
	case GenerateDoneMsg, GenerateErrorMsg, CopyDoneMsg, ExportDoneMsg:
		return []tea.Msg{msg}
	}
	return nil
}

// submitAndResolve 提交表单并把请求结果回送给模型
func submitAndResolve(t *testing.T, m Model, key tea.KeyType) Model {
	t.Helper()
	m, cmd := press(m, key)
	if !m.Loading() {
		t.Fatalf("expected loading after submit, err=%q", m.ErrorMessage())
	}
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one result message, got %d", len(msgs))
	}
	m, _ = send(m, msgs[0])
	return m
}

func TestEmptyTopicDoesNotCallGenerator(t *testing.T) {
	for _, topic := range []string{"", "   "} {
		g := &fakeGenerator{}
		m := typeText(newTestModel(g), topic)

		m, cmd := press(m, tea.KeyEnter)
		runCmd(cmd)

		if len(g.calls) != 0 {
			t.Errorf("topic %q: generator called %d times", topic, len(g.calls))
		}
		if m.ErrorMessage() != msgEmptyTopic {
			t.Errorf("topic %q: error = %q", topic, m.ErrorMessage())
		}
		if m.Loading() {
			t.Errorf("topic %q: should not be loading", topic)
		}
	}
}

func TestSuccessPopulatesCountsAsReturned(t *testing.T) {
	g := &fakeGenerator{results: []content.GenerationResult{
		{Content: "Short text", WordCount: 42, CharCount: 1000},
	}}
	m := typeText(newTestModel(g), "  coffee  ")

	m = submitAndResolve(t, m, tea.KeyEnter)

	want := content.GenerationResult{Content: "Short text", WordCount: 42, CharCount: 1000}
	if diff := cmp.Diff(want, m.Result()); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if m.Loading() {
		t.Error("loading should be cleared")
	}
	if got := g.calls[0].Topic; got != "coffee" {
		t.Errorf("topic should be trimmed, got %q", got)
	}

	view := m.View()
	for _, s := range []string{"Generated Content", "42", "1000", "Short text"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}
}

func TestFailureKeepsPreviousContent(t *testing.T) {
	first := content.GenerationResult{Content: "first", WordCount: 1, CharCount: 5}
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"server reported", &api.ServerError{StatusCode: 500, Message: "AI failed to generate content"}, "AI failed to generate content"},
		{"success false without message", &api.ServerError{}, msgGenerateFailed},
		{"network", errors.New("connection refused"), "Failed to generate content: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGenerator{
				results: []content.GenerationResult{first},
				errs:    []error{nil, tt.err},
			}
			m := typeText(newTestModel(g), "coffee")
			m = submitAndResolve(t, m, tea.KeyEnter)
			m = submitAndResolve(t, m, tea.KeyEnter)

			if diff := cmp.Diff(first, m.Result()); diff != "" {
				t.Errorf("previous result changed (-want +got):\n%s", diff)
			}
			if m.ErrorMessage() != tt.wantMsg {
				t.Errorf("error = %q, want %q", m.ErrorMessage(), tt.wantMsg)
			}
			if m.Loading() {
				t.Error("loading should be cleared after failure")
			}
		})
	}
}

func TestErrorClearedOnNextAttempt(t *testing.T) {
	g := &fakeGenerator{}
	m := newTestModel(g)
	m, _ = press(m, tea.KeyEnter)
	if m.ErrorMessage() == "" {
		t.Fatal("expected validation error")
	}

	m = typeText(m, "coffee")
	m, _ = press(m, tea.KeyEnter)
	if m.ErrorMessage() != "" {
		t.Errorf("error should be cleared at submission start, got %q", m.ErrorMessage())
	}
}

func TestSubmitDisabledWhileLoading(t *testing.T) {
	g := &fakeGenerator{}
	m := typeText(newTestModel(g), "coffee")

	if m.SubmitDisabled() {
		t.Fatal("submit should be enabled with a topic")
	}

	m, first := press(m, tea.KeyEnter)
	if !m.SubmitDisabled() {
		t.Error("submit should be disabled while loading")
	}
	if !strings.Contains(m.View(), "Generating...") {
		t.Error("view should show the in-flight state")
	}

	m, second := press(m, tea.KeyEnter)
	if second != nil {
		t.Error("second submit while loading should produce no command")
	}
	m, regen := press(m, tea.KeyCtrlR)
	if regen != nil {
		t.Error("regenerate while loading should produce no command")
	}

	msgs := runCmd(first)
	if len(g.calls) != 1 {
		t.Errorf("expected exactly one request, got %d", len(g.calls))
	}
	m, _ = send(m, msgs[0])
	if m.SubmitDisabled() {
		t.Error("submit should be enabled again after completion")
	}
}

func TestSubmitRenderedDisabledWithoutTopic(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	if !m.SubmitDisabled() {
		t.Error("submit should render disabled while topic is empty")
	}
}

func TestRegenerateUsesCurrentFormValues(t *testing.T) {
	g := &fakeGenerator{}
	m := typeText(newTestModel(g), "coffee")
	m = submitAndResolve(t, m, tea.KeyEnter)

	// 修改主题和语气
	m = clearTopic(m)
	m = typeText(m, "green tea")
	m, _ = press(m, tea.KeyTab)   // content type
	m, _ = press(m, tea.KeyTab)   // tone
	m, _ = press(m, tea.KeyRight) // friendly

	m = submitAndResolve(t, m, tea.KeyCtrlR)

	if len(g.calls) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(g.calls))
	}
	want := content.FormInput{
		Topic:       "green tea",
		ContentType: content.ContentTypeEmail,
		Tone:        content.ToneFriendly,
		Length:      content.LengthSmall,
	}
	if diff := cmp.Diff(want, g.calls[1]); diff != "" {
		t.Errorf("regenerate input mismatch (-want +got):\n%s", diff)
	}
}

func TestRegenerateWithoutResultIsInert(t *testing.T) {
	g := &fakeGenerator{}
	m := typeText(newTestModel(g), "coffee")
	_, cmd := press(m, tea.KeyCtrlR)
	if cmd != nil {
		t.Error("regenerate without content should do nothing")
	}
}

func TestOptionCycling(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	m, _ = press(m, tea.KeyTab) // content type

	m, _ = press(m, tea.KeyRight)
	if got := m.FormInput().ContentType; got != content.ContentTypeAd {
		t.Errorf("after right: %s", got)
	}
	m, _ = press(m, tea.KeyRight)
	if got := m.FormInput().ContentType; got != content.ContentTypeBlog {
		t.Errorf("should wrap to blog, got %s", got)
	}
	m, _ = press(m, tea.KeyLeft)
	if got := m.FormInput().ContentType; got != content.ContentTypeAd {
		t.Errorf("should wrap back to ad, got %s", got)
	}

	m, _ = press(m, tea.KeyShiftTab)
	m, _ = press(m, tea.KeyShiftTab) // wraps to submit
	if m.focus != focusSubmit {
		t.Errorf("focus = %d, want submit", m.focus)
	}

	// 焦点不在输入框时不应修改主题
	m = typeText(m, "x")
	if m.topic.Value() != "" {
		t.Errorf("topic changed while unfocused: %q", m.topic.Value())
	}
}

func TestDownloadWritesSluggedFile(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGenerator{results: []content.GenerationResult{{Content: "raw **content**", WordCount: 2, CharCount: 15}}}
	m := InitialModel(Options{Generator: g, Clipboard: &fakeClipboard{}, OutputDir: dir})
	m = typeText(m, "summer sale ideas")
	m = submitAndResolve(t, m, tea.KeyEnter)

	m, cmd := press(m, tea.KeyCtrlS)
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected export message, got %d", len(msgs))
	}
	done := msgs[0].(ExportDoneMsg)
	if done.Err != nil {
		t.Fatalf("export failed: %v", done.Err)
	}
	if filepath.Base(done.Path) != "summer-sale-ideas.txt" {
		t.Errorf("file name = %s", filepath.Base(done.Path))
	}
	data, err := os.ReadFile(filepath.Join(dir, "summer-sale-ideas.txt"))
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(data) != "raw **content**" {
		t.Errorf("download content = %q", data)
	}
	if strings.Contains(m.View(), "**content**") {
		t.Error("result view should render markdown emphasis")
	}

	m, _ = send(m, done)
	if !strings.HasPrefix(m.Status(), "Saved to ") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestLongTopicNotTruncated(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGenerator{}
	m := InitialModel(Options{Generator: g, Clipboard: &fakeClipboard{}, OutputDir: dir})
	topic := strings.Repeat("a", 300)
	m = typeText(m, topic)
	m = submitAndResolve(t, m, tea.KeyEnter)

	if len(g.calls) != 1 {
		t.Fatalf("generator calls = %d", len(g.calls))
	}
	if got := len(g.calls[0].Topic); got != 300 {
		t.Errorf("request topic length = %d, want 300", got)
	}

	_, cmd := press(m, tea.KeyCtrlS)
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected export message, got %d", len(msgs))
	}
	done := msgs[0].(ExportDoneMsg)
	if done.Err != nil {
		t.Fatalf("export failed: %v", done.Err)
	}
	if filepath.Base(done.Path) != topic+".txt" {
		t.Errorf("file name length = %d", len(filepath.Base(done.Path)))
	}
}

func TestGenerateFailureLogsInput(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(&buf, "debug", "text")
	t.Cleanup(func() { logger.Init(io.Discard, "info", "text") })

	g := &fakeGenerator{errs: []error{errors.New("dial tcp: refused")}}
	m := typeText(newTestModel(g), "coffee beans")
	submitAndResolve(t, m, tea.KeyEnter)

	out := buf.String()
	for _, want := range []string{"generate failed", "coffee beans", "dial tcp: refused", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestExportHTML(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGenerator{results: []content.GenerationResult{{Content: "# Heading", WordCount: 2, CharCount: 9}}}
	m := InitialModel(Options{Generator: g, Clipboard: &fakeClipboard{}, OutputDir: dir})
	m = typeText(m, "my topic")
	m = submitAndResolve(t, m, tea.KeyEnter)

	_, cmd := press(m, tea.KeyCtrlO)
	runCmd(cmd)

	data, err := os.ReadFile(filepath.Join(dir, "my-topic.html"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "<h1>Heading</h1>") {
		t.Errorf("unexpected html: %s", data)
	}
}

func TestCopyWritesClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	g := &fakeGenerator{results: []content.GenerationResult{{Content: "copy me", WordCount: 2, CharCount: 7}}}
	m := InitialModel(Options{Generator: g, Clipboard: cb})
	m = typeText(m, "coffee")

	// 没有内容时复制无效
	if _, cmd := press(m, tea.KeyCtrlY); cmd != nil {
		t.Error("copy without content should do nothing")
	}

	m = submitAndResolve(t, m, tea.KeyEnter)
	m, cmd := press(m, tea.KeyCtrlY)
	msgs := runCmd(cmd)
	if cb.text != "copy me" {
		t.Errorf("clipboard = %q", cb.text)
	}

	m, clearCmd := send(m, msgs[0])
	if m.Status() != msgCopied {
		t.Errorf("status = %q", m.Status())
	}
	if clearCmd == nil {
		t.Error("expected a command clearing the status")
	}
}

func TestCopyFailureShowsStatus(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	m, _ = send(m, CopyDoneMsg{Err: errors.New("no clipboard")})
	if !strings.Contains(m.Status(), "no clipboard") || !m.statusErr {
		t.Errorf("status = %q (err=%v)", m.Status(), m.statusErr)
	}
}

func TestStaleStatusClearIgnored(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	m, _ = send(m, CopyDoneMsg{})
	first := m.statusSeq
	m, _ = send(m, ExportDoneMsg{Path: "/tmp/x.txt"})

	m, _ = send(m, clearStatusMsg{seq: first})
	if m.Status() == "" {
		t.Error("stale clear should not remove newer status")
	}
	m, _ = send(m, clearStatusMsg{seq: m.statusSeq})
	if m.Status() != "" {
		t.Errorf("status should be cleared, got %q", m.Status())
	}
}

func TestResultHiddenWhileLoading(t *testing.T) {
	g := &fakeGenerator{results: []content.GenerationResult{{Content: "visible text", WordCount: 2, CharCount: 12}}}
	m := typeText(newTestModel(g), "coffee")
	m = submitAndResolve(t, m, tea.KeyEnter)

	m, _ = press(m, tea.KeyCtrlR)
	if strings.Contains(m.View(), "visible text") {
		t.Error("previous result should be hidden while a request is in flight")
	}
	if m.Result().Content != "visible text" {
		t.Error("previous result must be kept in state")
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	m, _ = send(m, tea.WindowSizeMsg{Width: 200, Height: 40})
	if m.width != maxContentWidth {
		t.Errorf("width should be capped, got %d", m.width)
	}
	m, _ = send(m, tea.WindowSizeMsg{Width: 60, Height: 10})
	if m.width != 60 || m.viewport.Height != 5 {
		t.Errorf("unexpected size: width=%d vp.height=%d", m.width, m.viewport.Height)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	_, cmd := press(m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
