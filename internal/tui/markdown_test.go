package tui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownRemovesMarkers(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	md := "# Coffee Guide\n\nStart with **fresh** beans and *clean* water.\n\n- grind\n- brew\n\n1. pour\n2. sip\n"

	out := renderMarkdown(md, 60)

	for _, want := range []string{"Coffee Guide", "fresh", "clean", "• grind", "• brew", "1. pour", "2. sip"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
	for _, marker := range []string{"# ", "**", "*clean*", "- grind"} {
		if strings.Contains(out, marker) {
			t.Errorf("rendered output still contains %q:\n%s", marker, out)
		}
	}
}

func TestRenderMarkdownCodeBlockKeepsText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	out := renderMarkdown("Run:\n\n```\ngo run .\n```\n", 60)
	if !strings.Contains(out, "go run .") {
		t.Errorf("code block lost:\n%s", out)
	}
	if strings.Contains(out, "```") {
		t.Errorf("fence markers leaked:\n%s", out)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if out := renderMarkdown("  \n", 40); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderMarkdownNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := renderMarkdown("## Title\n\nplain **bold** text", 40)
	if strings.Contains(out, "**") || strings.Contains(out, "#") {
		t.Errorf("markers not stripped:\n%s", out)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "plain bold text") {
		t.Errorf("text missing:\n%s", out)
	}
}
