package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/russross/blackfriday/v2"
)

// renderMarkdown 把生成的 Markdown 渲染成终端文本。复制和下载仍使用原始内容。
func renderMarkdown(markdown string, width int) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	if os.Getenv("NO_COLOR") != "" {
		return wrapText(stripMarkdown(markdown), width)
	}

	root := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions)).Parse([]byte(markdown))
	return renderBlocks(root, width)
}

func renderBlocks(parent *blackfriday.Node, width int) string {
	var blocks []string
	for n := parent.FirstChild; n != nil; n = n.Next {
		if b := renderBlock(n, width); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n *blackfriday.Node, width int) string {
	switch n.Type {
	case blackfriday.Heading:
		return wrapText(mdHeadingStyle.Render(renderInline(n)), width)

	case blackfriday.Paragraph:
		return wrapText(renderInline(n), width)

	case blackfriday.List:
		return renderList(n, width)

	case blackfriday.CodeBlock:
		code := strings.TrimRight(string(n.Literal), "\n")
		return mdCodeStyle.PaddingLeft(2).Render(code)

	case blackfriday.BlockQuote:
		return mdQuoteStyle.Render(renderBlocks(n, max(width-2, 10)))

	case blackfriday.HorizontalRule:
		return mdRuleStyle.Render(strings.Repeat("─", max(width, 3)))

	case blackfriday.Table:
		return renderTable(n)

	case blackfriday.HTMLBlock:
		return wrapText(string(n.Literal), width)
	}
	return wrapText(renderInline(n), width)
}

func renderList(n *blackfriday.Node, width int) string {
	ordered := n.ListFlags&blackfriday.ListTypeOrdered != 0
	var items []string
	i := 1
	for item := n.FirstChild; item != nil; item = item.Next {
		bullet := "• "
		if ordered {
			bullet = fmt.Sprintf("%d. ", i)
		}
		i++

		indent := lipgloss.Width(bullet)
		body := renderItem(item, max(width-indent, 10))
		lines := strings.Split(body, "\n")
		for j := range lines {
			if j == 0 {
				lines[j] = bullet + lines[j]
			} else if lines[j] != "" {
				lines[j] = strings.Repeat(" ", indent) + lines[j]
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, "\n")
}

// renderItem 列表项内部不插入空行，嵌套列表直接跟在文本后
func renderItem(item *blackfriday.Node, width int) string {
	var parts []string
	for c := item.FirstChild; c != nil; c = c.Next {
		if b := renderBlock(c, width); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, "\n")
}

func renderTable(n *blackfriday.Node) string {
	var rows []string
	n.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || node.Type != blackfriday.TableRow {
			return blackfriday.GoToNext
		}
		var cells []string
		for c := node.FirstChild; c != nil; c = c.Next {
			text := renderInline(c)
			if c.IsHeader {
				text = mdStrongStyle.Render(text)
			}
			cells = append(cells, text)
		}
		rows = append(rows, strings.Join(cells, " │ "))
		return blackfriday.SkipChildren
	})
	return strings.Join(rows, "\n")
}

func renderInline(n *blackfriday.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.Next {
		switch c.Type {
		case blackfriday.Text:
			sb.WriteString(strings.ReplaceAll(string(c.Literal), "\n", " "))
		case blackfriday.Softbreak:
			sb.WriteString(" ")
		case blackfriday.Hardbreak:
			sb.WriteString("\n")
		case blackfriday.Strong:
			sb.WriteString(mdStrongStyle.Render(renderInline(c)))
		case blackfriday.Emph:
			sb.WriteString(mdEmphStyle.Render(renderInline(c)))
		case blackfriday.Del:
			sb.WriteString(mdDelStyle.Render(renderInline(c)))
		case blackfriday.Code:
			sb.WriteString(mdCodeStyle.Render(string(c.Literal)))
		case blackfriday.Link:
			sb.WriteString(mdLinkStyle.Render(renderInline(c)))
		case blackfriday.HTMLSpan:
			sb.Write(c.Literal)
		default:
			sb.WriteString(renderInline(c))
		}
	}
	return sb.String()
}

// stripMarkdown 不使用颜色时去掉常见的 Markdown 标记
func stripMarkdown(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, "#")
		line = strings.ReplaceAll(line, "**", "")
		line = strings.ReplaceAll(line, "__", "")
		line = strings.ReplaceAll(line, "`", "")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
