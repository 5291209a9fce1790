package content

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pathSeparator = strings.NewReplacer("/", "-", "\\", "-")
)

// Slug 把主题中的每段空白替换为连字符
func Slug(topic string) string {
	s := whitespaceRun.ReplaceAllString(strings.TrimSpace(topic), "-")
	s = pathSeparator.Replace(s)
	if s == "" || s == "." || s == ".." {
		return "content"
	}
	return s
}

// FileName 返回下载文件名，如 "my-topic.txt"
func FileName(topic, ext string) string {
	return Slug(topic) + "." + strings.TrimPrefix(ext, ".")
}
