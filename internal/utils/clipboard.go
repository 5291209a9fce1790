package utils

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardWriter 写入系统剪贴板
type ClipboardWriter interface {
	WriteAll(text string) error
}

// SystemClipboard 基于 atotto/clipboard 的实现
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("当前系统不支持剪贴板")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("写入剪贴板失败: %w", err)
	}
	return nil
}
