package tui

import (
	"github.com/Zacy-Sokach/ContentGen/internal/content"
)

// GenerateDoneMsg 生成请求成功
type GenerateDoneMsg struct {
	Input  content.FormInput
	Result content.GenerationResult
}

// GenerateErrorMsg 生成请求失败（网络、解析或服务端报告的错误）
type GenerateErrorMsg struct {
	Input content.FormInput
	Err   error
}

// CopyDoneMsg 复制到剪贴板完成
type CopyDoneMsg struct {
	Err error
}

// ExportDoneMsg 文件导出完成
type ExportDoneMsg struct {
	Path string
	Err  error
}

// clearStatusMsg 到时清除状态栏，seq 不匹配时忽略
type clearStatusMsg struct {
	seq int
}
