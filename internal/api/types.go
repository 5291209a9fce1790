package api

import (
	"errors"
	"fmt"

	"github.com/Zacy-Sokach/ContentGen/internal/content"
)

// GenerateRequest 请求体，字段与 content.FormInput 一致
type GenerateRequest = content.FormInput

// GenerateResponse 生成接口的响应体
type GenerateResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	WordCount int    `json:"wordCount,omitempty"`
	CharCount int    `json:"charCount,omitempty"`
	Error     string `json:"error,omitempty"`

	// StatusCode HTTP 状态码，不参与序列化
	StatusCode int `json:"-"`
}

// Result 把成功响应转换为 GenerationResult，计数按服务端返回值原样保留
func (r *GenerateResponse) Result() (content.GenerationResult, error) {
	if r == nil {
		return content.GenerationResult{}, &ServerError{}
	}
	if !r.Success {
		return content.GenerationResult{}, &ServerError{StatusCode: r.StatusCode, Message: r.Error}
	}
	return content.GenerationResult{
		Content:   r.Response,
		WordCount: r.WordCount,
		CharCount: r.CharCount,
	}, nil
}

// ServerError 服务端返回 success=false
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "Failed to generate content"
	}
	return e.Message
}

// ErrResponseTooLarge 响应体超过读取上限
var ErrResponseTooLarge = errors.New("response too large")

// DecodeError 响应体不是合法的 JSON
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
