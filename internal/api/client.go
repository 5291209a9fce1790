package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Zacy-Sokach/ContentGen/internal/content"
	"github.com/Zacy-Sokach/ContentGen/internal/logger"
	"github.com/Zacy-Sokach/ContentGen/internal/utils"
	"github.com/google/uuid"
)

// RequestIDHeader 请求 ID 头
const RequestIDHeader = "X-Request-ID"

// 响应体大小上限
const maxResponseBytes = 4 << 20

// 全局共享的HTTP客户端，实现连接池化
var (
	sharedHTTPClient *http.Client
	httpClientOnce   sync.Once
)

// getSharedHTTPClient 返回共享的HTTP客户端实例
func getSharedHTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: 60 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
			},
		}
	})
	return sharedHTTPClient
}

type Client struct {
	url    string
	client utils.Doer
}

// Option 配置 Client
type Option func(*Client)

// WithDoer 替换底层 HTTP 客户端
func WithDoer(d utils.Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.client = d
		}
	}
}

// WithTimeout 使用指定超时的独立 http.Client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client = &http.Client{Timeout: timeout, Transport: getSharedHTTPClient().Transport}
		}
	}
}

// NewClient 创建生成接口客户端
// url: 生成接口完整地址
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		client: getSharedHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL 返回请求地址
func (c *Client) URL() string {
	return c.url
}

// Generate 发送一次生成请求。每次调用只发一个 POST，不做重试。
// 非 2xx 状态码也会尝试解析 JSON，服务端在 400/500 时同样返回 {success:false,error}。
func (c *Client) Generate(ctx context.Context, input GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	requestID := uuid.New().String()
	ctx = logger.WithContext(ctx, logger.RequestIDKey, requestID)

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	logger.Info(ctx, "generate request",
		"url", c.url,
		"content_type", input.ContentType,
		"tone", input.Tone,
		"length", input.Length,
	)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		logger.Error(ctx, "generate request failed", err, "latency_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer resp.Body.Close()

	// 多读一个字节用于判断是否超限
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		logger.Error(ctx, "read response failed", err, "status", resp.StatusCode)
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if len(data) > maxResponseBytes {
		logger.Error(ctx, "response too large", ErrResponseTooLarge, "status", resp.StatusCode, "limit", maxResponseBytes)
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrResponseTooLarge, maxResponseBytes)
	}

	genResp := GenerateResponse{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(data, &genResp); err != nil {
		logger.Error(ctx, "decode response failed", err, "status", resp.StatusCode)
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	logger.Info(ctx, "generate response",
		"status", resp.StatusCode,
		"success", genResp.Success,
		"word_count", genResp.WordCount,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return &genResp, nil
}

// GenerateResult 发送请求并返回成功结果，success=false 时返回 *ServerError
func (c *Client) GenerateResult(ctx context.Context, input GenerateRequest) (content.GenerationResult, error) {
	resp, err := c.Generate(ctx, input)
	if err != nil {
		return content.GenerationResult{}, err
	}
	return resp.Result()
}
