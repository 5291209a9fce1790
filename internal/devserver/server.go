// Package devserver 提供生成接口的本地替身，便于离线开发和测试
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zacy-Sokach/ContentGen/internal/api"
	"github.com/Zacy-Sokach/ContentGen/internal/content"
	"github.com/Zacy-Sokach/ContentGen/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GeneratePath 生成接口路径
const GeneratePath = "/api/generate"

// Generator 根据提示词生成文本
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc 函数适配器
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// EchoGenerator 返回固定格式的占位文本，不做任何推理
type EchoGenerator struct{}

func (EchoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return fmt.Sprintf("[devserver] %s.\n\nThis placeholder stands in for generated content.", prompt), nil
}

// 请求必须包含的字段，顺序决定报错时提示哪个字段
var requiredFields = []string{"topic", "tone", "contentType", "length"}

// Server 本地生成接口
type Server struct {
	engine    *gin.Engine
	generator Generator
}

// New 创建服务，generator 为 nil 时使用 EchoGenerator
func New(generator Generator) *Server {
	if generator == nil {
		generator = EchoGenerator{}
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:    gin.New(),
		generator: generator,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler 返回 http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 启动监听，ctx 取消时优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "devserver listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", api.RequestIDHeader},
		ExposeHeaders: []string{api.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.POST(GeneratePath, s.handleGenerate)
}

// requestID 请求 ID 注入中间件
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(api.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		ctx := logger.WithContext(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(api.RequestIDHeader, id)
		c.Next()
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, api.GenerateResponse{Success: false, Error: msg})
}

func (s *Server) handleGenerate(c *gin.Context) {
	ctx := c.Request.Context()

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil || len(raw) == 0 {
		fail(c, http.StatusBadRequest, "No data provided")
		return
	}
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			fail(c, http.StatusBadRequest, "Missing required field "+field)
			return
		}
	}

	var input content.FormInput
	dests := map[string]*string{
		"topic":       &input.Topic,
		"contentType": (*string)(&input.ContentType),
		"tone":        (*string)(&input.Tone),
		"length":      (*string)(&input.Length),
	}
	// 按 requiredFields 顺序解析，同一请求总是报告同一个字段
	for _, field := range requiredFields {
		if err := json.Unmarshal(raw[field], dests[field]); err != nil {
			fail(c, http.StatusBadRequest, "Invalid field "+field)
			return
		}
	}

	prompt := input.Prompt()
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error(ctx, "generation failed", err)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if text == "" {
		fail(c, http.StatusInternalServerError, "AI failed to generate content")
		return
	}

	logger.Info(ctx, "generated", "content_type", input.ContentType, "length", input.Length)
	c.JSON(http.StatusOK, api.GenerateResponse{
		Success:   true,
		Response:  text,
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	})
}
