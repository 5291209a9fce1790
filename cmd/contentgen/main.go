package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/Zacy-Sokach/ContentGen/internal/api"
	"github.com/Zacy-Sokach/ContentGen/internal/config"
	"github.com/Zacy-Sokach/ContentGen/internal/devserver"
	"github.com/Zacy-Sokach/ContentGen/internal/logger"
	"github.com/Zacy-Sokach/ContentGen/internal/tui"
	"github.com/Zacy-Sokach/ContentGen/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

var (
	Version = "dev"
)

func main() {
	// 处理命令行参数
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Printf("ContentGen %s\n", Version)
			os.Exit(0)
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		}
	}

	// 添加panic恢复
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("程序发生panic: %v\n", r)
			fmt.Println("堆栈跟踪:")
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	if err := loadDotEnv(); err != nil {
		fmt.Printf("加载 .env 失败: %v\n", err)
		os.Exit(1)
	}

	// 首次运行时写入默认配置，失败不影响启动
	configPath, created, err := config.EnsureConfig()
	if err != nil {
		fmt.Printf("警告: 无法创建配置文件: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "devserver" {
		if err := runDevServer(cfg, os.Args[2:]); err != nil {
			fmt.Printf("devserver 运行错误: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logDir, err := config.ConfigDir()
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	logFile, err := logger.InitFile(logDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	if created {
		logger.Info(context.Background(), "created default config", "path", configPath)
	}

	if !isTerminal() {
		fmt.Println("ContentGen 需要在交互式终端中运行")
		fmt.Printf("当前接口地址: %s\n", cfg.APIURL)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIURL, api.WithTimeout(cfg.Timeout()))
	model := tui.InitialModel(tui.Options{
		Generator: client,
		Clipboard: utils.SystemClipboard{},
		OutputDir: cfg.OutputDir,
		Endpoint:  client.URL(),
	})

	logger.Info(context.Background(), "starting", "version", Version, "endpoint", client.URL())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("程序运行错误: %v\n", err)
		os.Exit(1)
	}
}

func runDevServer(cfg *config.Config, args []string) error {
	logger.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	addr := ":5000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if len(args) > 0 {
		addr = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(
		fmt.Sprintf("devserver: http://localhost%s%s", addr, devserver.GeneratePath)))
	return devserver.New(nil).Run(ctx, addr)
}

// loadDotEnv 加载 .env，文件不存在时忽略，格式错误时返回错误
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func printHelp() {
	fmt.Println("ContentGen - AI content generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  contentgen                    Start the interactive form")
	fmt.Println("  contentgen devserver [addr]   Run a local stand-in of the generate endpoint")
	fmt.Println("  contentgen -v, --version      Show version information")
	fmt.Println("  contentgen -h, --help         Show help information")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("  config file   %s\n", utils.GetConfigPathForDisplay())
	fmt.Printf("  %-13s overrides the endpoint URL (also %s)\n", config.EnvAPIURL, config.EnvLegacyURL)
	fmt.Printf("  default URL   %s\n", config.DefaultAPIURL)
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
