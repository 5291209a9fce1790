package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Zacy-Sokach/ContentGen/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL 未配置时使用的生成接口地址
const DefaultAPIURL = "https://ai-content-gen-d68a.onrender.com/api/generate"

// 环境变量：CONTENTGEN_API_URL 优先，其次兼容旧的 VITE_API_URL
const (
	EnvPrefix    = "CONTENTGEN"
	EnvAPIURL    = "CONTENTGEN_API_URL"
	EnvLegacyURL = "VITE_API_URL"
)

type Config struct {
	APIURL         string `yaml:"api_url" mapstructure:"api_url"`
	OutputDir      string `yaml:"output_dir" mapstructure:"output_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	LogLevel       string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat      string `yaml:"log_format" mapstructure:"log_format"`
}

// Timeout 返回 HTTP 请求超时时间
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:         DefaultAPIURL,
		OutputDir:      ".",
		TimeoutSeconds: 60,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("timeout_seconds", def.TimeoutSeconds)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// 按顺序查找，第一个非空值生效
	_ = v.BindEnv("api_url", EnvAPIURL, EnvLegacyURL)
	return v
}

// LoadConfig 读取配置文件并应用环境变量覆盖。配置文件不存在时返回默认值。
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(configPath)
}

func loadFrom(configPath string) (*Config, error) {
	v := newViper()

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}

	return &config, nil
}

// configHeader 写在配置文件开头，方便用户手动编辑
const configHeader = "# ContentGen 配置文件\n# 环境变量 " + EnvAPIURL + " 会覆盖 api_url\n"

// SaveConfig 把配置写入 config.yaml，目录不存在时自动创建
func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(configPath, config)
}

// EnsureConfig 配置文件不存在时写入默认配置。返回配置文件路径以及本次是否新建。
func EnsureConfig() (string, bool, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(configPath); err == nil {
		return configPath, false, nil
	} else if !os.IsNotExist(err) {
		return configPath, false, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := writeConfig(configPath, DefaultConfig()); err != nil {
		return configPath, false, err
	}
	return configPath, true, nil
}

func writeConfig(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(configHeader), data...), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// ConfigDir 返回配置目录，日志文件也放在这里
func ConfigDir() (string, error) {
	dir, err := utils.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("获取配置目录失败: %w", err)
	}
	return dir, nil
}

func getConfigPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
