// Package config 提供 TOML 配置加载与环境变量覆盖
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wyfcoding/optionpricing/pkg/logger"
)

// Config 基础配置结构
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 日志配置
	Logger logger.Config `mapstructure:"logger"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
	// 定价引擎配置
	Engine EngineConfig `mapstructure:"engine"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	// 监听地址
	Host string `mapstructure:"host"`
	// 监听端口
	Port int `mapstructure:"port"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `mapstructure:"enabled"`
	// 指标路径
	Path string `mapstructure:"path"`
}

// EngineConfig 定价引擎配置
type EngineConfig struct {
	// 二叉树默认步数
	DefaultSteps int `mapstructure:"default_steps"`
	// 二叉树最大步数（防御过大请求）
	MaxSteps int `mapstructure:"max_steps"`
	// 蒙特卡洛默认模拟次数
	DefaultPaths int `mapstructure:"default_paths"`
	// 蒙特卡洛最大模拟次数
	MaxPaths int `mapstructure:"max_paths"`
	// 收益曲线默认采样点数
	SweepPoints int `mapstructure:"sweep_points"`
}

// Load 从 TOML 文件加载配置，支持 APP_ 前缀环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "pricing")
	v.SetDefault("version", "0.1.0")
	v.SetDefault("environment", "dev")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/pricing.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("engine.default_steps", 500)
	v.SetDefault("engine.max_steps", 20000)
	v.SetDefault("engine.default_paths", 100000)
	v.SetDefault("engine.max_paths", 10000000)
	v.SetDefault("engine.sweep_points", 100)
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	if c.Engine.DefaultSteps < 1 {
		return fmt.Errorf("invalid engine.default_steps: %d", c.Engine.DefaultSteps)
	}
	if c.Engine.DefaultPaths < 1 {
		return fmt.Errorf("invalid engine.default_paths: %d", c.Engine.DefaultPaths)
	}
	if c.Engine.MaxSteps < c.Engine.DefaultSteps {
		return fmt.Errorf("engine.max_steps %d below default_steps %d", c.Engine.MaxSteps, c.Engine.DefaultSteps)
	}
	if c.Engine.MaxPaths < c.Engine.DefaultPaths {
		return fmt.Errorf("engine.max_paths %d below default_paths %d", c.Engine.MaxPaths, c.Engine.DefaultPaths)
	}
	return nil
}
