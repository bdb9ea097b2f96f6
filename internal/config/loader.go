package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置文件
// configPath: 配置文件所在目录，为空时使用默认路径
// env: 环境标识，支持 development, test, production
func LoadConfig(configPath, env string) (*Config, error) {
	if env == "" {
		env = getEnvFromEnvironment()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	// 根据环境选择配置文件: config.yaml 或 config.<env>.yaml
	v.SetConfigFile(getConfigFileName(configPath, env))

	// 环境变量覆盖: GOADMIN_SERVER_PORT 等
	v.SetEnvPrefix("GOADMIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "15s")
	v.SetDefault("server.max_header_bytes", 1<<20)

	v.SetDefault("database.mysql.charset", "utf8mb4")
	v.SetDefault("database.mysql.parse_time", true)
	v.SetDefault("database.mysql.loc", "Local")
	v.SetDefault("database.mysql.max_idle_conns", 10)
	v.SetDefault("database.mysql.max_open_conns", 100)
	v.SetDefault("database.mysql.log_level", "warn")

	v.SetDefault("database.redis.pool_size", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("security.jwt.issuer", "goadmin")
	v.SetDefault("security.jwt.token_expire", "8h")

	v.SetDefault("security.logging.enable_request_log", true)
	v.SetDefault("security.logging.slow_request_threshold", "2s")

	v.SetDefault("app.name", "goadmin")
	v.SetDefault("app.environment", "development")
}

// validateConfig 校验关键配置项
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", config.Server.Port)
	}
	if config.Security.JWT.Secret == "" {
		return fmt.Errorf("security.jwt.secret is required")
	}
	return nil
}

// getEnvFromEnvironment 从环境变量读取环境标识
func getEnvFromEnvironment() string {
	if env := os.Getenv("GOADMIN_ENV"); env != "" {
		return env
	}
	return "development"
}

// getDefaultConfigPath 获取默认配置文件目录
func getDefaultConfigPath() string {
	// 优先使用可执行文件同级的configs目录，其次是工作目录
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), "configs")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "configs"
}

// getConfigFileName 根据环境拼接配置文件名
func getConfigFileName(configPath, env string) string {
	if env == "production" {
		return filepath.Join(configPath, "config.yaml")
	}
	name := fmt.Sprintf("config.%s.yaml", env)
	full := filepath.Join(configPath, name)
	if _, err := os.Stat(full); err == nil {
		return full
	}
	return filepath.Join(configPath, "config.yaml")
}
