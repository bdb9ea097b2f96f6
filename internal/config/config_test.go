package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile 在临时目录写入配置文件
func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const testConfigYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  request_timeout: 20s
database:
  mysql:
    host: "db.local"
    port: 3306
    username: "tester"
    password: "secret"
    database: "goadmin_test"
    conn_max_lifetime: 30m
  redis:
    host: "cache.local"
    port: 6379
log:
  level: "warn"
  format: "text"
security:
  jwt:
    secret: "unit-test-secret"
    token_expire: 2h
app:
  environment: "test"
`

// TestLoadConfig 加载配置文件并校验解析结果
func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", testConfigYAML)

	cfg, err := LoadConfig(dir, "production")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.GetAddress())

	assert.Equal(t, "db.local", cfg.Database.MySQL.Host)
	assert.Equal(t, 30*time.Minute, cfg.Database.MySQL.ConnMaxLifetime)
	assert.Contains(t, cfg.Database.MySQL.GetMySQLDSN(), "tester:secret@tcp(db.local:3306)/goadmin_test")

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "unit-test-secret", cfg.Security.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Security.JWT.TokenExpire)
}

// TestLoadConfigDefaults 未配置项填充默认值
func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", `
security:
  jwt:
    secret: "unit-test-secret"
`)

	cfg, err := LoadConfig(dir, "production")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "utf8mb4", cfg.Database.MySQL.Charset)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "goadmin", cfg.Security.JWT.Issuer)
	assert.Equal(t, 8*time.Hour, cfg.Security.JWT.TokenExpire)
	assert.True(t, cfg.Security.Logging.EnableRequestLog)
}

// TestLoadConfigEnvFile 按环境选择配置文件
func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", `
server:
  port: 8080
security:
  jwt:
    secret: "base-secret"
`)
	writeConfigFile(t, dir, "config.test.yaml", `
server:
  port: 8180
security:
  jwt:
    secret: "test-secret"
`)

	cfg, err := LoadConfig(dir, "test")
	require.NoError(t, err)
	assert.Equal(t, 8180, cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.Security.JWT.Secret)

	// 环境文件不存在时回落到config.yaml
	cfg, err = LoadConfig(dir, "staging")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

// TestLoadConfigValidation 非法配置拒绝加载
func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()

	// 缺少JWT密钥
	writeConfigFile(t, dir, "config.yaml", `
server:
  port: 8080
`)
	_, err := LoadConfig(dir, "production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "security.jwt.secret")

	// 端口越界
	writeConfigFile(t, dir, "config.yaml", `
server:
  port: 99999
security:
  jwt:
    secret: "unit-test-secret"
`)
	_, err = LoadConfig(dir, "production")
	require.Error(t, err)
}
