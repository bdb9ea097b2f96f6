// 文件日志Hook：按log_type将日志写入不同文件，文件轮转由lumberjack负责
package logger

import (
	"fmt"
	"path/filepath"
	"sync"

	"goadmin/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileHook 按日志类型分文件输出的logrus Hook
type FileHook struct {
	config  *config.LogConfig
	writers map[LogType]*lumberjack.Logger
	mu      sync.Mutex
}

// NewFileHook 创建文件日志Hook
func NewFileHook(cfg *config.LogConfig) *FileHook {
	return &FileHook{
		config:  cfg,
		writers: make(map[LogType]*lumberjack.Logger),
	}
}

// Levels 返回Hook处理的日志级别
func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 处理日志条目，根据log_type字段路由到对应文件
func (h *FileHook) Fire(entry *logrus.Entry) error {
	logType := LogTypeSystem
	if t, ok := entry.Data["log_type"].(string); ok {
		switch LogType(t) {
		case LogTypeAccess, LogTypeBusiness, LogTypeError, LogTypeSystem:
			logType = LogType(t)
		}
	}

	writer, err := h.getWriter(logType)
	if err != nil {
		return err
	}

	line, err := entry.Bytes()
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}
	_, err = writer.Write(line)
	return err
}

// getWriter 获取指定日志类型的写入器，不存在则创建
func (h *FileHook) getWriter(logType LogType) (*lumberjack.Logger, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if w, ok := h.writers[logType]; ok {
		return w, nil
	}

	dir := h.config.FilePath
	if dir == "" {
		dir = "logs"
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, string(logType)+".log"),
		MaxSize:    h.config.MaxSize,
		MaxBackups: h.config.MaxBackups,
		MaxAge:     h.config.MaxAge,
		Compress:   h.config.Compress,
	}
	h.writers[logType] = w
	return w, nil
}

// Close 关闭所有日志文件写入器
func (h *FileHook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var firstErr error
	for _, w := range h.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
