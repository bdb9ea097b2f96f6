// 结构化日志记录：按日志类型(access/business/error/system)输出统一字段
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// LogType 日志类型
type LogType string

const (
	LogTypeAccess   LogType = "access"   // 访问日志
	LogTypeBusiness LogType = "business" // 业务操作日志
	LogTypeError    LogType = "error"    // 错误日志
	LogTypeSystem   LogType = "system"   // 系统事件日志
)

// timestampLayout 业务日志时间戳格式
const timestampLayout = "2006-01-02 15:04:05.000"

// FormatTimestamp 格式化时间戳
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// NowFormatted 当前时间的格式化时间戳
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogAccessRequest 记录HTTP访问日志
func LogAccessRequest(method, path, clientIP, userAgent string, statusCode int, duration time.Duration, fields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	entry := LoggerInstance.logger.WithFields(logrus.Fields{
		"log_type":    string(LogTypeAccess),
		"timestamp":   NowFormatted(),
		"method":      method,
		"path":        path,
		"client_ip":   clientIP,
		"user_agent":  userAgent,
		"status_code": statusCode,
		"duration_ms": duration.Milliseconds(),
	})
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}

	if statusCode >= 500 {
		entry.Error("HTTP request completed with server error")
	} else if statusCode >= 400 {
		entry.Warn("HTTP request completed with client error")
	} else {
		entry.Info("HTTP request completed")
	}
}

// LogBusinessOperation 记录业务操作日志
// operation: 操作名称(如 create_role、delete_menu)
// userID/username: 操作者；result: success/failed
func LogBusinessOperation(operation string, userID uint, username, clientIP, result, message string, fields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	entry := LoggerInstance.logger.WithFields(logrus.Fields{
		"log_type":  string(LogTypeBusiness),
		"timestamp": NowFormatted(),
		"operation": operation,
		"user_id":   userID,
		"username":  username,
		"client_ip": clientIP,
		"result":    result,
	})
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}

	if result == "success" {
		entry.Info(message)
	} else {
		entry.Warn(message)
	}
}

// LogError 记录错误日志
func LogError(err error, module, operation string, fields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	entry := LoggerInstance.logger.WithFields(logrus.Fields{
		"log_type":  string(LogTypeError),
		"timestamp": NowFormatted(),
		"module":    module,
		"operation": operation,
	})
	if err != nil {
		entry = entry.WithField("error", err.Error())
	}
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}

	entry.Error("Operation failed")
}

// LogSystemEvent 记录系统事件日志(启动、关闭、配置变更等)
func LogSystemEvent(component, event, message string, fields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	entry := LoggerInstance.logger.WithFields(logrus.Fields{
		"log_type":  string(LogTypeSystem),
		"timestamp": NowFormatted(),
		"component": component,
		"event":     event,
	})
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}

	entry.Info(message)
}
