/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 中间件管理器(CORS/访问日志/恢复/请求超时/JWT认证/上下文标准化)
 * @func: MiddlewareManager 及各Gin中间件
 */
package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"goadmin/internal/config"
	"goadmin/internal/model"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/pkg/utils"
	authservice "goadmin/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// MiddlewareManager 中间件管理器
type MiddlewareManager struct {
	cfg            *config.Config
	sessionService *authservice.SessionService
}

// NewMiddlewareManager 创建中间件管理器实例
func NewMiddlewareManager(cfg *config.Config, sessionService *authservice.SessionService) *MiddlewareManager {
	return &MiddlewareManager{
		cfg:            cfg,
		sessionService: sessionService,
	}
}

// GinContextMiddleware 上下文标准化中间件
// 归一化客户端IP并写入标准上下文，服务层统一从上下文读取
func (m *MiddlewareManager) GinContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.NormalizeIP(c.ClientIP())
		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyClientIP, clientIP)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GinCORSMiddleware CORS中间件
func (m *MiddlewareManager) GinCORSMiddleware() gin.HandlerFunc {
	cors := m.cfg.Security.CORS
	return func(c *gin.Context) {
		if !cors.Enabled {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if cors.AllowAllOrigins {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && containsOrigin(cors.AllowOrigins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", strings.Join(cors.AllowMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cors.AllowHeaders, ", "))
		if cors.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if cors.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", fmt.Sprintf("%d", int(cors.MaxAge.Seconds())))
		}

		// 处理预检请求
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// containsOrigin 检查源是否在允许列表中
func containsOrigin(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == origin || a == "*" {
			return true
		}
	}
	return false
}

// GinLoggingMiddleware 访问日志中间件
// 记录请求方法/路径/状态码/耗时，超过慢请求阈值的额外标记
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	logging := m.cfg.Security.Logging
	return func(c *gin.Context) {
		if !logging.EnableRequestLog || skipPath(logging.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		fields := map[string]interface{}{
			"query":   c.Request.URL.RawQuery,
			"user_id": utils.GetUserIDFromContext(c.Request.Context()),
		}
		if logging.SlowRequestThreshold > 0 && duration > logging.SlowRequestThreshold {
			fields["slow_request"] = true
		}

		logger.LogAccessRequest(
			c.Request.Method,
			c.Request.URL.Path,
			utils.GetClientIPFromContext(c.Request.Context()),
			c.Request.UserAgent(),
			c.Writer.Status(),
			duration,
			fields,
		)
	}
}

// skipPath 检查路径是否在日志跳过列表中
func skipPath(skipPaths []string, path string) bool {
	for _, p := range skipPaths {
		if p == path {
			return true
		}
	}
	return false
}

// GinRecoveryMiddleware 恐慌恢复中间件
// 捕获处理器恐慌，记录错误日志并返回统一的内部错误响应
func (m *MiddlewareManager) GinRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.LogError(fmt.Errorf("panic recovered: %v", r), "http", "panic_recovery", map[string]interface{}{
					"method":    c.Request.Method,
					"path":      c.Request.URL.Path,
					"client_ip": utils.GetClientIPFromContext(c.Request.Context()),
					"timestamp": logger.NowFormatted(),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, model.APIResponse{
					Code:    http.StatusInternalServerError,
					Message: "系统繁忙,请稍候再试",
				})
			}
		}()
		c.Next()
	}
}

// GinTimeoutMiddleware 请求超时中间件
// 为请求上下文加截止时间，超时后在途数据库操作被取消、打开的事务走回滚路径
func (m *MiddlewareManager) GinTimeoutMiddleware() gin.HandlerFunc {
	timeout := m.cfg.Server.RequestTimeout
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GinJWTAuthMiddleware JWT认证中间件
// 校验Bearer令牌并将用户ID写入标准上下文
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := m.extractTokenFromGinHeader(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Message: "请先登录",
			})
			return
		}

		claims, err := m.sessionService.ValidateToken(c.Request.Context(), accessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Message: "登录状态已失效,请重新登录",
			})
			return
		}

		// 将用户信息写入标准上下文和Gin上下文
		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyUserID, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// extractTokenFromGinHeader 从请求头中提取访问令牌
func (m *MiddlewareManager) extractTokenFromGinHeader(c *gin.Context) (string, error) {
	authorization := c.GetHeader("Authorization")
	if authorization == "" {
		return "", fmt.Errorf("authorization header is required")
	}

	// 检查Bearer前缀
	if !strings.HasPrefix(authorization, "Bearer ") {
		return "", fmt.Errorf("authorization header must start with 'Bearer '")
	}

	token := strings.TrimPrefix(authorization, "Bearer ")
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}
	return token, nil
}
