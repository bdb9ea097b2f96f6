/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 会话管理服务
 * @func:
 * 1.登录(签发JWT并记录最后登录信息)
 * 2.注销
 * 3.令牌校验
 */
package auth

import (
	"context"
	"time"

	"goadmin/internal/model"
	"goadmin/internal/pkg/auth"
	"goadmin/internal/pkg/errs"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/pkg/utils"
	"goadmin/internal/repository/mysql"
)

// SessionService 会话管理服务
type SessionService struct {
	userRepo        *mysql.UserRepository // 用户数据仓库
	passwordManager *auth.PasswordManager // 密码管理器
	jwtManager      *auth.JWTManager      // JWT管理器
}

// NewSessionService 创建会话服务实例
func NewSessionService(
	userRepo *mysql.UserRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
) *SessionService {
	return &SessionService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
		jwtManager:      jwtManager,
	}
}

// Login 用户登录
// 校验账号密码后签发JWT，并记录最后登录IP和时间；
// 账号不存在与密码错误返回同一错误，不暴露账号是否存在
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return nil, errs.Validation("登录请求不能为空")
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, errs.Internal("查询用户失败", err)
	}
	if user == nil {
		logger.LogBusinessOperation("login", 0, req.Username, clientIP, "failed", "Login failed: user not found", map[string]interface{}{
			"username":  req.Username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, errs.Forbidden("账号或密码错误!")
	}

	if user.IsDisable != 0 {
		logger.LogBusinessOperation("login", user.ID, user.Username, clientIP, "failed", "Login failed: account disabled", map[string]interface{}{
			"user_id":   user.ID,
			"timestamp": logger.NowFormatted(),
		})
		return nil, errs.Forbidden("账号已被禁用!")
	}

	// 验证密码
	isValid, err := s.passwordManager.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return nil, errs.Internal("密码校验失败", err)
	}
	if !isValid {
		logger.LogBusinessOperation("login", user.ID, user.Username, clientIP, "failed", "Login failed: wrong password", map[string]interface{}{
			"user_id":   user.ID,
			"timestamp": logger.NowFormatted(),
		})
		return nil, errs.Forbidden("账号或密码错误!")
	}

	// 生成令牌
	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, errs.Internal("生成令牌失败", err)
	}

	// 记录最后登录信息，失败不影响登录结果
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, clientIP, time.Now()); err != nil {
		logger.LogError(err, "session", "update_last_login", map[string]interface{}{
			"user_id":   user.ID,
			"timestamp": logger.NowFormatted(),
		})
	}

	logger.LogBusinessOperation("login", user.ID, user.Username, clientIP, "success", "Login successful", map[string]interface{}{
		"user_id":   user.ID,
		"timestamp": logger.NowFormatted(),
	})

	return &model.LoginResponse{Token: token}, nil
}

// Logout 用户注销
// 无状态JWT下服务端不保留令牌，仅记录业务日志
func (s *SessionService) Logout(ctx context.Context, userID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	logger.LogBusinessOperation("logout", userID, "", clientIP, "success", "Logout successful", map[string]interface{}{
		"user_id":   userID,
		"timestamp": logger.NowFormatted(),
	})
	return nil
}

// ValidateToken 校验访问令牌并返回声明
// 认证中间件调用
func (s *SessionService) ValidateToken(ctx context.Context, tokenString string) (*auth.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, errs.Forbidden("登录状态已失效,请重新登录")
	}

	// 令牌有效但用户被删除或禁用时同样拒绝
	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errs.Internal("查询用户失败", err)
	}
	if user == nil || user.IsDisable != 0 {
		return nil, errs.Forbidden("登录状态已失效,请重新登录")
	}

	return claims, nil
}
