// 登录与注销接口
package auth

import (
	"net/http"

	"goadmin/internal/handler/system"
	"goadmin/internal/model"
	"goadmin/internal/pkg/utils"
	authservice "goadmin/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LoginHandler 登录接口处理器
type LoginHandler struct {
	sessionService *authservice.SessionService
}

// NewLoginHandler 创建登录处理器实例
func NewLoginHandler(sessionService *authservice.SessionService) *LoginHandler {
	return &LoginHandler{
		sessionService: sessionService,
	}
}

// Login 用户登录接口
// 校验账号密码，签发访问令牌并记录最后登录信息
func (h *LoginHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		system.RespondInvalidParams(c, err)
		return
	}

	resp, err := h.sessionService.Login(c.Request.Context(), &req)
	if err != nil {
		system.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Message: "登录成功",
		Data:    resp,
	})
}

// Logout 用户注销接口
func (h *LoginHandler) Logout(c *gin.Context) {
	userID := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.sessionService.Logout(c.Request.Context(), userID); err != nil {
		system.RespondError(c, err)
		return
	}
	system.RespondSuccess(c, nil)
}
