// 用户管理接口
package system

import (
	"goadmin/internal/model"
	"goadmin/internal/pkg/utils"
	systemservice "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService *systemservice.UserService
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(userService *systemservice.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Add 创建用户
func (h *UserHandler) Add(c *gin.Context) {
	var req model.UserAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	user, err := h.userService.AddUser(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, user)
}

// Edit 编辑用户
func (h *UserHandler) Edit(c *gin.Context) {
	var req model.UserEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.userService.EditUser(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Update 自助更新资料(头像/昵称/密码)
// 目标用户取认证中间件写入上下文的当前用户
func (h *UserHandler) Update(c *gin.Context) {
	var req model.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	userID := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.userService.UpdateUser(c.Request.Context(), &req, userID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Delete 软删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), req.ID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Disable 切换用户禁用状态
func (h *UserHandler) Disable(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.userService.DisableUser(c.Request.Context(), req.ID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Detail 用户详情(GET)
func (h *UserHandler) Detail(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	detail, err := h.userService.GetUserDetail(c.Request.Context(), req.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, detail)
}

// List 分页用户列表(GET)
func (h *UserHandler) List(c *gin.Context) {
	var req model.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	result, err := h.userService.GetUserList(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, result)
}
