// 角色管理接口
package system

import (
	"goadmin/internal/model"
	systemservice "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
)

// RoleHandler 角色管理处理器
type RoleHandler struct {
	roleService *systemservice.RoleService
}

// NewRoleHandler 创建角色管理处理器
func NewRoleHandler(roleService *systemservice.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// Add 创建角色
func (h *RoleHandler) Add(c *gin.Context) {
	var req model.RoleAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.roleService.AddRole(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Edit 编辑角色
func (h *RoleHandler) Edit(c *gin.Context) {
	var req model.RoleEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.roleService.EditRole(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Delete 删除角色
func (h *RoleHandler) Delete(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), req.ID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Detail 角色详情
func (h *RoleHandler) Detail(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	detail, err := h.roleService.GetRoleDetail(c.Request.Context(), req.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, detail)
}

// List 分页角色列表
func (h *RoleHandler) List(c *gin.Context) {
	var req model.RoleListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	result, err := h.roleService.GetRoleList(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, result)
}

// All 全部角色(下拉选择用)
func (h *RoleHandler) All(c *gin.Context) {
	roles, err := h.roleService.GetAllRoles(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, roles)
}
