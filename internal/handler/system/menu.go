// 菜单管理接口
package system

import (
	"goadmin/internal/model"
	"goadmin/internal/pkg/utils"
	systemservice "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
)

// MenuHandler 菜单管理处理器
type MenuHandler struct {
	menuService *systemservice.MenuService
}

// NewMenuHandler 创建菜单管理处理器
func NewMenuHandler(menuService *systemservice.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// Add 创建菜单
func (h *MenuHandler) Add(c *gin.Context) {
	var req model.MenuAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	menu, err := h.menuService.AddMenu(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, menu)
}

// Route 当前登录用户的前端路由菜单树(GET)
// 用户ID取认证中间件写入上下文的当前用户
func (h *MenuHandler) Route(c *gin.Context) {
	userID := utils.GetUserIDFromContext(c.Request.Context())

	tree, err := h.menuService.SelectMenuTreeForUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, tree)
}

// Edit 编辑菜单
func (h *MenuHandler) Edit(c *gin.Context) {
	var req model.MenuEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.menuService.EditMenu(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Delete 删除菜单
func (h *MenuHandler) Delete(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.menuService.DeleteMenu(c.Request.Context(), req.ID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Detail 菜单详情
func (h *MenuHandler) Detail(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	menu, err := h.menuService.GetMenuDetail(c.Request.Context(), req.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, menu)
}

// List 分页菜单列表
func (h *MenuHandler) List(c *gin.Context) {
	var req model.MenuListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	result, err := h.menuService.GetMenuList(c.Request.Context(), &req.PageParams)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, result)
}
