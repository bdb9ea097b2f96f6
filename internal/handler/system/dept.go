// 部门管理接口
package system

import (
	"goadmin/internal/model"
	systemservice "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
)

// DeptHandler 部门管理处理器
type DeptHandler struct {
	deptService *systemservice.DeptService
}

// NewDeptHandler 创建部门管理处理器
func NewDeptHandler(deptService *systemservice.DeptService) *DeptHandler {
	return &DeptHandler{
		deptService: deptService,
	}
}

// Add 创建部门
func (h *DeptHandler) Add(c *gin.Context) {
	var req model.DeptAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.deptService.AddDept(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Edit 编辑部门
func (h *DeptHandler) Edit(c *gin.Context) {
	var req model.DeptEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.deptService.EditDept(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Delete 删除部门
func (h *DeptHandler) Delete(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.deptService.DeleteDept(c.Request.Context(), req.ID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Detail 部门详情
func (h *DeptHandler) Detail(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	dept, err := h.deptService.GetDeptDetail(c.Request.Context(), req.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, dept)
}

// List 部门树列表
func (h *DeptHandler) List(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`   // 部门名称模糊匹配，可选
		IsStop *uint8 `json:"isStop"` // 停用状态过滤，可选
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	tree, err := h.deptService.GetDeptList(c.Request.Context(), req.Name, req.IsStop)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, tree)
}

// All 全部部门平铺列表(下拉选择用)
func (h *DeptHandler) All(c *gin.Context) {
	depts, err := h.deptService.GetAllDepts(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, depts)
}
