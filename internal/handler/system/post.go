// 岗位管理接口
package system

import (
	"goadmin/internal/model"
	systemservice "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
)

// PostHandler 岗位管理处理器
type PostHandler struct {
	postService *systemservice.PostService
}

// NewPostHandler 创建岗位管理处理器
func NewPostHandler(postService *systemservice.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Add 创建岗位
func (h *PostHandler) Add(c *gin.Context) {
	var req model.PostAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.postService.AddPost(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Edit 编辑岗位
func (h *PostHandler) Edit(c *gin.Context) {
	var req model.PostEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.postService.EditPost(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Delete 删除岗位
func (h *PostHandler) Delete(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), req.ID); err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, nil)
}

// Detail 岗位详情
func (h *PostHandler) Detail(c *gin.Context) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	post, err := h.postService.GetPostDetail(c.Request.Context(), req.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, post)
}

// List 分页岗位列表
func (h *PostHandler) List(c *gin.Context) {
	var req struct {
		model.PageParams
		Code string `json:"code"` // 岗位编码模糊匹配，可选
		Name string `json:"name"` // 岗位名称模糊匹配，可选
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondInvalidParams(c, err)
		return
	}

	result, err := h.postService.GetPostList(c.Request.Context(), &req.PageParams, req.Code, req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, result)
}

// All 全部岗位(下拉选择用)
func (h *PostHandler) All(c *gin.Context) {
	posts, err := h.postService.GetAllPosts(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondSuccess(c, posts)
}
