/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 岗位业务逻辑(岗位增删改查)
 * @func:
 * 1.岗位增删改查
 * 2.编码查重
 */

package system

import (
	"context"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/pkg/utils"
	"goadmin/internal/repository/mysql"
)

// PostService 岗位服务
type PostService struct {
	postRepo *mysql.PostRepository // 岗位数据仓库
	userRepo *mysql.UserRepository // 用户数据仓库(校验岗位使用情况)
}

// NewPostService 创建新的岗位服务实例
func NewPostService(postRepo *mysql.PostRepository, userRepo *mysql.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// AddPost 创建岗位
// 岗位编码在未删除岗位间查重
func (s *PostService) AddPost(ctx context.Context, req *model.PostAddRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("创建岗位请求不能为空")
	}

	exists, err := s.postRepo.PostCodeExists(ctx, req.Code, 0)
	if err != nil {
		return errs.Internal("查询岗位失败", err)
	}
	if exists {
		return errs.Conflict("岗位编码已存在!")
	}

	post := &model.Post{
		Code:    req.Code,
		Name:    req.Name,
		Remarks: req.Remarks,
		Sort:    req.Sort,
		IsStop:  req.IsStop,
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return errs.Internal("创建岗位失败", err)
	}

	logger.LogBusinessOperation("create_post", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Post created successfully", map[string]interface{}{
		"post_id":   post.ID,
		"code":      post.Code,
		"name":      post.Name,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// EditPost 编辑岗位
// 编码查重排除自身
func (s *PostService) EditPost(ctx context.Context, req *model.PostEditRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("编辑岗位请求不能为空")
	}

	post, err := s.postRepo.GetPostByID(ctx, req.ID)
	if err != nil {
		return errs.Internal("查询岗位失败", err)
	}
	if post == nil {
		return errs.NotFound("岗位已不存在!")
	}

	exists, err := s.postRepo.PostCodeExists(ctx, req.Code, post.ID)
	if err != nil {
		return errs.Internal("查询岗位失败", err)
	}
	if exists {
		return errs.Conflict("岗位编码已存在!")
	}

	post.Code = req.Code
	post.Name = req.Name
	post.Remarks = req.Remarks
	post.Sort = req.Sort
	post.IsStop = req.IsStop

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return errs.Internal("更新岗位失败", err)
	}

	logger.LogBusinessOperation("update_post", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Post updated successfully", map[string]interface{}{
		"post_id":   post.ID,
		"code":      post.Code,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// DeletePost 软删除岗位
// 仍被用户关联时拒绝
func (s *PostService) DeletePost(ctx context.Context, postID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return errs.Internal("查询岗位失败", err)
	}
	if post == nil {
		return errs.NotFound("岗位已不存在!")
	}

	members, err := s.userRepo.CountUsersByPostID(ctx, postID)
	if err != nil {
		return errs.Internal("查询岗位使用情况失败", err)
	}
	if members > 0 {
		return errs.Conflict("岗位已被管理员使用,请先移除")
	}

	if err := s.postRepo.SoftDeletePost(ctx, postID); err != nil {
		return errs.Internal("删除岗位失败", err)
	}

	logger.LogBusinessOperation("delete_post", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Post deleted successfully", map[string]interface{}{
		"post_id":   postID,
		"code":      post.Code,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// GetPostDetail 获取岗位详情
func (s *PostService) GetPostDetail(ctx context.Context, postID uint) (*model.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, errs.Internal("查询岗位失败", err)
	}
	if post == nil {
		return nil, errs.NotFound("岗位已不存在!")
	}
	return post, nil
}

// GetPostList 分页获取岗位列表
func (s *PostService) GetPostList(ctx context.Context, params *model.PageParams, code, name string) (*model.PageResult, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	posts, total, err := s.postRepo.GetPostList(ctx, params.Offset(), params.PageSize, code, name)
	if err != nil {
		return nil, errs.Internal("查询岗位列表失败", err)
	}

	return model.NewPageResult(posts, total, params), nil
}

// GetAllPosts 获取全部岗位(下拉选择用)
func (s *PostService) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.GetAllPosts(ctx)
	if err != nil {
		return nil, errs.Internal("查询岗位列表失败", err)
	}
	return posts, nil
}
