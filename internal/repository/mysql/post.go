/*
 * 岗位仓库层:岗位数据访问
 * @author: sun977
 * @date: 2025.10.14
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.岗位基础CRUD(软删除)
 * 2.编码/名称查重
 */

package mysql

import (
	"context"
	"time"

	"goadmin/internal/model"
	"goadmin/internal/pkg/logger"

	"gorm.io/gorm"
)

// PostRepository 岗位仓库结构体
type PostRepository struct {
	db *gorm.DB // 数据库连接
}

// NewPostRepository 创建岗位仓库实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

// CreatePost 创建岗位
func (r *PostRepository) CreatePost(ctx context.Context, post *model.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err != nil {
		logger.LogError(err, "post", "create_post", map[string]interface{}{
			"code":      post.Code,
			"name":      post.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetPostByID 根据ID获取未删除的岗位
func (r *PostRepository) GetPostByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ? AND is_delete = ?", id, 0).First(&post).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "post", "get_post_by_id", map[string]interface{}{
			"post_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &post, nil
}

// GetPostList 分页获取未删除岗位列表
// code/name 非空时模糊过滤，排序为 sort 降序、同序号按 id 降序
func (r *PostRepository) GetPostList(ctx context.Context, offset, limit int, code, name string) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Post{}).Where("is_delete = ?", 0)
	if code != "" {
		query = query.Where("code LIKE ?", "%"+code+"%")
	}
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("sort DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// GetAllPosts 获取全部未删除岗位(不分页)
func (r *PostRepository) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Where("is_delete = ?", 0).
		Order("sort DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// PostCodeExists 检查岗位编码是否被其他未删除岗位占用
func (r *PostRepository) PostCodeExists(ctx context.Context, code string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("code = ? AND is_delete = ?", code, 0)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// UpdatePost 更新岗位信息
func (r *PostRepository) UpdatePost(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(post).Error
	if err != nil {
		logger.LogError(err, "post", "update_post", map[string]interface{}{
			"post_id":   post.ID,
			"name":      post.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// SoftDeletePost 软删除岗位
// 是否仍被用户关联由业务层校验
func (r *PostRepository) SoftDeletePost(ctx context.Context, postID uint) error {
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"is_delete":  1,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		logger.LogError(err, "post", "soft_delete_post", map[string]interface{}{
			"post_id":   postID,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}
