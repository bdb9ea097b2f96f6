/*
 * 用户仓库层:管理员用户数据访问
 * @author: sun977
 * @date: 2025.10.14
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.用户基础CRUD(软删除)
 * 2.用户角色/部门/岗位关联维护
 * 3.登录信息更新
 */

//  基础CRUD操作:
//  	CreateUserWithTx - 事务创建用户
//  	GetUserByID - 根据ID获取未删除用户
//  	GetUserByUsername - 根据账号获取未删除用户
//  	GetUserWithAssociations - 获取用户及角色/部门/岗位关联
//  	UpdateUserWithTx - 事务更新用户
//  	UpdateUserFields - 使用map更新特定字段
//  	SoftDeleteUserWithTx - 事务软删除用户(置is_delete标记并重命名账号)
//  高级查询功能:
//  	GetUserList - 分页获取用户列表(账号/昵称/角色过滤)
//  	UsernameExists - 检查账号是否被其他未删除用户占用
//  关联维护:
//  	DeleteUserRolesByUserID / AddUserRolesWithTx
//  	DeleteUserDeptsByUserID / AddUserDeptsWithTx
//  	DeleteUserPostsByUserID / AddUserPostsWithTx
//  	CountUsersByDeptID / CountUsersByPostID
//  登录支持:
//  	UpdateLastLogin - 更新最后登录IP和时间
//  事务支持:
//  	BeginTx - 开始事务

package mysql

import (
	"context"
	"time"

	"goadmin/internal/model"
	"goadmin/internal/pkg/logger"

	"gorm.io/gorm"
)

// UserRepository 用户仓库结构体
// 负责处理用户相关的数据访问，不包含业务逻辑
type UserRepository struct {
	db *gorm.DB // 数据库连接
}

// NewUserRepository 创建用户仓库实例
// 注入数据库连接，专注于数据访问操作
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateUserWithTx 使用事务创建用户（纯数据访问）
func (r *UserRepository) CreateUserWithTx(ctx context.Context, tx *gorm.DB, user *model.User) error {
	err := tx.WithContext(ctx).Create(user).Error
	if err != nil {
		logger.LogError(err, "user", "create_user", map[string]interface{}{
			"username":  user.Username,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetUserByID 根据ID获取未删除的用户
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ? AND is_delete = ?", id, 0).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		// 记录数据库错误日志
		logger.LogError(err, "user", "get_user_by_id", map[string]interface{}{
			"user_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据账号获取未删除的用户
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ? AND is_delete = ?", username, 0).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "user", "get_user_by_username", map[string]interface{}{
			"username":  username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &user, nil
}

// GetUserWithAssociations 获取用户及其角色/部门/岗位关联
func (r *UserRepository) GetUserWithAssociations(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Depts").
		Preload("Posts").
		Where("id = ? AND is_delete = ?", id, 0).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "user", "get_user_with_associations", map[string]interface{}{
			"user_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &user, nil
}

// UsernameExists 检查账号是否被其他未删除用户占用
// excludeID 大于0时排除该用户自身(编辑场景)
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? AND is_delete = ?", username, 0)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// GetUserList 分页获取未删除用户列表
// username/nickname 非空时模糊过滤，roleID 大于0时按角色过滤
// 排序为 sort 降序、同序号按 id 降序
func (r *UserRepository) GetUserList(ctx context.Context, offset, limit int, username, nickname string, roleID uint) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{}).Where("users.is_delete = ?", 0)
	if username != "" {
		query = query.Where("users.username LIKE ?", "%"+username+"%")
	}
	if nickname != "" {
		query = query.Where("users.nickname LIKE ?", "%"+nickname+"%")
	}
	if roleID > 0 {
		query = query.Joins("JOIN user_roles ON user_roles.user_id = users.id").
			Where("user_roles.role_id = ?", roleID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Roles").Preload("Depts").
		Order("users.sort DESC, users.id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}

// UpdateUserWithTx 使用事务更新用户信息
func (r *UserRepository) UpdateUserWithTx(ctx context.Context, tx *gorm.DB, user *model.User) error {
	user.UpdatedAt = time.Now()
	err := tx.WithContext(ctx).Save(user).Error
	if err != nil {
		// 记录更新失败日志
		logger.LogError(err, "user", "update_user", map[string]interface{}{
			"user_id":   user.ID,
			"username":  user.Username,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// UpdateUserFields 使用 map 更新用户特定字段
// 主要用于原子更新操作，如禁用状态变更
func (r *UserRepository) UpdateUserFields(ctx context.Context, userID uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

// SoftDeleteUserWithTx 使用事务软删除用户
// 置 is_delete 标记并将账号重命名为 releasedUsername，给唯一索引让位；
// 行和关联关系保留
func (r *UserRepository) SoftDeleteUserWithTx(ctx context.Context, tx *gorm.DB, userID uint, releasedUsername string) error {
	err := tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_delete":  1,
			"username":   releasedUsername,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		logger.LogError(err, "user", "soft_delete_user", map[string]interface{}{
			"user_id":   userID,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// UpdateLastLogin 更新最后登录IP和时间
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, ip string, loginTime time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_ip":   ip,
			"last_login_time": loginTime,
		}).Error
}

// DeleteUserRolesByUserID 删除用户的所有角色关联（事务版本）
func (r *UserRepository) DeleteUserRolesByUserID(ctx context.Context, tx *gorm.DB, userID uint) error {
	return tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserRole{}).Error
}

// AddUserRolesWithTx 批量写入用户角色关联（事务版本）
func (r *UserRepository) AddUserRolesWithTx(ctx context.Context, tx *gorm.DB, userID uint, roleIDs []uint) error {
	if len(roleIDs) == 0 {
		return nil
	}
	relations := make([]*model.UserRole, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		relations = append(relations, &model.UserRole{
			UserID: userID,
			RoleID: roleID,
		})
	}
	return tx.WithContext(ctx).Create(&relations).Error
}

// DeleteUserDeptsByUserID 删除用户的所有部门关联（事务版本）
func (r *UserRepository) DeleteUserDeptsByUserID(ctx context.Context, tx *gorm.DB, userID uint) error {
	return tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserDept{}).Error
}

// AddUserDeptsWithTx 批量写入用户部门关联（事务版本）
func (r *UserRepository) AddUserDeptsWithTx(ctx context.Context, tx *gorm.DB, userID uint, deptIDs []uint) error {
	if len(deptIDs) == 0 {
		return nil
	}
	relations := make([]*model.UserDept, 0, len(deptIDs))
	for _, deptID := range deptIDs {
		relations = append(relations, &model.UserDept{
			UserID: userID,
			DeptID: deptID,
		})
	}
	return tx.WithContext(ctx).Create(&relations).Error
}

// DeleteUserPostsByUserID 删除用户的所有岗位关联（事务版本）
func (r *UserRepository) DeleteUserPostsByUserID(ctx context.Context, tx *gorm.DB, userID uint) error {
	return tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserPost{}).Error
}

// AddUserPostsWithTx 批量写入用户岗位关联（事务版本）
func (r *UserRepository) AddUserPostsWithTx(ctx context.Context, tx *gorm.DB, userID uint, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	relations := make([]*model.UserPost, 0, len(postIDs))
	for _, postID := range postIDs {
		relations = append(relations, &model.UserPost{
			UserID: userID,
			PostID: postID,
		})
	}
	return tx.WithContext(ctx).Create(&relations).Error
}

// CountUsersByDeptID 统计关联指定部门的未删除用户数
func (r *UserRepository) CountUsersByDeptID(ctx context.Context, deptID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserDept{}).
		Joins("JOIN users ON users.id = user_depts.user_id").
		Where("user_depts.dept_id = ? AND users.is_delete = ?", deptID, 0).
		Count(&count).Error
	return count, err
}

// CountUsersByPostID 统计关联指定岗位的未删除用户数
func (r *UserRepository) CountUsersByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserPost{}).
		Joins("JOIN users ON users.id = user_posts.user_id").
		Where("user_posts.post_id = ? AND users.is_delete = ?", postID, 0).
		Count(&count).Error
	return count, err
}

// BeginTx 开始事务
func (r *UserRepository) BeginTx(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Begin()
}
