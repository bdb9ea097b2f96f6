/*
 * 角色仓库层:角色数据访问
 * @author: sun977
 * @date: 2025.10.14
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.角色基础CRUD
 * 2.角色菜单关联维护
 * 3.角色成员统计
 */

//  基础CRUD操作:
//  	CreateRoleWithTx - 事务创建角色
//  	GetRoleByID - 根据ID获取角色
//  	GetRoleByName - 根据角色名获取角色
//  	UpdateRoleWithTx - 事务更新角色
//  	DeleteRoleWithTx - 事务删除角色(硬删除)
//  高级查询功能:
//  	GetRoleList - 分页获取角色列表(关键字过滤)
//  	GetAllRoles - 获取全部角色
//  	RoleNameExists - 检查角色名是否被其他角色占用
//  	CountUsersByRoleID - 统计持有角色的未删除用户数
//  	GetRoleIDsByUserID - 获取用户持有的角色ID集合
//  菜单关联:
//  	GetRoleMenuIDs - 获取角色关联的菜单ID集合
//  	DeleteRoleMenusByRoleID - 事务删除角色的全部菜单关联
//  	AddRoleMenusWithTx - 事务批量写入角色菜单关联
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

// RoleRepository 角色仓库结构体
// 负责处理角色相关的数据访问，不包含业务逻辑
type RoleRepository struct {
	db *gorm.DB // 数据库连接
}

// NewRoleRepository 创建角色仓库实例
// 注入数据库连接，专注于数据访问操作
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// CreateRoleWithTx 使用事务创建角色（纯数据访问）
// 重名由 name 唯一索引兜底，冲突错误由业务层翻译
func (r *RoleRepository) CreateRoleWithTx(ctx context.Context, tx *gorm.DB, role *model.Role) error {
	err := tx.WithContext(ctx).Create(role).Error
	if err != nil {
		logger.LogError(err, "role", "create_role", map[string]interface{}{
			"name":      role.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetRoleByID 根据ID获取角色
func (r *RoleRepository) GetRoleByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		// 记录数据库错误日志
		logger.LogError(err, "role", "get_role_by_id", map[string]interface{}{
			"role_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &role, nil
}

// GetRoleByName 根据角色名获取角色
func (r *RoleRepository) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "role", "get_role_by_name", map[string]interface{}{
			"name":      name,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &role, nil
}

// RoleNameExists 检查角色名是否已被其他角色占用
// excludeID 大于0时排除该角色自身(编辑场景)
func (r *RoleRepository) RoleNameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Role{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// GetRoleList 分页获取角色列表
// keyword 非空时按角色名模糊过滤；排序为 sort 降序、同序号按 id 降序
func (r *RoleRepository) GetRoleList(ctx context.Context, offset, limit int, keyword string) ([]*model.Role, int64, error) {
	var roles []*model.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Role{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("sort DESC, id DESC").Offset(offset).Limit(limit).Find(&roles).Error
	return roles, total, err
}

// GetAllRoles 获取全部角色(不分页)
func (r *RoleRepository) GetAllRoles(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	err := r.db.WithContext(ctx).Order("sort DESC, id DESC").Find(&roles).Error
	return roles, err
}

// UpdateRoleWithTx 使用事务更新角色信息
func (r *RoleRepository) UpdateRoleWithTx(ctx context.Context, tx *gorm.DB, role *model.Role) error {
	role.UpdatedAt = time.Now()
	err := tx.WithContext(ctx).Save(role).Error
	if err != nil {
		// 记录更新失败日志
		logger.LogError(err, "role", "update_role", map[string]interface{}{
			"role_id":   role.ID,
			"name":      role.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// DeleteRoleWithTx 使用事务硬删除角色
func (r *RoleRepository) DeleteRoleWithTx(ctx context.Context, tx *gorm.DB, roleID uint) error {
	result := tx.WithContext(ctx).Delete(&model.Role{}, roleID)
	if result.Error != nil {
		logger.LogError(result.Error, "role", "delete_role", map[string]interface{}{
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	// 删除操作具有幂等性，即使没有找到记录也不应该返回错误
	return nil
}

// CountUsersByRoleID 统计持有指定角色的未删除用户数
func (r *RoleRepository) CountUsersByRoleID(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Joins("JOIN users ON users.id = user_roles.user_id").
		Where("user_roles.role_id = ? AND users.is_delete = ?", roleID, 0).
		Count(&count).Error
	return count, err
}

// GetRoleMenuIDs 获取角色关联的菜单ID集合
// 无关联时返回空切片，保证序列化为 [] 而不是 null
func (r *RoleRepository) GetRoleMenuIDs(ctx context.Context, roleID uint) ([]uint, error) {
	menuIDs := make([]uint, 0)
	err := r.db.WithContext(ctx).Model(&model.RoleMenu{}).
		Where("role_id = ?", roleID).
		Order("menu_id").
		Pluck("menu_id", &menuIDs).Error
	return menuIDs, err
}

// GetRoleIDsByUserID 获取用户持有的角色ID集合
func (r *RoleRepository) GetRoleIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	roleIDs := make([]uint, 0)
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Order("role_id").
		Pluck("role_id", &roleIDs).Error
	return roleIDs, err
}

// DeleteRoleMenusByRoleID 删除角色的所有菜单关联（事务版本）
func (r *RoleRepository) DeleteRoleMenusByRoleID(ctx context.Context, tx *gorm.DB, roleID uint) error {
	result := tx.WithContext(ctx).Where("role_id = ?", roleID).Delete(&model.RoleMenu{})
	if result.Error != nil {
		logger.LogError(result.Error, "role", "delete_role_menus", map[string]interface{}{
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	return nil
}

// AddRoleMenusWithTx 批量写入角色菜单关联（事务版本）
func (r *RoleRepository) AddRoleMenusWithTx(ctx context.Context, tx *gorm.DB, roleID uint, menuIDs []uint) error {
	if len(menuIDs) == 0 {
		return nil
	}
	relations := make([]*model.RoleMenu, 0, len(menuIDs))
	for _, menuID := range menuIDs {
		relations = append(relations, &model.RoleMenu{
			RoleID: roleID,
			MenuID: menuID,
		})
	}
	err := tx.WithContext(ctx).Create(&relations).Error
	if err != nil {
		logger.LogError(err, "role", "add_role_menus", map[string]interface{}{
			"role_id":   roleID,
			"menu_ids":  menuIDs,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// BeginTx 开始事务
func (r *RoleRepository) BeginTx(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Begin()
}
