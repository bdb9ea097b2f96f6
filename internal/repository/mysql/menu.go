/*
 * 菜单仓库层:菜单数据访问
 * @author: sun977
 * @date: 2025.10.14
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.菜单基础CRUD
 * 2.树形查询支持(子节点统计)
 */

//  基础CRUD操作:
//  	CreateMenu - 创建菜单
//  	GetMenuByID - 根据ID获取菜单
//  	UpdateMenu - 更新菜单
//  	DeleteMenu - 删除菜单(硬删除)
//  高级查询功能:
//  	GetAllMenus - 获取全部菜单(排序)
//  	GetMenuList - 分页获取菜单
//  	GetMenusByIDs - 按ID集合获取菜单
//  	CountChildren - 统计直接子菜单数量

package mysql

import (
	"context"
	"time"

	"goadmin/internal/model"
	"goadmin/internal/pkg/logger"

	"gorm.io/gorm"
)

// MenuRepository 菜单仓库结构体
// 负责处理菜单相关的数据访问，不包含业务逻辑
type MenuRepository struct {
	db *gorm.DB // 数据库连接
}

// NewMenuRepository 创建菜单仓库实例
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{
		db: db,
	}
}

// CreateMenu 创建菜单（纯数据访问）
func (r *MenuRepository) CreateMenu(ctx context.Context, menu *model.Menu) error {
	err := r.db.WithContext(ctx).Create(menu).Error
	if err != nil {
		logger.LogError(err, "menu", "create_menu", map[string]interface{}{
			"menu_name": menu.MenuName,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetMenuByID 根据ID获取菜单
func (r *MenuRepository) GetMenuByID(ctx context.Context, id uint) (*model.Menu, error) {
	var menu model.Menu
	err := r.db.WithContext(ctx).First(&menu, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		// 记录数据库错误日志
		logger.LogError(err, "menu", "get_menu_by_id", map[string]interface{}{
			"menu_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu 更新菜单信息
func (r *MenuRepository) UpdateMenu(ctx context.Context, menu *model.Menu) error {
	menu.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(menu).Error
	if err != nil {
		logger.LogError(err, "menu", "update_menu", map[string]interface{}{
			"menu_id":   menu.ID,
			"menu_name": menu.MenuName,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// DeleteMenu 硬删除菜单
// 是否存在子菜单由业务层校验
func (r *MenuRepository) DeleteMenu(ctx context.Context, menuID uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Menu{}, menuID)
	if result.Error != nil {
		logger.LogError(result.Error, "menu", "delete_menu", map[string]interface{}{
			"menu_id":   menuID,
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	return nil
}

// GetAllMenus 获取全部菜单
// 排序为 menu_sort 降序、同序号按 id 升序，树装配依赖此顺序
func (r *MenuRepository) GetAllMenus(ctx context.Context) ([]*model.Menu, error) {
	var menus []*model.Menu
	err := r.db.WithContext(ctx).Order("menu_sort DESC, id ASC").Find(&menus).Error
	return menus, err
}

// GetMenuList 分页获取菜单列表
// 排序与全量查询一致
func (r *MenuRepository) GetMenuList(ctx context.Context, offset, limit int) ([]*model.Menu, int64, error) {
	var menus []*model.Menu
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Menu{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("menu_sort DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&menus).Error
	return menus, total, err
}

// GetMenusByIDs 按ID集合获取菜单
func (r *MenuRepository) GetMenusByIDs(ctx context.Context, ids []uint) ([]*model.Menu, error) {
	if len(ids) == 0 {
		return []*model.Menu{}, nil
	}
	var menus []*model.Menu
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("menu_sort DESC, id ASC").
		Find(&menus).Error
	return menus, err
}

// CountChildren 统计直接子菜单数量
func (r *MenuRepository) CountChildren(ctx context.Context, pid uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Menu{}).Where("pid = ?", pid).Count(&count).Error
	return count, err
}
