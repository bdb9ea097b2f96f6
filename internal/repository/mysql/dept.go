/*
 * 部门仓库层:部门数据访问
 * @author: sun977
 * @date: 2025.10.14
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.部门基础CRUD(软删除)
 * 2.树形查询支持(子节点统计)
 */

package mysql

import (
	"context"
	"time"

	"goadmin/internal/model"
	"goadmin/internal/pkg/logger"

	"gorm.io/gorm"
)

// DeptRepository 部门仓库结构体
type DeptRepository struct {
	db *gorm.DB // 数据库连接
}

// NewDeptRepository 创建部门仓库实例
func NewDeptRepository(db *gorm.DB) *DeptRepository {
	return &DeptRepository{
		db: db,
	}
}

// CreateDept 创建部门
func (r *DeptRepository) CreateDept(ctx context.Context, dept *model.Dept) error {
	err := r.db.WithContext(ctx).Create(dept).Error
	if err != nil {
		logger.LogError(err, "dept", "create_dept", map[string]interface{}{
			"name":      dept.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetDeptByID 根据ID获取未删除的部门
func (r *DeptRepository) GetDeptByID(ctx context.Context, id uint) (*model.Dept, error) {
	var dept model.Dept
	err := r.db.WithContext(ctx).Where("id = ? AND is_delete = ?", id, 0).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "dept", "get_dept_by_id", map[string]interface{}{
			"dept_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &dept, nil
}

// GetAllDepts 获取全部未删除部门
// 排序为 sort 降序、同序号按 id 升序，树装配依赖此顺序
func (r *DeptRepository) GetAllDepts(ctx context.Context, name string, isStop *uint8) ([]*model.Dept, error) {
	var depts []*model.Dept
	query := r.db.WithContext(ctx).Where("is_delete = ?", 0)
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if isStop != nil {
		query = query.Where("is_stop = ?", *isStop)
	}
	err := query.Order("sort DESC, id ASC").Find(&depts).Error
	return depts, err
}

// UpdateDept 更新部门信息
func (r *DeptRepository) UpdateDept(ctx context.Context, dept *model.Dept) error {
	dept.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Save(dept).Error
	if err != nil {
		logger.LogError(err, "dept", "update_dept", map[string]interface{}{
			"dept_id":   dept.ID,
			"name":      dept.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// SoftDeleteDept 软删除部门
// 是否存在子部门、是否仍被用户关联由业务层校验
func (r *DeptRepository) SoftDeleteDept(ctx context.Context, deptID uint) error {
	err := r.db.WithContext(ctx).Model(&model.Dept{}).
		Where("id = ?", deptID).
		Updates(map[string]interface{}{
			"is_delete":  1,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		logger.LogError(err, "dept", "soft_delete_dept", map[string]interface{}{
			"dept_id":   deptID,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// CountChildren 统计直接子部门数量(未删除)
func (r *DeptRepository) CountChildren(ctx context.Context, pid uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Dept{}).
		Where("pid = ? AND is_delete = ?", pid, 0).
		Count(&count).Error
	return count, err
}
