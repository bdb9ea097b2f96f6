/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 部门业务逻辑(部门增删改查与树形装配)
 * @func:
 * 1.部门增删改查
 * 2.部门树装配
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

// DeptService 部门服务
type DeptService struct {
	deptRepo *mysql.DeptRepository // 部门数据仓库
	userRepo *mysql.UserRepository // 用户数据仓库(校验部门使用情况)
}

// NewDeptService 创建新的部门服务实例
func NewDeptService(deptRepo *mysql.DeptRepository, userRepo *mysql.UserRepository) *DeptService {
	return &DeptService{
		deptRepo: deptRepo,
		userRepo: userRepo,
	}
}

// AddDept 创建部门
func (s *DeptService) AddDept(ctx context.Context, req *model.DeptAddRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("创建部门请求不能为空")
	}

	// 上级部门必须存在(0为根)
	if req.Pid > 0 {
		parent, err := s.deptRepo.GetDeptByID(ctx, req.Pid)
		if err != nil {
			return errs.Internal("查询上级部门失败", err)
		}
		if parent == nil {
			return errs.NotFound("上级部门不存在!")
		}
	}

	dept := &model.Dept{
		Pid:    req.Pid,
		Name:   req.Name,
		Duty:   req.Duty,
		Mobile: req.Mobile,
		Sort:   req.Sort,
		IsStop: req.IsStop,
	}

	if err := s.deptRepo.CreateDept(ctx, dept); err != nil {
		return errs.Internal("创建部门失败", err)
	}

	logger.LogBusinessOperation("create_dept", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Dept created successfully", map[string]interface{}{
		"dept_id":   dept.ID,
		"name":      dept.Name,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// EditDept 编辑部门
func (s *DeptService) EditDept(ctx context.Context, req *model.DeptEditRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("编辑部门请求不能为空")
	}
	if req.Pid == req.ID {
		return errs.Validation("上级部门不能为自己!")
	}

	dept, err := s.deptRepo.GetDeptByID(ctx, req.ID)
	if err != nil {
		return errs.Internal("查询部门失败", err)
	}
	if dept == nil {
		return errs.NotFound("部门已不存在!")
	}

	if req.Pid > 0 {
		parent, err := s.deptRepo.GetDeptByID(ctx, req.Pid)
		if err != nil {
			return errs.Internal("查询上级部门失败", err)
		}
		if parent == nil {
			return errs.NotFound("上级部门不存在!")
		}
	}

	dept.Pid = req.Pid
	dept.Name = req.Name
	dept.Duty = req.Duty
	dept.Mobile = req.Mobile
	dept.Sort = req.Sort
	dept.IsStop = req.IsStop

	if err := s.deptRepo.UpdateDept(ctx, dept); err != nil {
		return errs.Internal("更新部门失败", err)
	}

	logger.LogBusinessOperation("update_dept", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Dept updated successfully", map[string]interface{}{
		"dept_id":   dept.ID,
		"name":      dept.Name,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// DeleteDept 软删除部门
// 存在子部门或仍被用户关联时拒绝
func (s *DeptService) DeleteDept(ctx context.Context, deptID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	dept, err := s.deptRepo.GetDeptByID(ctx, deptID)
	if err != nil {
		return errs.Internal("查询部门失败", err)
	}
	if dept == nil {
		return errs.NotFound("部门已不存在!")
	}

	children, err := s.deptRepo.CountChildren(ctx, deptID)
	if err != nil {
		return errs.Internal("查询子部门失败", err)
	}
	if children > 0 {
		return errs.Conflict("请先删除子级部门再操作!")
	}

	members, err := s.userRepo.CountUsersByDeptID(ctx, deptID)
	if err != nil {
		return errs.Internal("查询部门使用情况失败", err)
	}
	if members > 0 {
		return errs.Conflict("部门已被管理员使用,请先移除")
	}

	if err := s.deptRepo.SoftDeleteDept(ctx, deptID); err != nil {
		return errs.Internal("删除部门失败", err)
	}

	logger.LogBusinessOperation("delete_dept", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Dept deleted successfully", map[string]interface{}{
		"dept_id":   deptID,
		"name":      dept.Name,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// GetDeptDetail 获取部门详情
func (s *DeptService) GetDeptDetail(ctx context.Context, deptID uint) (*model.Dept, error) {
	dept, err := s.deptRepo.GetDeptByID(ctx, deptID)
	if err != nil {
		return nil, errs.Internal("查询部门失败", err)
	}
	if dept == nil {
		return nil, errs.NotFound("部门已不存在!")
	}
	return dept, nil
}

// GetDeptList 获取部门树
// 过滤条件作用于平铺列表，结果按pid装配为树
func (s *DeptService) GetDeptList(ctx context.Context, name string, isStop *uint8) ([]*model.Dept, error) {
	depts, err := s.deptRepo.GetAllDepts(ctx, name, isStop)
	if err != nil {
		return nil, errs.Internal("查询部门列表失败", err)
	}
	return BuildDeptTree(depts), nil
}

// GetAllDepts 获取全部部门平铺列表(下拉选择用)
func (s *DeptService) GetAllDepts(ctx context.Context) ([]*model.Dept, error) {
	depts, err := s.deptRepo.GetAllDepts(ctx, "", nil)
	if err != nil {
		return nil, errs.Internal("查询部门列表失败", err)
	}
	return depts, nil
}

// BuildDeptTree 将平铺部门列表装配为森林
// 与菜单树相同的两遍算法，孤儿节点作为额外根返回
func BuildDeptTree(depts []*model.Dept) []*model.Dept {
	index := make(map[uint]*model.Dept, len(depts))
	for _, d := range depts {
		d.Children = nil
		index[d.ID] = d
	}

	roots := make([]*model.Dept, 0)
	for _, d := range depts {
		if d.Pid == 0 {
			roots = append(roots, d)
			continue
		}
		parent, ok := index[d.Pid]
		if !ok {
			roots = append(roots, d)
			continue
		}
		parent.Children = append(parent.Children, d)
	}
	return roots
}
