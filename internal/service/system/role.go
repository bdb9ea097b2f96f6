/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 角色业务逻辑(角色增删改查与菜单关联维护)
 * @func:
 * 1.创建角色(含菜单关联)
 * 2.编辑角色(全量替换菜单关联)
 * 3.删除角色(校验使用情况后级联删除关联)
 * 4.角色详情/列表/全量
 */

//  角色管理:
//  	AddRole - 创建角色(事务:查重+插入+菜单关联)
//  	EditRole - 编辑角色(事务:更新+替换菜单关联)
//  	DeleteRole - 删除角色(事务:删除关联+角色行)
//  	GetRoleDetail - 角色详情(含菜单ID与成员数)
//  	GetRoleList - 分页获取角色列表
//  	GetAllRoles - 全部角色(下拉选择用)

package system

import (
	"context"
	"errors"
	"strings"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/pkg/utils"
	"goadmin/internal/repository/mysql"
	redisrepo "goadmin/internal/repository/redis"

	"gorm.io/gorm"
)

// RoleService 角色服务
// 负责角色相关的业务逻辑，多行写操作全部走事务
type RoleService struct {
	roleRepo    *mysql.RoleRepository          // 角色数据仓库
	menuService *MenuService                   // 菜单服务(解析菜单关联)
	roleCache   *redisrepo.RoleCacheRepository // 角色菜单缓存，可为空(测试环境)
}

// NewRoleService 创建新的角色服务实例
func NewRoleService(roleRepo *mysql.RoleRepository, menuService *MenuService, roleCache *redisrepo.RoleCacheRepository) *RoleService {
	return &RoleService{
		roleRepo:    roleRepo,
		menuService: menuService,
		roleCache:   roleCache,
	}
}

// AddRole 创建角色
// 单事务完成:去空格名称查重、插入角色行、解析逗号分隔菜单ID串并写入关联；
// 任何一步失败整体回滚。name唯一索引是并发重名的最终防线，
// 唯一键冲突同样翻译为重名冲突错误
func (s *RoleService) AddRole(ctx context.Context, req *model.RoleAddRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("创建角色请求不能为空")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return errs.Validation("角色名称不能为空")
	}

	// 重名预检查
	exists, err := s.roleRepo.RoleNameExists(ctx, name, 0)
	if err != nil {
		return errs.Internal("查询角色失败", err)
	}
	if exists {
		return errs.Conflict("角色名称已存在!")
	}

	// 解析并校验菜单关联，未知ID静默丢弃
	menuIDs, err := s.resolveMenuIDs(ctx, req.MenuIds)
	if err != nil {
		return err
	}

	role := &model.Role{
		Name:      name,
		Remark:    req.Remark,
		Sort:      req.Sort,
		IsDisable: req.IsDisable,
	}

	tx := s.roleRepo.BeginTx(ctx)
	if tx.Error != nil {
		return errs.Internal("开启事务失败", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.roleRepo.CreateRoleWithTx(ctx, tx, role); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("角色名称已存在!")
		}
		return errs.Internal("创建角色失败", err)
	}

	if err := s.roleRepo.AddRoleMenusWithTx(ctx, tx, role.ID, menuIDs); err != nil {
		tx.Rollback()
		return errs.Internal("写入角色菜单关联失败", err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return errs.Internal("提交事务失败", err)
	}

	logger.LogBusinessOperation("create_role", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Role created successfully", map[string]interface{}{
		"role_id":    role.ID,
		"name":       role.Name,
		"menu_count": len(menuIDs),
		"timestamp":  logger.NowFormatted(),
	})

	return nil
}

// EditRole 编辑角色
// 单事务完成:更新角色字段、全删后全插替换菜单关联集合
func (s *RoleService) EditRole(ctx context.Context, req *model.RoleEditRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("编辑角色请求不能为空")
	}

	role, err := s.roleRepo.GetRoleByID(ctx, req.ID)
	if err != nil {
		return errs.Internal("查询角色失败", err)
	}
	if role == nil {
		return errs.NotFound("角色已不存在!")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return errs.Validation("角色名称不能为空")
	}

	// 重名校验排除自身
	exists, err := s.roleRepo.RoleNameExists(ctx, name, role.ID)
	if err != nil {
		return errs.Internal("查询角色失败", err)
	}
	if exists {
		return errs.Conflict("角色名称已存在!")
	}

	menuIDs, err := s.resolveMenuIDs(ctx, req.MenuIds)
	if err != nil {
		return err
	}

	role.Name = name
	role.Remark = req.Remark
	role.Sort = req.Sort
	role.IsDisable = req.IsDisable

	tx := s.roleRepo.BeginTx(ctx)
	if tx.Error != nil {
		return errs.Internal("开启事务失败", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.roleRepo.UpdateRoleWithTx(ctx, tx, role); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("角色名称已存在!")
		}
		return errs.Internal("更新角色失败", err)
	}

	if err := s.roleRepo.DeleteRoleMenusByRoleID(ctx, tx, role.ID); err != nil {
		tx.Rollback()
		return errs.Internal("删除角色菜单关联失败", err)
	}
	if err := s.roleRepo.AddRoleMenusWithTx(ctx, tx, role.ID, menuIDs); err != nil {
		tx.Rollback()
		return errs.Internal("写入角色菜单关联失败", err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return errs.Internal("提交事务失败", err)
	}

	s.invalidateRoleMenuCache(ctx, role.ID)

	logger.LogBusinessOperation("update_role", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Role updated successfully", map[string]interface{}{
		"role_id":    role.ID,
		"name":       role.Name,
		"menu_count": len(menuIDs),
		"timestamp":  logger.NowFormatted(),
	})

	return nil
}

// DeleteRole 删除角色
// 仍被未删除用户引用时拒绝；事务内先删菜单关联再删角色行
func (s *RoleService) DeleteRole(ctx context.Context, roleID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return errs.Internal("查询角色失败", err)
	}
	if role == nil {
		return errs.NotFound("角色已不存在!")
	}

	members, err := s.roleRepo.CountUsersByRoleID(ctx, roleID)
	if err != nil {
		return errs.Internal("查询角色使用情况失败", err)
	}
	if members > 0 {
		return errs.Conflict("角色已被管理员使用,请先移除")
	}

	tx := s.roleRepo.BeginTx(ctx)
	if tx.Error != nil {
		return errs.Internal("开启事务失败", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.roleRepo.DeleteRoleMenusByRoleID(ctx, tx, roleID); err != nil {
		tx.Rollback()
		return errs.Internal("删除角色菜单关联失败", err)
	}
	if err := s.roleRepo.DeleteRoleWithTx(ctx, tx, roleID); err != nil {
		tx.Rollback()
		return errs.Internal("删除角色失败", err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return errs.Internal("提交事务失败", err)
	}

	s.invalidateRoleMenuCache(ctx, roleID)

	logger.LogBusinessOperation("delete_role", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Role deleted successfully", map[string]interface{}{
		"role_id":   roleID,
		"name":      role.Name,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// GetRoleDetail 获取角色详情
// 返回角色字段、关联菜单ID集合和引用该角色的未删除用户数
func (s *RoleService) GetRoleDetail(ctx context.Context, roleID uint) (*model.RoleDetailResponse, error) {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, errs.Internal("查询角色失败", err)
	}
	if role == nil {
		return nil, errs.NotFound("角色已不存在!")
	}

	return s.buildRoleDetail(ctx, role)
}

// GetRoleList 分页获取角色列表
// 每行附加菜单ID集合与成员数量
func (s *RoleService) GetRoleList(ctx context.Context, req *model.RoleListRequest) (*model.PageResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	roles, total, err := s.roleRepo.GetRoleList(ctx, req.Offset(), req.PageSize, req.Keyword)
	if err != nil {
		return nil, errs.Internal("查询角色列表失败", err)
	}

	details := make([]*model.RoleDetailResponse, 0, len(roles))
	for _, role := range roles {
		detail, err := s.buildRoleDetail(ctx, role)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return model.NewPageResult(details, total, &req.PageParams), nil
}

// GetAllRoles 获取全部角色(不分页)，供选择组件使用
func (s *RoleService) GetAllRoles(ctx context.Context) ([]*model.Role, error) {
	roles, err := s.roleRepo.GetAllRoles(ctx)
	if err != nil {
		return nil, errs.Internal("查询角色列表失败", err)
	}
	return roles, nil
}

// buildRoleDetail 装配角色详情响应
func (s *RoleService) buildRoleDetail(ctx context.Context, role *model.Role) (*model.RoleDetailResponse, error) {
	menuIDs, err := s.roleRepo.GetRoleMenuIDs(ctx, role.ID)
	if err != nil {
		return nil, errs.Internal("查询角色菜单关联失败", err)
	}

	members, err := s.roleRepo.CountUsersByRoleID(ctx, role.ID)
	if err != nil {
		return nil, errs.Internal("查询角色使用情况失败", err)
	}

	return &model.RoleDetailResponse{
		ID:        role.ID,
		Name:      role.Name,
		Remark:    role.Remark,
		Sort:      role.Sort,
		IsDisable: role.IsDisable,
		Menus:     menuIDs,
		Member:    members,
		CreatedAt: role.CreatedAt,
		UpdatedAt: role.UpdatedAt,
	}, nil
}

// resolveMenuIDs 解析逗号分隔的菜单ID串为存在的菜单ID集合
// 未知ID静默丢弃
func (s *RoleService) resolveMenuIDs(ctx context.Context, menuIds string) ([]uint, error) {
	parsed := utils.ParseUintList(menuIds)
	if len(parsed) == 0 {
		return nil, nil
	}

	menus, err := s.menuService.SelectMenuByIds(ctx, parsed)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(menus))
	for _, m := range menus {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// invalidateRoleMenuCache 角色菜单关联变更后失效缓存
func (s *RoleService) invalidateRoleMenuCache(ctx context.Context, roleID uint) {
	if s.roleCache == nil {
		return
	}
	if err := s.roleCache.DeleteRoleMenuIDs(ctx, roleID); err != nil {
		logger.LogError(err, "role", "role_menu_cache_invalidate", map[string]interface{}{
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
	}
}
