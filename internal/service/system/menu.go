/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 菜单业务逻辑(菜单增删改查与树形装配)
 * @func:
 * 1.菜单增删改查
 * 2.菜单树装配
 * 3.按角色解析可见菜单
 */

//  菜单管理:
//  	AddMenu - 创建菜单
//  	EditMenu - 编辑菜单(全量替换字段)
//  	DeleteMenu - 删除菜单(存在子菜单时拒绝)
//  	GetMenuDetail - 菜单详情
//  	GetMenuList - 分页获取菜单列表
//  关联解析:
//  	SelectMenuByIds - 按ID集合解析菜单(未知ID静默丢弃)
//  	SelectMenuTreeForUser - 解析当前登录用户的前端路由菜单树
//  	SelectMenuByRoleID - 解析用户可见菜单树(超级管理员越过角色过滤)
//  树装配:
//  	BuildMenuTree - 平铺列表装配为森林

package system

import (
	"context"
	"time"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/pkg/utils"
	"goadmin/internal/repository/mysql"
	redisrepo "goadmin/internal/repository/redis"
)

// MenuService 菜单服务
// 负责菜单相关的业务逻辑，包括树形装配和按角色的可见性解析
type MenuService struct {
	menuRepo  *mysql.MenuRepository           // 菜单数据仓库
	roleRepo  *mysql.RoleRepository           // 角色数据仓库(解析角色菜单关联)
	roleCache *redisrepo.RoleCacheRepository  // 角色菜单缓存，可为空(测试环境)
}

// NewMenuService 创建新的菜单服务实例
func NewMenuService(menuRepo *mysql.MenuRepository, roleRepo *mysql.RoleRepository, roleCache *redisrepo.RoleCacheRepository) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		roleRepo:  roleRepo,
		roleCache: roleCache,
	}
}

// roleMenuCacheTTL 角色菜单缓存过期时间
const roleMenuCacheTTL = 30 * time.Minute

// AddMenu 创建菜单
// 菜单名称不做唯一性校验，同级允许重名
func (s *MenuService) AddMenu(ctx context.Context, req *model.MenuAddRequest) (*model.Menu, error) {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return nil, errs.Validation("创建菜单请求不能为空")
	}

	menu := &model.Menu{
		Pid:       req.Pid,
		MenuType:  req.MenuType,
		MenuName:  req.MenuName,
		MenuIcon:  req.MenuIcon,
		MenuSort:  req.MenuSort,
		Perms:     req.Perms,
		Paths:     req.Paths,
		Component: req.Component,
		Selected:  req.Selected,
		Params:    req.Params,
		IsCache:   req.IsCache,
		IsShow:    req.IsShow,
		IsDisable: req.IsDisable,
	}

	if err := s.menuRepo.CreateMenu(ctx, menu); err != nil {
		return nil, errs.Internal("创建菜单失败", err)
	}

	// 菜单变化影响所有角色的可见集合，统一失效缓存
	s.invalidateAllRoleMenuCache(ctx)

	logger.LogBusinessOperation("create_menu", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Menu created successfully", map[string]interface{}{
		"menu_id":   menu.ID,
		"menu_name": menu.MenuName,
		"menu_type": menu.MenuType,
		"timestamp": logger.NowFormatted(),
	})

	return menu, nil
}

// EditMenu 编辑菜单
// 全量替换提交的字段并刷新更新时间
func (s *MenuService) EditMenu(ctx context.Context, req *model.MenuEditRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("编辑菜单请求不能为空")
	}
	if req.Pid == req.ID {
		return errs.Validation("上级菜单不能为自己!")
	}

	menu, err := s.menuRepo.GetMenuByID(ctx, req.ID)
	if err != nil {
		return errs.Internal("查询菜单失败", err)
	}
	if menu == nil {
		return errs.NotFound("菜单已不存在!")
	}

	menu.Pid = req.Pid
	menu.MenuType = req.MenuType
	menu.MenuName = req.MenuName
	menu.MenuIcon = req.MenuIcon
	menu.MenuSort = req.MenuSort
	menu.Perms = req.Perms
	menu.Paths = req.Paths
	menu.Component = req.Component
	menu.Selected = req.Selected
	menu.Params = req.Params
	menu.IsCache = req.IsCache
	menu.IsShow = req.IsShow
	menu.IsDisable = req.IsDisable

	if err := s.menuRepo.UpdateMenu(ctx, menu); err != nil {
		return errs.Internal("更新菜单失败", err)
	}

	s.invalidateAllRoleMenuCache(ctx)

	logger.LogBusinessOperation("update_menu", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Menu updated successfully", map[string]interface{}{
		"menu_id":   menu.ID,
		"menu_name": menu.MenuName,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// DeleteMenu 删除菜单
// 存在子菜单时拒绝删除，需先删除全部子菜单
func (s *MenuService) DeleteMenu(ctx context.Context, menuID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	menu, err := s.menuRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return errs.Internal("查询菜单失败", err)
	}
	if menu == nil {
		return errs.NotFound("菜单已不存在!")
	}

	children, err := s.menuRepo.CountChildren(ctx, menuID)
	if err != nil {
		return errs.Internal("查询子菜单失败", err)
	}
	if children > 0 {
		return errs.Conflict("请先删除子菜单再操作!")
	}

	if err := s.menuRepo.DeleteMenu(ctx, menuID); err != nil {
		return errs.Internal("删除菜单失败", err)
	}

	s.invalidateAllRoleMenuCache(ctx)

	logger.LogBusinessOperation("delete_menu", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "Menu deleted successfully", map[string]interface{}{
		"menu_id":   menuID,
		"menu_name": menu.MenuName,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// GetMenuDetail 获取菜单详情
func (s *MenuService) GetMenuDetail(ctx context.Context, menuID uint) (*model.Menu, error) {
	menu, err := s.menuRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return nil, errs.Internal("查询菜单失败", err)
	}
	if menu == nil {
		return nil, errs.NotFound("菜单已不存在!")
	}
	return menu, nil
}

// GetMenuList 分页获取菜单列表
// 排序为 menu_sort 降序、同序号按 id 升序
func (s *MenuService) GetMenuList(ctx context.Context, params *model.PageParams) (*model.PageResult, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	menus, total, err := s.menuRepo.GetMenuList(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, errs.Internal("查询菜单列表失败", err)
	}

	return model.NewPageResult(menus, total, params), nil
}

// SelectMenuByIds 按ID集合解析菜单
// 未知ID静默丢弃，供角色服务校验菜单关联
func (s *MenuService) SelectMenuByIds(ctx context.Context, ids []uint) ([]*model.Menu, error) {
	menus, err := s.menuRepo.GetMenusByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Internal("查询菜单失败", err)
	}
	return menus, nil
}

// SelectMenuTreeForUser 解析当前登录用户可见的菜单树
// 由前端路由接口调用，角色集合取自用户的角色关联
func (s *MenuService) SelectMenuTreeForUser(ctx context.Context, userID uint) ([]*model.Menu, error) {
	var roleIDs []uint
	if userID != model.SuperAdminID {
		var err error
		roleIDs, err = s.roleRepo.GetRoleIDsByUserID(ctx, userID)
		if err != nil {
			return nil, errs.Internal("查询用户角色失败", err)
		}
	}
	return s.SelectMenuByRoleID(ctx, userID, roleIDs)
}

// SelectMenuByRoleID 解析用户可见的菜单树
// 超级管理员越过角色过滤，普通用户取其全部角色关联菜单的并集；
// 仅保留未禁用的目录(D)和菜单(M)类型，结果按pid装配为树
func (s *MenuService) SelectMenuByRoleID(ctx context.Context, userID uint, roleIDs []uint) ([]*model.Menu, error) {
	var menus []*model.Menu
	var err error

	if userID == model.SuperAdminID {
		menus, err = s.menuRepo.GetAllMenus(ctx)
		if err != nil {
			return nil, errs.Internal("查询菜单失败", err)
		}
	} else {
		menus, err = s.menusOfRoles(ctx, roleIDs)
		if err != nil {
			return nil, err
		}
	}

	// 过滤禁用项和按钮类型后装配
	visible := make([]*model.Menu, 0, len(menus))
	for _, m := range menus {
		if m.IsDisable != 0 {
			continue
		}
		if m.MenuType != model.MenuTypeDirectory && m.MenuType != model.MenuTypeMenu {
			continue
		}
		visible = append(visible, m)
	}

	return BuildMenuTree(visible), nil
}

// menusOfRoles 取多个角色关联菜单的并集，保持仓库层排序
// 角色的菜单ID集合优先走缓存，未命中回源数据库并写回
func (s *MenuService) menusOfRoles(ctx context.Context, roleIDs []uint) ([]*model.Menu, error) {
	menuIDSet := make(map[uint]struct{})
	allIDs := make([]uint, 0)

	for _, roleID := range roleIDs {
		ids, err := s.roleMenuIDs(ctx, roleID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, ok := menuIDSet[id]; ok {
				continue
			}
			menuIDSet[id] = struct{}{}
			allIDs = append(allIDs, id)
		}
	}

	if len(allIDs) == 0 {
		return []*model.Menu{}, nil
	}

	menus, err := s.menuRepo.GetMenusByIDs(ctx, allIDs)
	if err != nil {
		return nil, errs.Internal("查询角色菜单失败", err)
	}
	return menus, nil
}

// roleMenuIDs 获取单个角色的菜单ID集合(读穿缓存)
func (s *MenuService) roleMenuIDs(ctx context.Context, roleID uint) ([]uint, error) {
	if s.roleCache != nil {
		ids, hit, err := s.roleCache.GetRoleMenuIDs(ctx, roleID)
		if err != nil {
			// 缓存故障降级为直接回源
			logger.LogError(err, "menu", "role_menu_cache_get", map[string]interface{}{
				"role_id":   roleID,
				"timestamp": logger.NowFormatted(),
			})
		} else if hit {
			return ids, nil
		}
	}

	ids, err := s.roleRepo.GetRoleMenuIDs(ctx, roleID)
	if err != nil {
		return nil, errs.Internal("查询角色菜单关联失败", err)
	}

	if s.roleCache != nil {
		if err := s.roleCache.StoreRoleMenuIDs(ctx, roleID, ids, roleMenuCacheTTL); err != nil {
			logger.LogError(err, "menu", "role_menu_cache_store", map[string]interface{}{
				"role_id":   roleID,
				"timestamp": logger.NowFormatted(),
			})
		}
	}

	return ids, nil
}

// invalidateAllRoleMenuCache 菜单变更后失效全部角色菜单缓存
func (s *MenuService) invalidateAllRoleMenuCache(ctx context.Context) {
	if s.roleCache == nil {
		return
	}
	if err := s.roleCache.DeleteAllRoleMenuIDs(ctx); err != nil {
		logger.LogError(err, "menu", "role_menu_cache_invalidate", map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
	}
}

// BuildMenuTree 将平铺菜单列表装配为森林
// 两遍遍历:先按id建索引，再把节点挂到父节点的Children；
// pid指向不存在节点的孤儿作为额外根节点返回，兄弟顺序保持输入顺序
func BuildMenuTree(menus []*model.Menu) []*model.Menu {
	index := make(map[uint]*model.Menu, len(menus))
	for _, m := range menus {
		m.Children = nil
		index[m.ID] = m
	}

	roots := make([]*model.Menu, 0)
	for _, m := range menus {
		if m.Pid == 0 {
			roots = append(roots, m)
			continue
		}
		parent, ok := index[m.Pid]
		if !ok {
			roots = append(roots, m)
			continue
		}
		parent.Children = append(parent.Children, m)
	}
	return roots
}
