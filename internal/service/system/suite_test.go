package system

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"goadmin/internal/model"
	"goadmin/internal/pkg/auth"
	"goadmin/internal/repository/mysql"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testServices 测试服务集合
type testServices struct {
	db          *gorm.DB
	menuService *MenuService
	roleService *RoleService
	userService *UserService
	deptService *DeptService
	postService *PostService
	userRepo    *mysql.UserRepository
	roleRepo    *mysql.RoleRepository
}

// setupTestDB 初始化SQLite内存测试数据库
// 每个测试用例使用独立的命名内存库，避免用例间数据串扰
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "打开测试数据库不应该出错")

	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Menu{},
		&model.Dept{},
		&model.Post{},
		&model.UserRole{},
		&model.UserDept{},
		&model.UserPost{},
		&model.RoleMenu{},
	)
	require.NoError(t, err, "迁移测试表结构不应该出错")

	return db
}

// setupTestServices 装配全套业务服务(缓存置空，走数据库直查)
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	db := setupTestDB(t)

	userRepo := mysql.NewUserRepository(db)
	roleRepo := mysql.NewRoleRepository(db)
	menuRepo := mysql.NewMenuRepository(db)
	deptRepo := mysql.NewDeptRepository(db)
	postRepo := mysql.NewPostRepository(db)

	passwordManager := auth.NewPasswordManager(nil)

	menuService := NewMenuService(menuRepo, roleRepo, nil)
	return &testServices{
		db:          db,
		menuService: menuService,
		roleService: NewRoleService(roleRepo, menuService, nil),
		userService: NewUserService(userRepo, roleRepo, deptRepo, postRepo, passwordManager),
		deptService: NewDeptService(deptRepo, userRepo),
		postService: NewPostService(postRepo, userRepo),
		userRepo:    userRepo,
		roleRepo:    roleRepo,
	}
}

// createTestMenu 创建测试菜单并返回
func (ts *testServices) createTestMenu(t *testing.T, pid uint, name string) *model.Menu {
	t.Helper()
	menu, err := ts.menuService.AddMenu(context.Background(), &model.MenuAddRequest{
		Pid:      pid,
		MenuType: model.MenuTypeMenu,
		MenuName: name,
		IsShow:   1,
	})
	require.NoError(t, err, "创建测试菜单不应该出错")
	return menu
}

// createTestRole 创建测试角色并返回角色行
func (ts *testServices) createTestRole(t *testing.T, name, menuIds string) *model.Role {
	t.Helper()
	err := ts.roleService.AddRole(context.Background(), &model.RoleAddRequest{
		Name:    name,
		MenuIds: menuIds,
	})
	require.NoError(t, err, "创建测试角色不应该出错")

	role, err := ts.roleRepo.GetRoleByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, role, "创建后应该能查到测试角色")
	return role
}

// createTestUser 创建测试用户并返回
func (ts *testServices) createTestUser(t *testing.T, username, password string, roleIDs []uint) *model.User {
	t.Helper()
	user, err := ts.userService.AddUser(context.Background(), &model.UserAddRequest{
		Username: username,
		Nickname: username + "昵称",
		Password: password,
		RoleIds:  roleIDs,
	})
	require.NoError(t, err, "创建测试用户不应该出错")
	return user
}
