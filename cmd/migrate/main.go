/*
*
  - 数据库迁移工具
  - @author: sun977
  - @date: 2025.10.15
  - @description: 数据库模型迁移和初始数据填充工具
  - @usage: go run main.go -env=test -seed=true -drop=true
    -drop
    是否先删除表（危险操作）
    -env string
    环境标识 (development, test, production) (default "development")
    -seed
    是否填充初始数据 (default true)

示例:
main.exe -env=test -seed=true          # 测试环境迁移并填充数据
main.exe -env=production -seed=false   # 生产环境仅迁移表结构
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"goadmin/internal/config"
	"goadmin/internal/model"
	"goadmin/internal/pkg/auth"
	"goadmin/internal/pkg/database"
	"goadmin/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateOptions 迁移选项配置
type MigrateOptions struct {
	Environment string // 环境标识: development, test, production
	SeedData    bool   // 是否填充初始数据
	DropFirst   bool   // 是否先删除表（危险操作）
}

// DataSeeder 初始数据填充器
type DataSeeder struct {
	db  *gorm.DB
	env string
	log *logger.LoggerManager
}

func main() {
	// 解析命令行参数
	opts := parseFlags()

	// 加载配置
	cfg, err := config.LoadConfig("", opts.Environment)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 初始化日志管理器
	logManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"operation":   "database_migration",
		"environment": opts.Environment,
		"seed_data":   opts.SeedData,
		"drop_first":  opts.DropFirst,
	}).Info("开始数据库迁移")

	// 初始化数据库连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		logManager.GetLogger().WithField("error", err.Error()).Fatal("数据库连接失败")
	}

	// 执行迁移
	if err := performMigration(db, opts, logManager); err != nil {
		logManager.GetLogger().WithField("error", err.Error()).Fatal("数据库迁移失败")
	}

	logManager.GetLogger().Info("数据库迁移完成")
}

// parseFlags 解析命令行参数
func parseFlags() *MigrateOptions {
	opts := &MigrateOptions{}

	flag.StringVar(&opts.Environment, "env", "development", "环境标识 (development, test, production)")
	flag.BoolVar(&opts.SeedData, "seed", true, "是否填充初始数据")
	flag.BoolVar(&opts.DropFirst, "drop", false, "是否先删除表（危险操作）")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "GoAdmin 数据库迁移工具\n\n")
		fmt.Fprintf(os.Stderr, "用法: %s [选项]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n示例:\n")
		fmt.Fprintf(os.Stderr, "  %s -env=test -seed=true          # 测试环境迁移并填充数据\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -env=production -seed=false   # 生产环境仅迁移表结构\n", os.Args[0])
	}

	flag.Parse()
	return opts
}

// performMigration 执行数据库迁移
func performMigration(db *gorm.DB, opts *MigrateOptions, logManager *logger.LoggerManager) error {
	// 1. 删除表（如果指定）
	if opts.DropFirst {
		if err := dropTables(db, logManager); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}

	// 2. 执行模型迁移
	if err := migrateModels(db, logManager); err != nil {
		return fmt.Errorf("模型迁移失败: %w", err)
	}

	// 3. 填充初始数据（如果指定）
	if opts.SeedData {
		seeder := NewDataSeeder(db, opts.Environment, logManager)
		if err := seeder.SeedAll(); err != nil {
			return fmt.Errorf("数据填充失败: %w", err)
		}
	}

	return nil
}

// dropTables 删除所有表
// 危险操作，仅用于开发环境重置
func dropTables(db *gorm.DB, logManager *logger.LoggerManager) error {
	logManager.GetLogger().Warn("开始删除数据库表")

	// 按依赖关系逆序：关联表先删除，主表后删除
	models := []interface{}{
		&model.UserRole{},
		&model.UserDept{},
		&model.UserPost{},
		&model.RoleMenu{},

		&model.User{},
		&model.Role{},
		&model.Menu{},
		&model.Dept{},
		&model.Post{},
	}

	for _, m := range models {
		if err := db.Migrator().DropTable(m); err != nil {
			logManager.GetLogger().WithFields(logrus.Fields{
				"model": fmt.Sprintf("%T", m),
				"error": err.Error(),
			}).Error("删除表失败")
		}
	}

	return nil
}

// migrateModels 执行模型迁移
func migrateModels(db *gorm.DB, loggerMgr *logger.LoggerManager) error {
	loggerMgr.GetLogger().Info("开始执行模型迁移...")

	models := []interface{}{
		// 主表
		&model.User{},
		&model.Role{},
		&model.Menu{},
		&model.Dept{},
		&model.Post{},

		// 关联表
		&model.UserRole{},
		&model.UserDept{},
		&model.UserPost{},
		&model.RoleMenu{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("迁移模型 %T 失败: %w", m, err)
		}
		loggerMgr.GetLogger().WithField("model", fmt.Sprintf("%T", m)).Info("模型迁移成功")
	}

	loggerMgr.GetLogger().Info("所有模型迁移完成")
	return nil
}

// NewDataSeeder 创建数据填充器
func NewDataSeeder(db *gorm.DB, env string, logManager *logger.LoggerManager) *DataSeeder {
	return &DataSeeder{
		db:  db,
		env: env,
		log: logManager,
	}
}

// SeedAll 填充所有初始数据
func (s *DataSeeder) SeedAll() error {
	s.log.GetLogger().WithField("env", s.env).Info("开始填充初始数据")

	// 按依赖关系顺序填充数据
	seedFunctions := []struct {
		name string
		fn   func() error
	}{
		{"基础菜单", s.seedMenus},
		{"基础角色", s.seedRoles},
		{"基础部门", s.seedDepts},
		{"基础岗位", s.seedPosts},
		{"超级管理员", s.seedSuperAdmin},
	}

	for _, seed := range seedFunctions {
		s.log.GetLogger().WithField("module", seed.name).Info("填充数据模块")
		if err := seed.fn(); err != nil {
			return fmt.Errorf("填充%s失败: %w", seed.name, err)
		}
	}

	s.log.GetLogger().Info("初始数据填充完成")
	return nil
}

// seedMenus 填充基础菜单（系统管理目录及其下属菜单）
func (s *DataSeeder) seedMenus() error {
	// 系统管理根目录
	systemDir := model.Menu{
		Pid:       0,
		MenuType:  model.MenuTypeDirectory,
		MenuName:  "系统管理",
		MenuIcon:  "el-icon-setting",
		MenuSort:  100,
		Paths:     "system",
		IsShow:    1,
		IsDisable: 0,
	}
	if err := s.db.Where("menu_name = ? AND pid = 0", systemDir.MenuName).FirstOrCreate(&systemDir).Error; err != nil {
		return fmt.Errorf("创建系统管理目录失败: %w", err)
	}

	menus := []model.Menu{
		{Pid: systemDir.ID, MenuType: model.MenuTypeMenu, MenuName: "用户管理", MenuIcon: "el-icon-user", MenuSort: 90, Perms: "system:user:list", Paths: "user", Component: "system/user/index", IsShow: 1},
		{Pid: systemDir.ID, MenuType: model.MenuTypeMenu, MenuName: "角色管理", MenuIcon: "el-icon-s-custom", MenuSort: 80, Perms: "system:role:list", Paths: "role", Component: "system/role/index", IsShow: 1},
		{Pid: systemDir.ID, MenuType: model.MenuTypeMenu, MenuName: "菜单管理", MenuIcon: "el-icon-menu", MenuSort: 70, Perms: "system:menu:list", Paths: "menu", Component: "system/menu/index", IsShow: 1},
		{Pid: systemDir.ID, MenuType: model.MenuTypeMenu, MenuName: "部门管理", MenuIcon: "el-icon-office-building", MenuSort: 60, Perms: "system:dept:list", Paths: "dept", Component: "system/dept/index", IsShow: 1},
		{Pid: systemDir.ID, MenuType: model.MenuTypeMenu, MenuName: "岗位管理", MenuIcon: "el-icon-postcard", MenuSort: 50, Perms: "system:post:list", Paths: "post", Component: "system/post/index", IsShow: 1},
	}

	for _, menu := range menus {
		if err := s.db.Where("menu_name = ? AND pid = ?", menu.MenuName, menu.Pid).FirstOrCreate(&menu).Error; err != nil {
			return fmt.Errorf("创建菜单失败: %w", err)
		}
	}

	return nil
}

// seedRoles 填充基础角色并关联全部菜单
func (s *DataSeeder) seedRoles() error {
	roles := []model.Role{
		{Name: "系统管理员", Remark: "拥有全部系统管理菜单的角色", Sort: 100, IsDisable: 0},
		{Name: "普通管理员", Remark: "基础后台操作角色", Sort: 50, IsDisable: 0},
	}

	for i := range roles {
		if err := s.db.Where("name = ?", roles[i].Name).FirstOrCreate(&roles[i]).Error; err != nil {
			return fmt.Errorf("创建角色失败: %w", err)
		}
	}

	// 系统管理员角色关联所有菜单
	var allMenus []model.Menu
	if err := s.db.Find(&allMenus).Error; err != nil {
		return fmt.Errorf("查找菜单列表失败: %w", err)
	}
	for _, menu := range allMenus {
		roleMenu := model.RoleMenu{RoleID: roles[0].ID, MenuID: menu.ID}
		if err := s.db.Where("role_id = ? AND menu_id = ?", roleMenu.RoleID, roleMenu.MenuID).FirstOrCreate(&roleMenu).Error; err != nil {
			return fmt.Errorf("创建角色菜单关联失败: %w", err)
		}
	}

	return nil
}

// seedDepts 填充基础部门
func (s *DataSeeder) seedDepts() error {
	root := model.Dept{
		Pid:    0,
		Name:   "总公司",
		Duty:   "admin",
		Sort:   100,
		IsStop: 0,
	}
	if err := s.db.Where("name = ? AND pid = 0 AND is_delete = 0", root.Name).FirstOrCreate(&root).Error; err != nil {
		return fmt.Errorf("创建根部门失败: %w", err)
	}

	depts := []model.Dept{
		{Pid: root.ID, Name: "研发部", Sort: 90},
		{Pid: root.ID, Name: "运营部", Sort: 80},
	}
	for _, dept := range depts {
		if err := s.db.Where("name = ? AND pid = ? AND is_delete = 0", dept.Name, dept.Pid).FirstOrCreate(&dept).Error; err != nil {
			return fmt.Errorf("创建部门失败: %w", err)
		}
	}

	return nil
}

// seedPosts 填充基础岗位
func (s *DataSeeder) seedPosts() error {
	posts := []model.Post{
		{Code: "ceo", Name: "董事长", Remarks: "公司最高管理者", Sort: 100},
		{Code: "dev", Name: "研发人员", Remarks: "产品研发岗位", Sort: 50},
		{Code: "op", Name: "运营人员", Remarks: "业务运营岗位", Sort: 40},
	}

	for _, post := range posts {
		if err := s.db.Where("code = ? AND is_delete = 0", post.Code).FirstOrCreate(&post).Error; err != nil {
			return fmt.Errorf("创建岗位失败: %w", err)
		}
	}

	return nil
}

// seedSuperAdmin 填充超级管理员用户(固定ID为1)并赋予系统管理员角色
func (s *DataSeeder) seedSuperAdmin() error {
	passwordManager := auth.NewPasswordManager(nil)
	hashedPassword, err := passwordManager.HashPassword("admin123")
	if err != nil {
		return fmt.Errorf("生成管理员密码失败: %w", err)
	}

	adminUser := model.User{
		ID:       model.SuperAdminID,
		Username: "admin",
		Nickname: "超级管理员",
		Password: hashedPassword,
		Sort:     100,
	}
	if err := s.db.Where("id = ?", model.SuperAdminID).FirstOrCreate(&adminUser).Error; err != nil {
		return fmt.Errorf("创建超级管理员失败: %w", err)
	}

	var adminRole model.Role
	if err := s.db.Where("name = ?", "系统管理员").First(&adminRole).Error; err != nil {
		return fmt.Errorf("查找系统管理员角色失败: %w", err)
	}

	userRole := model.UserRole{UserID: adminUser.ID, RoleID: adminRole.ID}
	s.db.Where("user_id = ? AND role_id = ?", userRole.UserID, userRole.RoleID).FirstOrCreate(&userRole)

	return nil
}
