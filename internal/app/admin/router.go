/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 路由管理器(依赖装配与路由注册)
 * @func: NewRouter / SetupRoutes
 */
package admin

import (
	"net/http"

	"goadmin/internal/config"
	authHandler "goadmin/internal/handler/auth"
	systemHandler "goadmin/internal/handler/system"
	authPkg "goadmin/internal/pkg/auth"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/repository/mysql"
	redisRepo "goadmin/internal/repository/redis"
	authService "goadmin/internal/service/auth"
	systemService "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Router 路由管理器
type Router struct {
	engine            *gin.Engine
	middlewareManager *MiddlewareManager
	loginHandler      *authHandler.LoginHandler
	menuHandler       *systemHandler.MenuHandler
	roleHandler       *systemHandler.RoleHandler
	userHandler       *systemHandler.UserHandler
	deptHandler       *systemHandler.DeptHandler
	postHandler       *systemHandler.PostHandler
}

// NewRouter 创建路由管理器实例
// 控制器是服务集合,先初始化仓库和服务,然后服务装填成控制器
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Router {
	// 初始化工具包
	jwtManager := authPkg.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer, cfg.Security.JWT.TokenExpire)
	passwordManager := authPkg.NewPasswordManager(authPkg.DefaultPasswordConfig)

	// 纯数据访问层
	userRepo := mysql.NewUserRepository(db)
	roleRepo := mysql.NewRoleRepository(db)
	menuRepo := mysql.NewMenuRepository(db)
	deptRepo := mysql.NewDeptRepository(db)
	postRepo := mysql.NewPostRepository(db)

	var roleCache *redisRepo.RoleCacheRepository
	if redisClient != nil {
		roleCache = redisRepo.NewRoleCacheRepository(redisClient)
	}

	// 业务服务层
	menuService := systemService.NewMenuService(menuRepo, roleRepo, roleCache)
	roleService := systemService.NewRoleService(roleRepo, menuService, roleCache)
	userService := systemService.NewUserService(userRepo, roleRepo, deptRepo, postRepo, passwordManager)
	deptService := systemService.NewDeptService(deptRepo, userRepo)
	postService := systemService.NewPostService(postRepo, userRepo)
	sessionService := authService.NewSessionService(userRepo, passwordManager, jwtManager)

	// 中间件管理器
	middlewareManager := NewMiddlewareManager(cfg, sessionService)

	// 处理器
	loginHandler := authHandler.NewLoginHandler(sessionService)
	menuHandler := systemHandler.NewMenuHandler(menuService)
	roleHandler := systemHandler.NewRoleHandler(roleService)
	userHandler := systemHandler.NewUserHandler(userService)
	deptHandler := systemHandler.NewDeptHandler(deptService)
	postHandler := systemHandler.NewPostHandler(postService)

	// 创建Gin引擎
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	return &Router{
		engine:            engine,
		middlewareManager: middlewareManager,
		loginHandler:      loginHandler,
		menuHandler:       menuHandler,
		roleHandler:       roleHandler,
		userHandler:       userHandler,
		deptHandler:       deptHandler,
		postHandler:       postHandler,
	}
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes() {
	// 设置全局中间件
	r.engine.Use(r.middlewareManager.GinRecoveryMiddleware())
	r.engine.Use(r.middlewareManager.GinContextMiddleware())
	r.engine.Use(r.middlewareManager.GinCORSMiddleware())
	r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
	r.engine.Use(r.middlewareManager.GinTimeoutMiddleware())

	api := r.engine.Group("/api")

	// 公共路由（不需要认证）
	r.setupPublicRoutes(api)

	// 系统管理路由（需要JWT认证）
	r.setupSystemRoutes(api)

	// 健康检查路由
	r.setupHealthRoutes(api)
}

// setupPublicRoutes 设置公共路由
func (r *Router) setupPublicRoutes(api *gin.RouterGroup) {
	system := api.Group("/system")
	{
		// 用户登录
		system.POST("/login", r.loginHandler.Login)
	}
}

// setupSystemRoutes 设置系统管理路由
func (r *Router) setupSystemRoutes(api *gin.RouterGroup) {
	system := api.Group("/system")
	system.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		// 注销
		system.POST("/logout", r.loginHandler.Logout)
	}

	// 菜单管理
	menu := system.Group("/menu")
	{
		menu.POST("/add", r.menuHandler.Add)       // 创建菜单
		menu.POST("/edit", r.menuHandler.Edit)     // 编辑菜单
		menu.POST("/del", r.menuHandler.Delete)    // 删除菜单
		menu.POST("/detail", r.menuHandler.Detail) // 菜单详情
		menu.POST("/list", r.menuHandler.List)     // 分页菜单列表
		menu.GET("/route", r.menuHandler.Route)    // 当前用户可见菜单树
	}

	// 角色管理
	role := system.Group("/role")
	{
		role.POST("/add", r.roleHandler.Add)       // 创建角色(含菜单关联)
		role.POST("/edit", r.roleHandler.Edit)     // 编辑角色(替换菜单关联)
		role.POST("/del", r.roleHandler.Delete)    // 删除角色
		role.POST("/detail", r.roleHandler.Detail) // 角色详情(含菜单ID与成员数)
		role.POST("/list", r.roleHandler.List)     // 分页角色列表
		role.POST("/all", r.roleHandler.All)       // 全部角色
	}

	// 用户管理
	user := system.Group("/user")
	{
		user.POST("/add", r.userHandler.Add)         // 创建用户(含角色/部门/岗位关联)
		user.POST("/edit", r.userHandler.Edit)       // 编辑用户
		user.POST("/update", r.userHandler.Update)   // 自助更新资料
		user.POST("/del", r.userHandler.Delete)      // 软删除用户
		user.POST("/disable", r.userHandler.Disable) // 切换禁用状态
		user.GET("/detail", r.userHandler.Detail)    // 用户详情
		user.GET("/list", r.userHandler.List)        // 分页用户列表
	}

	// 部门管理
	dept := system.Group("/dept")
	{
		dept.POST("/add", r.deptHandler.Add)       // 创建部门
		dept.POST("/edit", r.deptHandler.Edit)     // 编辑部门
		dept.POST("/del", r.deptHandler.Delete)    // 软删除部门
		dept.POST("/detail", r.deptHandler.Detail) // 部门详情
		dept.POST("/list", r.deptHandler.List)     // 部门树列表
		dept.POST("/all", r.deptHandler.All)       // 全部部门
	}

	// 岗位管理
	post := system.Group("/post")
	{
		post.POST("/add", r.postHandler.Add)       // 创建岗位
		post.POST("/edit", r.postHandler.Edit)     // 编辑岗位
		post.POST("/del", r.postHandler.Delete)    // 软删除岗位
		post.POST("/detail", r.postHandler.Detail) // 岗位详情
		post.POST("/list", r.postHandler.List)     // 分页岗位列表
		post.POST("/all", r.postHandler.All)       // 全部岗位
	}
}

// setupHealthRoutes 设置健康检查路由
func (r *Router) setupHealthRoutes(api *gin.RouterGroup) {
	api.GET("/health", r.healthCheck)
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// healthCheck 健康检查处理器
func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": logger.NowFormatted(),
	})
}
