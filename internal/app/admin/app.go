/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 应用组装(连接资源、装配路由、生命周期管理)
 * @func: NewApp / Start / Stop
 */
package admin

import (
	"fmt"

	"goadmin/internal/config"
	"goadmin/internal/pkg/database"
	"goadmin/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// App 管理后台应用实例
type App struct {
	config        *config.Config
	db            *gorm.DB
	redisClient   *redis.Client
	router        *Router
	configWatcher *config.ConfigWatcher
}

// NewApp 创建应用实例
// 初始化日志、数据库、Redis连接并完成路由装配
func NewApp(cfg *config.Config, configPath string) (*App, error) {
	// 初始化日志系统
	loggerManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// 初始化MySQL连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}

	// 初始化Redis连接(角色菜单缓存)
	redisClient, err := database.NewRedisConnection(&cfg.Database.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	// 装配路由
	router := NewRouter(cfg, db, redisClient)
	router.SetupRoutes()

	// 配置热加载：日志级别和格式支持运行时调整
	configWatcher, err := config.NewConfigWatcher(configPath, cfg.App.Environment)
	if err != nil {
		logger.Warnf("Failed to create config watcher: %v", err)
		configWatcher = nil
	} else {
		configWatcher.AddCallback(func(oldConfig, newConfig *config.Config) error {
			return loggerManager.UpdateConfig(&newConfig.Log)
		})
	}

	return &App{
		config:        cfg,
		db:            db,
		redisClient:   redisClient,
		router:        router,
		configWatcher: configWatcher,
	}, nil
}

// Start 启动后台组件(配置监听)
func (a *App) Start() error {
	if a.configWatcher != nil {
		if err := a.configWatcher.Start(); err != nil {
			logger.Warnf("Failed to start config watcher: %v", err)
		}
	}

	logger.LogSystemEvent("app", "start", "application components started", map[string]interface{}{
		"name":        a.config.App.Name,
		"version":     a.config.App.Version,
		"environment": a.config.App.Environment,
	})
	return nil
}

// Stop 停止应用并释放资源
func (a *App) Stop() error {
	if a.configWatcher != nil {
		if err := a.configWatcher.Stop(); err != nil {
			logger.Warnf("Failed to stop config watcher: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.Warnf("Failed to close redis client: %v", err)
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warnf("Failed to close mysql connection: %v", err)
			}
		}
	}

	logger.LogSystemEvent("app", "stop", "application stopped", nil)
	return nil
}

// Engine 获取HTTP引擎
func (a *App) Engine() *gin.Engine {
	return a.router.GetEngine()
}
