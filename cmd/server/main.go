/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 主程序入口
 * @func: 加载配置、初始化应用、启动服务器、等待中断信号
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goadmin/internal/app/admin"
	"goadmin/internal/config"
)

func main() {
	var configPath string
	var env string
	flag.StringVar(&configPath, "config", "", "配置文件目录(默认为configs)")
	flag.StringVar(&env, "env", "", "运行环境: development, test, production")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(configPath, env)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 创建应用实例
	app, err := admin.NewApp(cfg, configPath)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// 创建HTTP服务器
	addr := cfg.Server.GetAddress()
	server := &http.Server{
		Addr:           addr,
		Handler:        app.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器的goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 给服务器5秒钟的时间来完成现有请求
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if err := app.Stop(); err != nil {
		log.Printf("App stop error: %v", err)
	}

	fmt.Println("Server exiting")
}
