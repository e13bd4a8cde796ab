package main

import (
	"log"

	"github.com/yockii/wx_publisher/internal/model"
	"github.com/yockii/wx_publisher/internal/server"
	"github.com/yockii/wx_publisher/pkg/config"
	"github.com/yockii/wx_publisher/pkg/database"
	"github.com/yockii/wx_publisher/pkg/logger"
	"github.com/yockii/wx_publisher/pkg/util"
)

func main() {
	// 初始化配置
	if err := config.Init(); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}

	if err := util.InitNode(config.GetUint64("server.node_id")); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}

	// 初始化日志
	logger.Init()
	defer logger.Sync()

	// 连接数据库，失败时只使用文件保存用户配置
	if err := database.Init(); err != nil {
		logger.Warn("数据库连接失败，用户配置仅保存到文件", logger.F("error", err))
	} else if err := model.AutoMigrate(database.GetDB(), config.GetString("database.type")); err != nil {
		logger.Warn("数据库迁移失败", logger.F("error", err))
	}
	defer database.Close()

	// 创建服务器实例
	srv := server.New(database.GetDB())

	// 启动服务器
	if err := srv.Start(); err != nil {
		log.Fatalf("服务停止: %v", err)
	}
}
