// 从 YAML 文件批量导入课程、学习资料与测验
//
// 用法: go run scripts/import_courses.go -file courses.yaml

package main

import (
	"context"
	"flag"
	"lms_backend/internal/config"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"log"
	"os"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "courses.yaml", "课程 YAML 文件路径")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("打开课程文件失败: %v", err)
	}
	defer f.Close()

	courses, err := service.ImportCatalog(context.Background(), db, f)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	for _, c := range courses {
		logger.Log.Info("课程已导入", zap.Uint("id", c.ID), zap.String("title", c.Title))
	}
	log.Printf("完成！共导入 %d 门课程", len(courses))
}
