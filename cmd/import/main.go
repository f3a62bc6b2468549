package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"recipe-finder/internal/core/importer"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 命令行參數可覆蓋設定
	output := flag.String("output", cfg.Corpus.Path, "匯出的語料庫檔案路徑")
	source := flag.String("source", cfg.Importer.SourceURL, "原始資料集 URL")
	limit := flag.Int("limit", cfg.Importer.MaxRecipes, "最多匯入的食譜數")
	flag.Parse()

	cfg.Importer.SourceURL = *source
	cfg.Importer.MaxRecipes = *limit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	imp := importer.New(&cfg.Importer)
	count, err := imp.Run(ctx, *output)
	if err != nil {
		common.LogError("資料集匯入失敗", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("匯入完成",
		zap.Int("recipe_count", count),
		zap.String("output", *output),
	)
}
