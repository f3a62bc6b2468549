package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-finder/internal/api/handlers/health"
	ratingHandler "recipe-finder/internal/api/handlers/rating"
	searchHandler "recipe-finder/internal/api/handlers/search"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/corpus"
	ratingService "recipe-finder/internal/core/rating"
	searchService "recipe-finder/internal/core/search"
	"recipe-finder/internal/core/search/cache"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，搜尋與評分都只是小型 JSON
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *corpus.Store, resultCache cache.Backend) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Int("recipe_count", store.Count()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("search_threshold", cfg.Search.Threshold),
		zap.Int("search_top_k", cfg.Search.TopK),
	)

	// 建立食材索引（啟動時一次，之後唯讀）
	index := searchService.BuildIndex(store.All())

	// 初始化搜尋服務
	searchSvc := searchService.NewService(store, index, cfg.Search.Threshold, cfg.Search.TopK, cfg.Search.MinMatchRatio)
	if searchSvc == nil {
		common.LogError("Failed to initialize search service")
		return nil, fmt.Errorf("failed to initialize search service")
	}

	// 初始化評分服務
	ratingSvc := ratingService.NewService(store)
	if ratingSvc == nil {
		common.LogError("Failed to initialize rating service")
		return nil, fmt.Errorf("failed to initialize rating service")
	}

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置與服務
		c.Set("config", cfg)
		c.Set("corpus_store", store)
		c.Set("search_service", searchSvc)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		searchHandlerInstance := searchHandler.NewHandler(searchSvc, resultCache)
		ratingHandlerInstance := ratingHandler.NewHandler(ratingSvc)

		// 依食材搜尋食譜
		api.POST("/search", searchHandlerInstance.HandleSearch)

		// 提交食譜評論（重複提交防護）
		api.POST("/rate", middleware.Deduplication(cfg), ratingHandlerInstance.HandleRate)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int("recipe_count", store.Count()),
		zap.Int("distinct_ingredients", index.Size()),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
