package search

import (
	"net/http"
	"time"

	searchService "recipe-finder/internal/core/search"
	"recipe-finder/internal/core/search/cache"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchRequest 搜尋請求：使用者手邊的食材清單
// 重複的食材不做去重，照原樣交給引擎。
type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
}

// Handler 搜尋處理程序
type Handler struct {
	service     *searchService.Service
	resultCache cache.Backend
}

// NewHandler 創建搜尋處理程序
func NewHandler(service *searchService.Service, resultCache cache.Backend) *Handler {
	return &Handler{
		service:     service,
		resultCache: resultCache,
	}
}

// HandleSearch 依食材清單搜尋食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	start := time.Now()
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("搜尋請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 空查詢回傳空陣列，不是錯誤
	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusOK, []searchService.RankedResult{})
		return
	}

	// 查緩存
	var cacheKey string
	if h.resultCache != nil {
		cacheKey = cache.Key(req.Ingredients)
		if raw, err := h.resultCache.Get(c.Request.Context(), cacheKey); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
			return
		}
	}

	results := h.service.Search(c.Request.Context(), req.Ingredients)

	// 寫緩存，失敗不影響回應
	if h.resultCache != nil {
		if payload, err := common.ToJSON(results); err == nil {
			if err := h.resultCache.Set(c.Request.Context(), cacheKey, payload); err != nil {
				common.LogWarn("搜尋結果寫入緩存失敗",
					zap.Error(err),
					zap.String("request_id", requestID),
				)
			}
		}
	}

	common.LogSearch(len(req.Ingredients), len(results), time.Since(start), requestID)

	c.JSON(http.StatusOK, results)
}
