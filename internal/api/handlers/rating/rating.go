package rating

import (
	"net/http"

	ratingService "recipe-finder/internal/core/rating"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RateRequest 評分請求
type RateRequest struct {
	RecipeID int    `json:"recipe_id"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// RateResponse 評分響應
type RateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Handler 評分處理程序
type Handler struct {
	service *ratingService.Service
}

// NewHandler 創建評分處理程序
func NewHandler(service *ratingService.Service) *Handler {
	return &Handler{service: service}
}

// HandleRate 提交食譜評論
func (h *Handler) HandleRate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("評分請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, RateResponse{Success: false, Error: "Invalid request format"})
		return
	}

	err := h.service.Submit(c.Request.Context(), req.RecipeID, req.Rating, req.Feedback)
	if err != nil {
		switch {
		case common.IsValidationError(err):
			common.LogWarn("評分請求驗證失敗",
				zap.Int("recipe_id", req.RecipeID),
				zap.Int("rating", req.Rating),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusBadRequest, RateResponse{Success: false, Error: err.Error()})
		case common.IsNotFoundError(err):
			common.LogWarn("評分對象不存在",
				zap.Int("recipe_id", req.RecipeID),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusNotFound, RateResponse{Success: false, Error: "Recipe not found"})
		case common.IsPersistenceError(err):
			common.LogError("評論儲存失敗",
				zap.Error(err),
				zap.Int("recipe_id", req.RecipeID),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, RateResponse{Success: false, Error: "Error saving review"})
		default:
			common.LogError("評分處理失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, RateResponse{Success: false, Error: "Internal server error"})
		}
		return
	}

	common.LogInfo("評分提交成功",
		zap.Int("recipe_id", req.RecipeID),
		zap.Int("rating", req.Rating),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, RateResponse{Success: true})
}
