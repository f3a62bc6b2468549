package rating

import (
	"context"
	"fmt"
	"time"

	"recipe-finder/internal/core/corpus"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 評分服務：驗證評論、更新平均評分並回寫語料庫
type Service struct {
	store *corpus.Store
}

// NewService 創建評分服務
func NewService(store *corpus.Store) *Service {
	return &Service{store: store}
}

// Submit 提交一則評論
// 驗證失敗回傳 ValidationError；查無食譜回傳 NotFoundError；回寫失敗
// 回傳 PersistenceError，此時記憶體內的變更保留，不做回滾——行程內
// 後續讀取會看到新評分，檔案則落後，屬於可接受的不一致窗口。
func (s *Service) Submit(ctx context.Context, recipeID, rating int, feedback string) error {
	if recipeID <= 0 {
		return common.NewValidationError("recipe_id is required")
	}
	if rating < 1 || rating > 5 {
		return common.NewValidationError("rating must be between 1 and 5")
	}
	if feedback == "" {
		return common.NewValidationError("feedback is required")
	}

	review := corpus.Review{
		Rating:   rating,
		Feedback: feedback,
		Date:     time.Now().Format("2006-01-02 15:04:05"),
	}

	updated, err := s.store.AddReview(recipeID, review)
	if err != nil {
		return err
	}

	common.LogInfo("評論已附加",
		zap.Int("recipe_id", recipeID),
		zap.Int("rating", rating),
		zap.Float64("new_average", updated.Rating),
		zap.Int("review_count", len(updated.Reviews)),
	)

	if err := s.store.Save(); err != nil {
		common.LogError("語料庫回寫失敗",
			zap.Int("recipe_id", recipeID),
			zap.Error(err),
		)
		return common.NewPersistenceError(fmt.Sprintf("failed to save review for recipe %d", recipeID), err)
	}

	return nil
}
