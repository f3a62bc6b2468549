package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"recipe-finder/internal/core/corpus"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// RankedResult 單筆搜尋結果：食譜本體加上匹配統計
// 每次查詢重新計算，不持久化。
type RankedResult struct {
	corpus.Recipe
	MatchPercentage       string  `json:"match_percentage"`
	MatchedIngredients    int     `json:"matched_ingredients"`
	TotalInputIngredients int     `json:"total_input_ingredients"`
	Score                 float64 `json:"-"`
}

// Service 搜尋服務：候選產生 + 排序
type Service struct {
	store         *corpus.Store
	index         *Index
	threshold     int
	topK          int
	minMatchRatio float64
}

// NewService 創建搜尋服務
func NewService(store *corpus.Store, index *Index, threshold, topK int, minMatchRatio float64) *Service {
	return &Service{
		store:         store,
		index:         index,
		threshold:     threshold,
		topK:          topK,
		minMatchRatio: minMatchRatio,
	}
}

// Index 回傳服務使用的食材索引（健康檢查用）
func (s *Service) Index() *Index {
	return s.index
}

// Search 依食材清單搜尋食譜並回傳排序後的前 K 筆
// 空查詢回傳空切片，不是錯誤。排序對語料快照而言是純函數。
func (s *Service) Search(ctx context.Context, ingredients []string) []RankedResult {
	start := time.Now()
	results := make([]RankedResult, 0)

	if len(ingredients) == 0 {
		return results
	}

	// 最低匹配門檻：查詢食材數的六成，至少一項
	minRequired := int(math.Round(float64(len(ingredients)) * s.minMatchRatio))
	if minRequired < 1 {
		minRequired = 1
	}

	// 候選產生：索引預過濾
	candidates := s.index.Candidates(ingredients, s.threshold)

	// 對每個候選重新評分
	// matched 計的是食譜食材數，門檻與分數則以查詢長度為分母，
	// 分數可能超過 100%，不做特判。
	for id := range candidates {
		recipe, ok := s.store.Get(id)
		if !ok {
			continue
		}

		matched := MatchIngredients(ingredients, recipe.Ingredients, s.threshold)
		if matched < minRequired {
			continue
		}

		score := float64(matched) / float64(len(ingredients)) * 100
		results = append(results, RankedResult{
			Recipe:                recipe,
			MatchPercentage:       fmt.Sprintf("%.1f%%", score),
			MatchedIngredients:    matched,
			TotalInputIngredients: len(ingredients),
			Score:                 score,
		})
	}

	// 分數遞減；同分時食材總數多者在前（偏好內容較豐富的食譜）
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return len(results[i].Ingredients) > len(results[j].Ingredients)
	})

	if len(results) > s.topK {
		results = results[:s.topK]
	}

	common.LogDebug("搜尋排序完成",
		zap.Int("query_size", len(ingredients)),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.Int("min_required", minRequired),
		zap.Duration("耗時", time.Since(start)),
	)

	return results
}
