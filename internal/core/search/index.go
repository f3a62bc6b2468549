package search

import (
	"recipe-finder/internal/core/corpus"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Index 食材倒排索引：食譜中逐字出現的食材字串 -> 含有它的食譜 ID 集合
// 啟動時建立一次，之後唯讀。評分與評論不會改動食材，索引不需失效。
type Index struct {
	entries map[string][]int
}

// BuildIndex 從語料庫建立倒排索引
// 食材字串依原文使用（不轉小寫、不跨食譜去重）。
func BuildIndex(recipes []corpus.Recipe) *Index {
	entries := make(map[string][]int)
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			entries[ing] = append(entries[ing], r.ID)
		}
	}

	common.LogInfo("食材索引已建立",
		zap.Int("recipe_count", len(recipes)),
		zap.Int("distinct_ingredients", len(entries)),
	)

	return &Index{entries: entries}
}

// Size 回傳索引中不重複食材字串的數量
func (ix *Index) Size() int {
	return len(ix.entries)
}

// Candidates 產生查詢的候選食譜 ID 集合
// 對每個查詢食材線性掃描全部索引鍵，凡通過相似度判定的鍵，其食譜 ID
// 併入候選集合。這是召回導向的預過濾，精確判定留給排序階段。
// 成本為 O(查詢數 × 不重複食材數)，在本系統的語料規模下可接受。
func (ix *Index) Candidates(query []string, threshold int) map[int]struct{} {
	candidates := make(map[int]struct{})

	for _, ing := range query {
		for key, ids := range ix.entries {
			if ApproxMatch(ing, key, threshold) {
				for _, id := range ids {
					candidates[id] = struct{}{}
				}
			}
		}
	}

	return candidates
}
