package search

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// ApproxMatch 判定兩個食材字串是否等價
// 判定順序：大小寫折疊 → a 為 b 的子字串（方向性：變體在食譜文字中）→
// 部分相似度分數（0~100，最佳對齊子字串）嚴格大於門檻。
// 兩段式規則的原因：純編輯距離會漏掉長片語中的短詞（"egg" 在
// "egg yolk, beaten" 中），純子字串會漏掉拼寫漂移（"tomatoe" 對 "tomato"）。
func ApproxMatch(a, b string, threshold int) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == "" || b == "" {
		return false
	}
	if strings.Contains(b, a) {
		return true
	}
	return fuzzy.PartialRatio(a, b) > threshold
}

// variantSet 建立查詢食材的變體集合：空白切出的詞本身 ∪ 每個詞的同義詞
func variantSet(ingredient string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(ingredient))

	variants := make(map[string]struct{}, len(words))
	for _, w := range words {
		variants[w] = struct{}{}
		for _, syn := range ExpandWord(w) {
			variants[syn] = struct{}{}
		}
	}
	return variants
}

// MatchIngredients 計算食譜中被查詢覆蓋的食材數
// 計數單位是「不重複的食譜食材」：一旦某個食譜食材被標記為已匹配，
// 之後的查詢食材不會再比對它（先到先得，避免重複計數）。
func MatchIngredients(query []string, recipeIngredients []string, threshold int) int {
	matched := make(map[string]struct{})

	for _, userIng := range query {
		variants := variantSet(userIng)

		for _, recipeIng := range recipeIngredients {
			if _, done := matched[recipeIng]; done {
				continue
			}

			recipeIngLower := strings.ToLower(recipeIng)
			for variant := range variants {
				if ApproxMatch(variant, recipeIngLower, threshold) {
					matched[recipeIng] = struct{}{}
					break
				}
			}
		}
	}

	return len(matched)
}
