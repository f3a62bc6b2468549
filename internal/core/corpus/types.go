package corpus

// Review 使用者對食譜的評論，附加後不可修改
type Review struct {
	Rating   int    `json:"rating"`   // 1~5 星
	Feedback string `json:"feedback"` // 評論內容，不可為空
	Date     string `json:"date"`     // 提交時間（伺服器指定）
}

// Recipe 載入後的食譜，ID 於載入時依名稱排序指派（1 起算、連續）
type Recipe struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Procedure   []string `json:"procedure"`
	CookingTime string   `json:"cooking_time"`
	Difficulty  string   `json:"difficulty"`
	Rating      float64  `json:"rating"`
	Reviews     []Review `json:"reviews"`
}

// recipeDetail 持久化格式中的食譜內容（以名稱為鍵，不含 ID）
type recipeDetail struct {
	Ingredients []string `json:"ingredients"`
	Procedure   []string `json:"procedure"`
	CookingTime string   `json:"cooking_time"`
	Difficulty  string   `json:"difficulty"`
	Rating      float64  `json:"rating"`
	Reviews     []Review `json:"reviews"`
}

// Clone 回傳食譜的深拷貝，避免讀取端觀察到進行中的變更
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	out.Procedure = append([]string(nil), r.Procedure...)
	out.Reviews = append([]Review(nil), r.Reviews...)
	return out
}
