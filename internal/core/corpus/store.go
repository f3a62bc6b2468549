package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 食譜語料庫
// 行程內唯一的可變狀態：搜尋端只讀（取得拷貝），評分端在鎖內變更後回寫檔案。
// 食材清單載入後不再變動，僅評分與評論會被更新。
type Store struct {
	mu      sync.RWMutex
	saveMu  sync.Mutex // 序列化整檔回寫，避免兩個寫入者交錯
	path    string
	recipes []Recipe
}

// NewStore 創建食譜語料庫並載入資料
// 載入失敗不會中斷啟動，語料庫降級為空，搜尋僅會回傳空結果。
func NewStore(path string) *Store {
	s := &Store{path: path}
	if err := s.Load(); err != nil {
		common.LogWarn("食譜資料載入失敗，語料庫降級為空",
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return s
}

// Load 從檔案載入語料庫
// 持久化格式為 名稱 -> 內容 的映射；ID 依名稱排序指派，確保重新載入後
// 維持穩定的 1..N 重新編號。
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read corpus file: %w", err)
	}

	var raw map[string]recipeDetail
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		return fmt.Errorf("failed to parse corpus file: %w", err)
	}

	// Go 的 map 無迭代順序，依名稱排序以取得確定性的 ID 指派
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	recipes := make([]Recipe, 0, len(names))
	skipped := 0
	for _, name := range names {
		detail := raw[name]

		// 結構化載入診斷：缺少食材的條目無法參與比對，跳過
		if name == "" || len(detail.Ingredients) == 0 {
			skipped++
			common.LogWarn("跳過格式不完整的食譜條目",
				zap.String("name", name),
				zap.Int("ingredient_count", len(detail.Ingredients)),
			)
			continue
		}

		reviews := detail.Reviews
		if reviews == nil {
			reviews = []Review{}
		}

		recipes = append(recipes, Recipe{
			ID:          len(recipes) + 1,
			Name:        name,
			Ingredients: detail.Ingredients,
			Procedure:   detail.Procedure,
			CookingTime: detail.CookingTime,
			Difficulty:  detail.Difficulty,
			Rating:      detail.Rating,
			Reviews:     reviews,
		})
	}

	s.mu.Lock()
	s.recipes = recipes
	s.mu.Unlock()

	common.LogInfo("食譜語料庫已載入",
		zap.String("path", s.path),
		zap.Int("recipe_count", len(recipes)),
		zap.Int("skipped", skipped),
	)

	return nil
}

// Save 將語料庫完整回寫到檔案
// ID 是載入時的產物，不會被持久化。
func (s *Store) Save() error {
	// 整檔重寫必須互斥，且快照要在取得鎖之後才拍：
	// 先拍快照再搶鎖，兩個寫入者的落盤順序可能與快照順序顛倒，
	// 較舊的快照會把後來者已落盤的評論蓋掉。
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	return Write(s.path, s.All())
}

// Write 以持久化格式（名稱 -> 內容）寫出一組食譜
func Write(path string, recipes []Recipe) error {
	out := make(map[string]recipeDetail, len(recipes))
	for _, r := range recipes {
		out[r.Name] = recipeDetail{
			Ingredients: r.Ingredients,
			Procedure:   r.Procedure,
			CookingTime: r.CookingTime,
			Difficulty:  r.Difficulty,
			Rating:      r.Rating,
			Reviews:     r.Reviews,
		}
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}

	return nil
}

// Count 回傳語料庫中的食譜數
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Get 依 ID 取得食譜拷貝
func (s *Store) Get(id int) (Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// ID 為 1 起算且連續
	if id < 1 || id > len(s.recipes) {
		return Recipe{}, false
	}
	return s.recipes[id-1].Clone(), true
}

// All 回傳所有食譜的拷貝（建索引與測試用）
func (s *Store) All() []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}

// AddReview 附加評論並重新計算平均評分
// 讀取端透過 RWMutex 不會觀察到評分與評論間的中間狀態。
func (s *Store) AddReview(id int, review Review) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 1 || id > len(s.recipes) {
		return Recipe{}, common.NewNotFoundError(fmt.Sprintf("recipe %d not found", id))
	}

	r := &s.recipes[id-1]
	r.Reviews = append(r.Reviews, review)

	total := 0
	for _, rv := range r.Reviews {
		total += rv.Rating
	}
	r.Rating = float64(total) / float64(len(r.Reviews))

	return r.Clone(), nil
}
