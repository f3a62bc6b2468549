package importer

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"recipe-finder/internal/core/corpus"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RawRecipe 原始資料集中的一筆食譜
type RawRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// Importer 一次性的資料集匯入器
// 下載原始資料集並轉換為語料庫的持久化格式，引擎執行期間不會再跑。
type Importer struct {
	client *resty.Client
	config *config.ImporterConfig
}

// New 創建匯入器
func New(cfg *config.ImporterConfig) *Importer {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Importer{
		client: client,
		config: cfg,
	}
}

// Run 下載資料集、轉換並寫出語料庫檔案，回傳匯入的食譜數
func (im *Importer) Run(ctx context.Context, outputPath string) (int, error) {
	common.LogInfo("開始下載資料集",
		zap.String("source_url", im.config.SourceURL),
	)

	resp, err := im.client.R().
		SetContext(ctx).
		Get(im.config.SourceURL)
	if err != nil {
		return 0, fmt.Errorf("failed to download dataset: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("dataset download returned status %d", resp.StatusCode())
	}

	var raw map[string]RawRecipe
	if err := common.ParseJSONBytes(resp.Body(), &raw); err != nil {
		return 0, fmt.Errorf("failed to parse dataset: %w", err)
	}

	recipes := Convert(raw, im.config.MaxRecipes)
	if err := corpus.Write(outputPath, recipes); err != nil {
		return 0, err
	}

	common.LogInfo("資料集匯入完成",
		zap.Int("raw_count", len(raw)),
		zap.Int("imported", len(recipes)),
		zap.String("output", outputPath),
	)

	return len(recipes), nil
}

// Convert 將原始資料集轉換為語料庫食譜
// 依標題排序以取得確定性的輸出；缺標題或食材的條目跳過；最多 limit 筆。
func Convert(raw map[string]RawRecipe, limit int) []corpus.Recipe {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]struct{})
	recipes := make([]corpus.Recipe, 0, limit)
	for _, k := range keys {
		if limit > 0 && len(recipes) >= limit {
			break
		}

		entry := raw[k]
		title := strings.TrimSpace(entry.Title)
		ingredients := cleanIngredients(entry.Ingredients)
		if title == "" || len(ingredients) == 0 {
			continue
		}

		// 名稱是自然鍵，重複的標題只保留第一筆
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		procedure := splitInstructions(entry.Instructions)
		recipes = append(recipes, corpus.Recipe{
			ID:          len(recipes) + 1,
			Name:        title,
			Ingredients: ingredients,
			Procedure:   procedure,
			CookingTime: estimateCookingTime(procedure),
			Difficulty:  deriveDifficulty(len(ingredients)),
			Rating:      0,
			Reviews:     []corpus.Review{},
		})
	}

	return recipes
}

// cleanIngredients 移除資料集夾帶的廣告標記並去除空白條目
func cleanIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, ing := range raw {
		ing = strings.ReplaceAll(ing, "ADVERTISEMENT", "")
		ing = strings.TrimSpace(ing)
		if ing != "" {
			out = append(out, ing)
		}
	}
	return out
}

// splitInstructions 將整段作法文字切成步驟
func splitInstructions(instructions string) []string {
	steps := make([]string, 0)
	for _, line := range strings.Split(instructions, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// estimateCookingTime 依步驟數粗估烹飪時間
func estimateCookingTime(procedure []string) string {
	minutes := 15 + 10*len(procedure)
	if minutes > 180 {
		minutes = 180
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// deriveDifficulty 依食材數推定難度
func deriveDifficulty(ingredientCount int) string {
	switch {
	case ingredientCount < 6:
		return "Easy"
	case ingredientCount < 10:
		return "Medium"
	default:
		return "Hard"
	}
}
