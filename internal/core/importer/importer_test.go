package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"recipe-finder/internal/core/corpus"
	"recipe-finder/internal/infrastructure/config"
)

func TestConvert(t *testing.T) {
	raw := map[string]RawRecipe{
		"k1": {
			Title:        "Tomato Soup",
			Ingredients:  []string{"2 tomatoes ADVERTISEMENT", "1 onion", "  ", "ADVERTISEMENT"},
			Instructions: "Chop everything.\n\nSimmer 20 minutes.\n",
		},
		"k2": {
			Title:       "Tomato Soup", // 重複標題，只保留先出現的鍵
			Ingredients: []string{"other"},
		},
		"k3": {
			Title:       "", // 缺標題，跳過
			Ingredients: []string{"rice"},
		},
		"k4": {
			Title:       "Empty Dish", // 缺食材，跳過
			Ingredients: []string{"ADVERTISEMENT", ""},
		},
		"k5": {
			Title:       "Veg Curry",
			Ingredients: []string{"a", "b", "c", "d", "e", "f", "g"},
		},
	}

	recipes := Convert(raw, 0)

	if len(recipes) != 2 {
		t.Fatalf("Convert 回傳 %d 筆，期望 2", len(recipes))
	}

	// 鍵排序後依序指派 ID
	soup := recipes[0]
	if soup.ID != 1 || soup.Name != "Tomato Soup" {
		t.Fatalf("第一筆 = (%d, %q)，期望 (1, Tomato Soup)", soup.ID, soup.Name)
	}
	if len(soup.Ingredients) != 2 || soup.Ingredients[0] != "2 tomatoes" {
		t.Errorf("食材清理結果 = %v，期望移除廣告標記與空白條目", soup.Ingredients)
	}
	if len(soup.Procedure) != 2 || soup.Procedure[1] != "Simmer 20 minutes." {
		t.Errorf("作法切分結果 = %v，期望 2 個步驟", soup.Procedure)
	}
	// 2 個步驟 → 15 + 10*2 = 35 分鐘
	if soup.CookingTime != "35 minutes" {
		t.Errorf("CookingTime = %q，期望 35 minutes", soup.CookingTime)
	}
	if soup.Difficulty != "Easy" {
		t.Errorf("2 項食材難度 = %q，期望 Easy", soup.Difficulty)
	}
	if soup.Rating != 0 || soup.Reviews == nil || len(soup.Reviews) != 0 {
		t.Errorf("新匯入食譜應為 0 分、空評論，得到 rating=%v reviews=%v", soup.Rating, soup.Reviews)
	}

	curry := recipes[1]
	if curry.ID != 2 || curry.Name != "Veg Curry" {
		t.Fatalf("第二筆 = (%d, %q)，期望 (2, Veg Curry)", curry.ID, curry.Name)
	}
	if curry.Difficulty != "Medium" {
		t.Errorf("7 項食材難度 = %q，期望 Medium", curry.Difficulty)
	}
}

func TestConvertDifficultyThresholds(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "Easy"},
		{5, "Easy"},
		{6, "Medium"},
		{9, "Medium"},
		{10, "Hard"},
		{15, "Hard"},
	}

	for _, tt := range tests {
		ingredients := make([]string, tt.count)
		for i := range ingredients {
			ingredients[i] = "ingredient"
		}
		recipes := Convert(map[string]RawRecipe{
			"k": {Title: "Dish", Ingredients: ingredients},
		}, 0)

		if len(recipes) != 1 {
			t.Fatalf("Convert 回傳 %d 筆，期望 1", len(recipes))
		}
		if recipes[0].Difficulty != tt.want {
			t.Errorf("%d 項食材難度 = %q，期望 %q", tt.count, recipes[0].Difficulty, tt.want)
		}
	}
}

func TestConvertCookingTimeCap(t *testing.T) {
	// 17 個步驟 → 15 + 170 = 185，封頂在 180 分鐘
	instructions := ""
	for i := 0; i < 17; i++ {
		instructions += "Step.\n"
	}

	recipes := Convert(map[string]RawRecipe{
		"k": {Title: "Long Dish", Ingredients: []string{"a"}, Instructions: instructions},
	}, 0)

	if recipes[0].CookingTime != "180 minutes" {
		t.Errorf("CookingTime = %q，期望封頂為 180 minutes", recipes[0].CookingTime)
	}
}

func TestConvertLimit(t *testing.T) {
	raw := map[string]RawRecipe{
		"a": {Title: "Dish A", Ingredients: []string{"x"}},
		"b": {Title: "Dish B", Ingredients: []string{"x"}},
		"c": {Title: "Dish C", Ingredients: []string{"x"}},
	}

	recipes := Convert(raw, 2)
	if len(recipes) != 2 {
		t.Fatalf("限量 2 筆卻回傳 %d 筆", len(recipes))
	}
	if recipes[0].Name != "Dish A" || recipes[1].Name != "Dish B" {
		t.Errorf("限量截斷應依鍵排序保留前段，得到 [%s, %s]", recipes[0].Name, recipes[1].Name)
	}
}

func TestImporterRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
            "k1": {"title": "Tomato Soup", "ingredients": ["tomato ADVERTISEMENT", "onion"], "instructions": "Chop.\nSimmer."},
            "k2": {"title": "", "ingredients": ["rice"]}
        }`))
	}))
	defer srv.Close()

	cfg := &config.ImporterConfig{
		SourceURL:  srv.URL,
		MaxRecipes: 10,
		Timeout:    5 * time.Second,
	}
	output := filepath.Join(t.TempDir(), "recipes_data.json")

	count, err := New(cfg).Run(context.Background(), output)
	if err != nil {
		t.Fatalf("Run 失敗: %v", err)
	}
	if count != 1 {
		t.Fatalf("匯入 %d 筆，期望 1", count)
	}

	// 輸出檔案可直接被語料庫載入
	store := corpus.NewStore(output)
	if store.Count() != 1 {
		t.Fatalf("載入匯入結果得到 %d 筆，期望 1", store.Count())
	}
	r, _ := store.Get(1)
	if r.Name != "Tomato Soup" || len(r.Ingredients) != 2 || r.Ingredients[0] != "tomato" {
		t.Errorf("匯入結果 = %q %v，期望清理後的 Tomato Soup", r.Name, r.Ingredients)
	}
}

func TestImporterRunBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := &config.ImporterConfig{
		SourceURL:  srv.URL,
		MaxRecipes: 10,
		Timeout:    5 * time.Second,
	}

	if _, err := New(cfg).Run(context.Background(), filepath.Join(t.TempDir(), "out.json")); err == nil {
		t.Error("非 200 響應應回傳錯誤")
	}
}
