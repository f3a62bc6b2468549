package rating

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"recipe-finder/internal/core/corpus"
	ratingService "recipe-finder/internal/core/rating"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *corpus.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "recipes_data.json")
	recipes := []corpus.Recipe{
		{Name: "Tomato Soup", Ingredients: []string{"tomato", "onion"}, Reviews: []corpus.Review{}},
	}
	if err := corpus.Write(path, recipes); err != nil {
		t.Fatalf("寫入測試語料庫失敗: %v", err)
	}
	store := corpus.NewStore(path)

	router := gin.New()
	handler := NewHandler(ratingService.NewService(store))
	router.POST("/api/v1/rate", handler.HandleRate)
	return router, store
}

func postRate(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleRateSuccess(t *testing.T) {
	router, store := newTestRouter(t)

	w := postRate(t, router, `{"recipe_id": 1, "rating": 5, "feedback": "Perfect"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("狀態碼 = %d，期望 200，響應: %s", w.Code, w.Body.String())
	}

	var resp RateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析響應失敗: %v", err)
	}
	if !resp.Success {
		t.Errorf("success = false，期望 true")
	}

	r, _ := store.Get(1)
	if len(r.Reviews) != 1 || r.Rating != 5.0 {
		t.Errorf("提交後評論數 = %d、平均 = %v，期望 1 與 5.0", len(r.Reviews), r.Rating)
	}
}

func TestHandleRateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"無效 JSON", `{"recipe_id": `, http.StatusBadRequest},
		{"缺少食譜 ID", `{"rating": 5, "feedback": "ok"}`, http.StatusBadRequest},
		{"評分超出範圍", `{"recipe_id": 1, "rating": 6, "feedback": "ok"}`, http.StatusBadRequest},
		{"缺少評論內容", `{"recipe_id": 1, "rating": 5}`, http.StatusBadRequest},
		{"食譜不存在", `{"recipe_id": 99, "rating": 5, "feedback": "ok"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			w := postRate(t, router, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("狀態碼 = %d，期望 %d，響應: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			var resp RateResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("解析響應失敗: %v", err)
			}
			if resp.Success {
				t.Error("失敗的請求 success 應為 false")
			}
			if resp.Error == "" {
				t.Error("失敗的請求應附帶錯誤訊息")
			}
		})
	}
}
