package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"recipe-finder/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func newDedupRouter(window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	cfg := &config.Config{DedupWindow: window}
	router.POST("/api/v1/rate", Deduplication(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postBody(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDeduplicationBlocksRepeatWithinWindow(t *testing.T) {
	router := newDedupRouter(time.Minute)
	body := `{"recipe_id": 1, "rating": 5, "feedback": "repeat-window"}`

	if w := postBody(router, body); w.Code != http.StatusOK {
		t.Fatalf("第一次提交狀態碼 = %d，期望 200", w.Code)
	}
	if w := postBody(router, body); w.Code != http.StatusTooManyRequests {
		t.Errorf("窗口內重複提交狀態碼 = %d，期望 429", w.Code)
	}

	// 不同請求體不受影響
	other := `{"recipe_id": 2, "rating": 4, "feedback": "different-body"}`
	if w := postBody(router, other); w.Code != http.StatusOK {
		t.Errorf("不同請求體狀態碼 = %d，期望 200", w.Code)
	}
}

// 檢查與記錄在同一把寫鎖內，同時到達的相同提交最多放行一個
func TestDeduplicationConcurrentDuplicates(t *testing.T) {
	router := newDedupRouter(time.Minute)
	body := `{"recipe_id": 1, "rating": 5, "feedback": "concurrent-burst"}`

	const attempts = 8
	codes := make(chan int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- postBody(router, body).Code
		}()
	}
	wg.Wait()
	close(codes)

	passed, rejected := 0, 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			passed++
		case http.StatusTooManyRequests:
			rejected++
		default:
			t.Errorf("意外的狀態碼 %d", code)
		}
	}

	if passed != 1 {
		t.Errorf("並發重複提交放行 %d 個，期望恰好 1 個", passed)
	}
	if rejected != attempts-1 {
		t.Errorf("並發重複提交擋下 %d 個，期望 %d 個", rejected, attempts-1)
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(2, time.Minute))
	router.GET("/api/v1/anything", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := get("/api/v1/anything"); code != http.StatusOK {
		t.Fatalf("第一個請求狀態碼 = %d", code)
	}
	if code := get("/api/v1/anything"); code != http.StatusOK {
		t.Fatalf("第二個請求狀態碼 = %d", code)
	}
	if code := get("/api/v1/anything"); code != http.StatusTooManyRequests {
		t.Errorf("超出限額狀態碼 = %d，期望 429", code)
	}

	// 令牌耗盡後探針端點仍可通行
	if code := get("/health"); code != http.StatusOK {
		t.Errorf("探針端點狀態碼 = %d，期望不受限流", code)
	}
}

func TestBodySizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(BodySizeLimit(16))
	router.POST("/api/v1/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	small := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(`{"a":1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, small)
	if w.Code != http.StatusOK {
		t.Errorf("小型請求狀態碼 = %d，期望 200", w.Code)
	}

	big := httptest.NewRequest(http.MethodPost, "/api/v1/search",
		bytes.NewBufferString(`{"ingredients": ["tomato", "onion", "garlic"]}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, big)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("超大請求狀態碼 = %d，期望 413", w.Code)
	}
}
