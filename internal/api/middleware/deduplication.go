package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

var (
	// 最近提交的評論指紋，用於攔截連點造成的重複評論
	reviewCache = struct {
		sync.RWMutex
		requests map[string]time.Time
	}{
		requests: make(map[string]time.Time),
	}

	// 啟動自動清理 goroutine（只啟動一次）
	cleanupOnce sync.Once
)

// 啟動自動清理 goroutine
func startDeduplicationCleanup(cfg *config.Config) {
	cleanupOnce.Do(func() {
		interval := 10 * time.Minute
		window := 1 * time.Second
		if cfg != nil && cfg.DedupWindow > 0 {
			window = cfg.DedupWindow
		}
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				reviewCache.Lock()
				for k, t := range reviewCache.requests {
					if now.Sub(t) > 10*window {
						delete(reviewCache.requests, k)
					}
				}
				reviewCache.Unlock()
			}
		}()
	})
}

// Deduplication 重複提交防護中間件
// 同一請求體在 dedupWindow 內重送時直接拒絕。評論是 append-only，
// 重複寫入無法事後剔除，只能在入口擋下。
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	startDeduplicationCleanup(cfg)
	return func(c *gin.Context) {
		dedupWindow := 1 * time.Second
		if cfg != nil && cfg.DedupWindow > 0 {
			dedupWindow = cfg.DedupWindow
		}

		// 只處理 POST 請求
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			// 讀取請求體
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			// 計算哈希
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		// 檢查與記錄必須在同一把寫鎖內完成：
		// 分開上鎖時，兩個同時到達的相同請求會雙雙通過檢查。
		now := time.Now()
		reviewCache.Lock()
		if lastTime, exists := reviewCache.requests[fingerprint]; exists && now.Sub(lastTime) <= dedupWindow {
			reviewCache.Unlock()
			c.JSON(429, gin.H{
				"error": "Request too frequent",
				"code":  "TOO_MANY_REQUESTS",
			})
			c.Abort()
			return
		}
		reviewCache.requests[fingerprint] = now
		reviewCache.Unlock()

		c.Next()
	}
}
