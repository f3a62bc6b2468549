package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"recipe-finder/internal/infrastructure/config"
)

// ErrMiss 表示緩存未命中
var ErrMiss = errors.New("cache miss")

// Backend 搜尋結果緩存後端
// 儲存序列化後的搜尋響應；評分更新造成的過時結果由 TTL 限制。
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New 依設定創建緩存後端，停用時回傳 nil
func New(cfg *config.Config) (Backend, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisBackend(&cfg.Cache)
	case "memory":
		return NewManager(&cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// Key 由查詢食材清單生成緩存鍵
// 正規化（小寫、去前後空白）後保序串接再雜湊：同一查詢必得同一鍵。
func Key(ingredients []string) string {
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(ing)))
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "\x00")))
	return "search:results:" + hex.EncodeToString(hash[:])
}
