package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig 失敗: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d，期望 8080", cfg.Server.Port)
	}
	if cfg.Corpus.Path != "recipes_data.json" {
		t.Errorf("corpus.path = %q，期望 recipes_data.json", cfg.Corpus.Path)
	}
	if cfg.Search.Threshold != 80 {
		t.Errorf("search.threshold = %d，期望 80", cfg.Search.Threshold)
	}
	if cfg.Search.TopK != 10 {
		t.Errorf("search.top_k = %d，期望 10", cfg.Search.TopK)
	}
	if cfg.Search.MinMatchRatio != 0.6 {
		t.Errorf("search.min_match_ratio = %v，期望 0.6", cfg.Search.MinMatchRatio)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled 預設應為停用")
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("cache.backend = %q，期望 memory", cfg.Cache.Backend)
	}
	if cfg.Importer.MaxRecipes != 500 {
		t.Errorf("importer.max_recipes = %d，期望 500", cfg.Importer.MaxRecipes)
	}
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Search: SearchConfig{Threshold: 80, TopK: 10, MinMatchRatio: 0.6},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"合法設定", func(c *Config) {}, false},
		{"缺少埠號", func(c *Config) { c.Server.Port = 0 }, true},
		{"門檻超出範圍", func(c *Config) { c.Search.Threshold = 101 }, true},
		{"top_k 非正數", func(c *Config) { c.Search.TopK = 0 }, true},
		{"匹配比例超出範圍", func(c *Config) { c.Search.MinMatchRatio = 1.5 }, true},
		{"未知緩存後端", func(c *Config) {
			c.Cache = CacheConfig{Enabled: true, Backend: "memcached", MaxSize: 10, TTL: 1, CleanupInterval: 1}
		}, true},
		{"停用緩存時不驗證後端", func(c *Config) {
			c.Cache = CacheConfig{Enabled: false, Backend: "memcached"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() = %v，期望錯誤 = %v", err, tt.wantErr)
			}
		})
	}
}
