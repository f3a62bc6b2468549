package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Corpus      CorpusConfig    `mapstructure:"corpus"`
	Search      SearchConfig    `mapstructure:"search"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Importer    ImporterConfig  `mapstructure:"importer"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CorpusConfig 食譜資料配置
type CorpusConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig 搜尋引擎配置
type SearchConfig struct {
	// 相似度門檻（0~100），索引查找與排序階段共用預設值
	Threshold int `mapstructure:"threshold"`
	// 回傳結果數上限
	TopK int `mapstructure:"top_k"`
	// 最低匹配比例（佔查詢食材數的比例）
	MinMatchRatio float64 `mapstructure:"min_match_ratio"`
}

// CacheConfig 搜尋結果緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory 或 redis
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImporterConfig 資料集匯入配置
type ImporterConfig struct {
	SourceURL  string        `mapstructure:"source_url"`
	MaxRecipes int           `mapstructure:"max_recipes"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時忽略）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("corpus.path", "CORPUS_PATH")
	viper.BindEnv("search.threshold", "SEARCH_THRESHOLD")
	viper.BindEnv("search.top_k", "SEARCH_TOP_K")
	viper.BindEnv("search.min_match_ratio", "SEARCH_MIN_MATCH_RATIO")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("importer.source_url", "IMPORTER_SOURCE_URL")
	viper.BindEnv("importer.max_recipes", "IMPORTER_MAX_RECIPES")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-finder")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 食譜資料設定
	viper.SetDefault("corpus.path", "recipes_data.json")

	// 搜尋設定
	viper.SetDefault("search.threshold", 80)
	viper.SetDefault("search.top_k", 10)
	viper.SetDefault("search.min_match_ratio", 0.6)

	// 緩存設定
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis_addr", "localhost:6379")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 匯入設定
	viper.SetDefault("importer.source_url", "https://raw.githubusercontent.com/rahulcodewiz/recipes-search-engine/refs/heads/master/dataset/recipes_raw_nosource_epi.json")
	viper.SetDefault("importer.max_recipes", 500)
	viper.SetDefault("importer.timeout", "60s")

	// 新增 dedup window 預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證搜尋設定
	if config.Search.Threshold < 0 || config.Search.Threshold > 100 {
		return fmt.Errorf("invalid search threshold")
	}
	if config.Search.TopK <= 0 {
		return fmt.Errorf("invalid search top_k")
	}
	if config.Search.MinMatchRatio <= 0 || config.Search.MinMatchRatio > 1 {
		return fmt.Errorf("invalid search min match ratio")
	}

	// 驗證緩存設定
	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend")
		}
		if config.Cache.Backend == "memory" && config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.Backend == "memory" && config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	return nil
}
