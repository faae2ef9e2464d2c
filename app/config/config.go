package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultBlogAPIURL endpoint blog mặc định
const DefaultBlogAPIURL = "https://intent-kit-16.hasura.app/api/rest/blogs"

// Cache backends
const (
	BackendMemory = "memory"
	BackendLRU    = "lru"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendHybrid = "hybrid"
)

// Cache key modes
const (
	KeyModeStructured = "structured"
	KeyModeLegacy     = "legacy"
)

type AppCfg struct {
	Port string `yaml:"port" json:"port"`
	Env  string `yaml:"env" json:"env"`
}

type BlogAPICfg struct {
	URL string `yaml:"url" json:"url"`
	// Timeout = 0 dùng mặc định của transport
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

type CacheCfg struct {
	Backend         string        `yaml:"backend" json:"backend"`
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	MaxEntries      int           `yaml:"max_entries" json:"max_entries"`
	KeyMode         string        `yaml:"key_mode" json:"key_mode"`
	SingleFlight    bool          `yaml:"single_flight" json:"single_flight"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
	WarmUp          int           `yaml:"warm_up" json:"warm_up"`
}

type RedisCfg struct {
	URL string `yaml:"url" json:"url"`
}

type MongoCfg struct {
	URL      string `yaml:"url" json:"url"`
	Database string `yaml:"database" json:"database"`
}

// Config cấu hình toàn bộ service
type Config struct {
	App         AppCfg     `yaml:"app" json:"app"`
	BlogAPI     BlogAPICfg `yaml:"blog_api" json:"blog_api"`
	AdminSecret string     `yaml:"-" json:"-"`
	Cache       CacheCfg   `yaml:"cache" json:"cache"`
	Redis       RedisCfg   `yaml:"redis" json:"redis"`
	Mongo       MongoCfg   `yaml:"mongo" json:"mongo"`
}

// Load đọc cấu hình theo thứ tự ưu tiên: env > file yaml > default.
// envFiles mặc định là ".env"; biến môi trường có sẵn không bị ghi đè. File không tồn tại được bỏ qua.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %q: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		if err := mergeYAML(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppCfg{
			Port: v.GetString("app.port"),
			Env:  v.GetString("app.env"),
		},
		BlogAPI: BlogAPICfg{
			URL:     v.GetString("blog_api.url"),
			Timeout: v.GetDuration("blog_api.timeout"),
		},
		AdminSecret: v.GetString("admin_secret"),
		Cache: CacheCfg{
			Backend:         strings.ToLower(v.GetString("cache.backend")),
			TTL:             v.GetDuration("cache.ttl"),
			MaxEntries:      v.GetInt("cache.max_entries"),
			KeyMode:         strings.ToLower(v.GetString("cache.key_mode")),
			SingleFlight:    v.GetBool("cache.single_flight"),
			CleanupInterval: v.GetDuration("cache.cleanup_interval"),
			WarmUp:          v.GetInt("cache.warm_up"),
		},
		Redis: RedisCfg{
			URL: v.GetString("redis.url"),
		},
		Mongo: MongoCfg{
			URL:      v.GetString("mongo.url"),
			Database: v.GetString("mongo.database"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.env", "development")
	v.SetDefault("blog_api.url", DefaultBlogAPIURL)
	v.SetDefault("blog_api.timeout", 0)
	v.SetDefault("admin_secret", "")
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.ttl", 0)
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.key_mode", KeyModeStructured)
	v.SetDefault("cache.single_flight", true)
	v.SetDefault("cache.cleanup_interval", time.Minute)
	v.SetDefault("cache.warm_up", 100)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "blog_stats")
}

// mergeYAML decode file yaml và merge vào viper
func mergeYAML(v *viper.Viper, path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	if len(m) == 0 {
		return nil
	}
	return v.MergeConfigMap(m)
}

// Validate kiểm tra các giá trị cấu hình
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendLRU, BackendRedis, BackendMongo, BackendHybrid:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Cache.KeyMode {
	case KeyModeStructured, KeyModeLegacy:
	default:
		return fmt.Errorf("unknown cache key mode %q", c.Cache.KeyMode)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	if c.Cache.Backend == BackendLRU && c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive for the lru backend")
	}
	if c.BlogAPI.URL == "" {
		return fmt.Errorf("blog_api.url is required")
	}
	return nil
}

// IsProduction môi trường production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// MaskedSecret chỉ giữ 4 ký tự đầu của admin secret để log
func (c *Config) MaskedSecret() string {
	if len(c.AdminSecret) <= 4 {
		return strings.Repeat("*", len(c.AdminSecret))
	}
	return c.AdminSecret[:4] + "..."
}
