package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Ops      OpsConfig      `mapstructure:"ops"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	IdleTimeout  string `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Type       string         `mapstructure:"type"` // memory, sqlite, postgres
	Migrations string         `mapstructure:"migrations"`
	SQLite     SQLiteConfig   `mapstructure:"sqlite"`
	Postgres   PostgresConfig `mapstructure:"postgres"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Backend    string        `mapstructure:"backend"` // memory, redis
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AppConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	SiteName      string `mapstructure:"site_name"`
	Tagline       string `mapstructure:"tagline"`
	AuthorName    string `mapstructure:"author_name"`
	AdminPassword string `mapstructure:"admin_password"`
	// requests per minute per client IP on /admin
	AdminRateLimit int `mapstructure:"admin_rate_limit"`
	AdminRateBurst int `mapstructure:"admin_rate_burst"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Path           string `mapstructure:"path"`
	Namespace      string `mapstructure:"namespace"`
	Subsystem      string `mapstructure:"subsystem"`
	CollectRuntime bool   `mapstructure:"collect_runtime"`
}

type OpsConfig struct {
	BackupDir      string `mapstructure:"backup_dir"`
	QAReportPath   string `mapstructure:"qa_report_path"`
	ChunksDir      string `mapstructure:"chunks_dir"`
	BundleLimitKB  int    `mapstructure:"bundle_limit_kb"`
	TemplatesDir   string `mapstructure:"templates_dir"`
	PostsOutputDir string `mapstructure:"posts_output_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("database.type", "memory")
	v.SetDefault("database.migrations", "./migrations")
	v.SetDefault("database.sqlite.path", "./data/folio.db")
	v.SetDefault("database.postgres.url", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "60s")
	v.SetDefault("cache.max_entries", 1024)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.site_name", "the-house-of-the-depp")
	v.SetDefault("app.tagline", "Agentic Engineer")
	v.SetDefault("app.author_name", "depp")
	v.SetDefault("app.admin_password", "")
	v.SetDefault("app.admin_rate_limit", 60)
	v.SetDefault("app.admin_rate_burst", 20)

	v.SetDefault("logging.level", "info")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "folio")
	v.SetDefault("metrics.subsystem", "web")
	v.SetDefault("metrics.collect_runtime", true)

	v.SetDefault("ops.backup_dir", "./backups")
	v.SetDefault("ops.qa_report_path", "./memory/backend-qa.json")
	v.SetDefault("ops.chunks_dir", "./.next/static/chunks")
	v.SetDefault("ops.bundle_limit_kb", 200)
	v.SetDefault("ops.templates_dir", "./templates/posts")
	v.SetDefault("ops.posts_output_dir", ".")
}

func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration into v, which lets the CLI bind its flags first.
func LoadWith(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/folio/")

	v.SetEnvPrefix("folio")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Type {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Database.Type == "postgres" && c.Database.Postgres.URL == "" {
		return fmt.Errorf("database.postgres.url is required for postgres")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

func (c *Config) GetDatabaseURL() string {
	switch c.Database.Type {
	case "sqlite":
		return c.Database.SQLite.Path
	case "postgres":
		return c.Database.Postgres.URL
	default:
		return ""
	}
}

// AdminEnabled reports whether the admin surface should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.App.AdminPassword != ""
}
