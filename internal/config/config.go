package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Admin     AdminConfig     `yaml:"admin"`
	Upload    UploadConfig    `yaml:"upload"`
	WhatsApp  WhatsAppConfig  `yaml:"whatsapp"`
	Redis     RedisConfig     `yaml:"redis"`
	Drafts    DraftsConfig    `yaml:"drafts"`
	AccessLog AccessLogConfig `yaml:"access_log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
	// MaxBodyMB caps JSON request bodies.
	MaxBodyMB      int      `yaml:"max_body_mb"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// AdminConfig seeds the first admin account when both fields are set.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type UploadConfig struct {
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

type WhatsAppConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BaseURL     string `yaml:"base_url"`
	Instance    string `yaml:"instance"`
	Token       string `yaml:"token"`
	ClientToken string `yaml:"client_token"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

// RedisConfig backs the draft store. Empty URL keeps drafts in memory.
type RedisConfig struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix"`
}

type DraftsConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

type AccessLogConfig struct {
	RetentionDays int    `yaml:"retention_days"`
	CleanupCron   string `yaml:"cleanup_cron"`
}

type RateLimitConfig struct {
	AuthRPS   float64 `yaml:"auth_rps"`
	AuthBurst int     `yaml:"auth_burst"`
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

var GlobalConfig *Config

// Load reads .env (if any), the yaml file (if any) and environment overrides,
// in that order, then validates the result.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	cfg.overrideFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      "3001",
			Mode:      "release",
			MaxBodyMB: 50,
		},
		Log: LogConfig{Level: "info"},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "hubinova.db",
		},
		JWT: JWTConfig{
			ExpireHour: 24,
		},
		Upload: UploadConfig{
			Dir:       "uploads",
			MaxSizeMB: 5,
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:    "https://api.z-api.io",
			TimeoutSec: 10,
		},
		Redis: RedisConfig{
			Prefix: "hubinova",
		},
		Drafts: DraftsConfig{
			TTLHours: 30 * 24,
		},
		AccessLog: AccessLogConfig{
			RetentionDays: 90,
			CleanupCron:   "0 3 * * *",
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   1,
			AuthBurst: 10,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
		if c.Database.Driver == "sqlite" && os.Getenv("DB_DRIVER") == "" &&
			(strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")) {
			c.Database.Driver = "postgres"
		}
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if v, ok := envInt("JWT_EXPIRE_HOUR"); ok {
		c.JWT.ExpireHour = v
	}
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		c.Admin.Email = email
	}
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		c.Admin.Password = password
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Upload.Dir = dir
	}
	if v := os.Getenv("WHATSAPP_ENABLED"); v != "" {
		c.WhatsApp.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WHATSAPP_BASE_URL"); v != "" {
		c.WhatsApp.BaseURL = v
	}
	if v := os.Getenv("WHATSAPP_INSTANCE"); v != "" {
		c.WhatsApp.Instance = v
	}
	if v := os.Getenv("WHATSAPP_TOKEN"); v != "" {
		c.WhatsApp.Token = v
	}
	if v := os.Getenv("WHATSAPP_CLIENT_TOKEN"); v != "" {
		c.WhatsApp.ClientToken = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v, ok := envInt("ACCESS_LOG_RETENTION_DAYS"); ok {
		c.AccessLog.RetentionDays = v
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate fails fast on settings the server cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.JWT.ExpireHour <= 0 {
		c.JWT.ExpireHour = 24
	}
	if c.Upload.MaxSizeMB <= 0 {
		c.Upload.MaxSizeMB = 5
	}
	if c.Server.MaxBodyMB <= 0 {
		c.Server.MaxBodyMB = 50
	}
	return nil
}

// SeedAdmin reports whether an admin account should be created at startup.
func (c *Config) SeedAdmin() bool {
	return c.Admin.Email != "" && c.Admin.Password != ""
}

func (c *Config) DraftTTL() time.Duration {
	if c.Drafts.TTLHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.Drafts.TTLHours) * time.Hour
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
