package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "STAMPRALLY"

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Rally    *RallyConfig    `mapstructure:"rally"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	PublicURL          string   `mapstructure:"public_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	SessionSecret      string   `mapstructure:"session_secret"`
	IPHashKey          string   `mapstructure:"ip_hash_key"`
	LogLevel           string   `mapstructure:"log_level"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	DraftTTL time.Duration `mapstructure:"draft_ttl"`
}

// Enabled reports whether a Redis address was configured.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type RallyConfig struct {
	CodeAttempts     int           `mapstructure:"code_attempts"`
	TotalizeGrantTTL time.Duration `mapstructure:"totalize_grant_ttl"`
	GaugeSchedule    string        `mapstructure:"gauge_schedule"`
	QRSize           int           `mapstructure:"qr_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.public_url", "http://localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.draft_ttl", 30*time.Minute)
	v.SetDefault("rally.code_attempts", 5)
	v.SetDefault("rally.totalize_grant_ttl", 12*time.Hour)
	v.SetDefault("rally.gauge_schedule", "@every 1m")
	v.SetDefault("rally.qr_size", 512)
}

// Load reads the YAML file at path. Environment variables such as STAMPRALLY_API_PORT
// override file values. Each onChange hook receives the re-read config when the file is edited.
func Load(path string, onChange ...func(*AppConfig)) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		changed, err := unmarshal(v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		for _, fn := range onChange {
			fn(changed)
		}
	})
	v.WatchConfig()

	return conf, nil
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.Gin == nil || c.Postgres == nil || c.Redis == nil || c.Rally == nil {
		return fmt.Errorf("config is missing a section")
	}
	if c.API.Environment == "production" {
		if c.API.JWTSigningKey == "" || c.API.SessionSecret == "" || c.API.IPHashKey == "" {
			return fmt.Errorf("jwt_signing_key, session_secret and ip_hash_key are required in production")
		}
	}
	if c.Rally.CodeAttempts < 1 {
		return fmt.Errorf("rally.code_attempts must be at least 1")
	}

	return nil
}
