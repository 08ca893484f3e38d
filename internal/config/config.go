package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables
// and an optional config file.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	DBDriver     string `mapstructure:"DB_DRIVER"`
	DBDSN        string `mapstructure:"DB_DSN"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB      int    `mapstructure:"REDIS_DB"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	AuthRequired bool   `mapstructure:"AUTH_REQUIRED"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogPretty    bool   `mapstructure:"LOG_PRETTY"`
	SwaggerHost  string `mapstructure:"SWAGGER_HOST"`
	ResetDB      bool   `mapstructure:"RESET_DB"`
	CORSOrigins  string `mapstructure:"CORS_ORIGINS"`
}

var defaults = map[string]interface{}{
	"SERVER_PORT":    "8080",
	"DB_DRIVER":      "mysql",
	"DB_DSN":         "user:password@tcp(localhost:3306)/ecomm?charset=utf8mb4&parseTime=True&loc=Local",
	"REDIS_ADDR":     "localhost:6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"JWT_SECRET":     "change-me",
	"AUTH_REQUIRED":  false,
	"LOG_LEVEL":      "info",
	"LOG_PRETTY":     false,
	"SWAGGER_HOST":   "",
	"RESET_DB":       false,
	"CORS_ORIGINS":   "http://localhost:5173",
}

// Load builds Config from the environment. When CONFIG_FILE names a file
// (.env, yaml, json) its values sit between the defaults and the environment.
func Load() (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg, nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
