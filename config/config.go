package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"ENV"`
	HTTPPort string `mapstructure:"HTTP_PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	RedisAddr string        `mapstructure:"REDIS_ADDR"`
	CacheTTL  time.Duration `mapstructure:"CACHE_TTL"`

	AccessSecret   string `mapstructure:"ACCESS_SECRET"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// READ_REPOSITORY picks the membership read side: "sql" or the in-memory "mock".
	ReadRepository  string `mapstructure:"READ_REPOSITORY"`
	RevealForbidden bool   `mapstructure:"REVEAL_FORBIDDEN"`
	SeedDemo        bool   `mapstructure:"SEED_DEMO"`
}

var keys = []string{
	"ENV", "HTTP_PORT", "GRPC_PORT",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "SQLITE_PATH",
	"REDIS_ADDR", "CACHE_TTL",
	"ACCESS_SECRET", "ALLOWED_ORIGINS",
	"READ_REPOSITORY", "REVEAL_FORBIDDEN", "SEED_DEMO",
}

// LoadConfig reads app.env from path when present, then lets the environment override it.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("ENV", "local")
	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("GRPC_PORT", "")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SQLITE_PATH", "vod.db")
	v.SetDefault("CACHE_TTL", time.Hour)
	v.SetDefault("READ_REPOSITORY", "sql")
	v.SetDefault("REVEAL_FORBIDDEN", false)
	v.SetDefault("SEED_DEMO", false)

	v.AutomaticEnv()
	for _, key := range keys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.validate()
	return
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.ReadRepository {
	case "sql", "mock":
	default:
		return fmt.Errorf("config: unsupported READ_REPOSITORY %q", c.ReadRepository)
	}
	if c.AccessSecret == "" {
		return fmt.Errorf("config: ACCESS_SECRET is required")
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
