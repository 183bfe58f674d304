package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port           string
		RequestTimeout time.Duration
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Simulation struct {
		DefaultSims int
		Workers     int
		BatchSize   int
		MaxSims     int
	}
	Cache struct {
		TTL time.Duration
	}
	Log struct {
		Level string
	}
}

var C Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.requestTimeout", 30*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("simulation.defaultSims", 1000)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.batchSize", 256)
	v.SetDefault("simulation.maxSims", 1000000)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("log.level", "info")
}

// Load reads path (missing file is fine), then .env and POKERPAL_* variables,
// e.g. POKERPAL_REDIS_ADDR.
func Load(path string) error {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("pokerpal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	C = c
	return nil
}
