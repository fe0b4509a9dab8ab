package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"codefolio/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("sources.httpTimeout", 15*time.Second)
	v.SetDefault("sources.adapterTimeout", 30*time.Second)
	v.SetDefault("sources.retryAttempts", 3)
	v.SetDefault("sources.retryBaseDelay", time.Second)
	v.SetDefault("sources.userAgent", "Mozilla/5.0 (compatible; codefolio/1.0)")
	v.SetDefault("store.driver", "memory")

	_ = v.BindEnv("logger.level", "CODEFOLIO_LOG_LEVEL")
	_ = v.BindEnv("cache.enabled", "CODEFOLIO_CACHE_ENABLED")
	_ = v.BindEnv("cache.ttl", "CODEFOLIO_CACHE_TTL")
	_ = v.BindEnv("sources.githubToken", "CODEFOLIO_GITHUB_TOKEN")
	_ = v.BindEnv("store.driver", "CODEFOLIO_STORE_DRIVER")
	_ = v.BindEnv("store.redisUrl", "CODEFOLIO_REDIS_URL")
	_ = v.BindEnv("store.postgresDsn", "CODEFOLIO_POSTGRES_DSN")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Codefolio"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
