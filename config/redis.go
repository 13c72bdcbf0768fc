package config

import (
	"main/utils"
)

type RedisConfig struct {
	URL string
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
	}
}
