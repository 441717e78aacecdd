package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию кэша списка заметок.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"NOTES_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"NOTES_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"NOTES_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"NOTES_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"NOTES_REDIS_DEFAULT_TTL" env-default:"1m"`

	// Circuit breaker перед Redis.
	BreakerErrorThreshold   int           `yaml:"breaker_error_threshold" env:"NOTES_REDIS_BREAKER_ERRORS" env-default:"5"`
	BreakerSuccessThreshold int           `yaml:"breaker_success_threshold" env:"NOTES_REDIS_BREAKER_SUCCESSES" env-default:"2"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout" env:"NOTES_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
