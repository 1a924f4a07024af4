package config

import (
	"fmt"
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"MYFLIX_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"MYFLIX_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"MYFLIX_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"MYFLIX_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"MYFLIX_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"MYFLIX_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"MYFLIX_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"MYFLIX_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"MYFLIX_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"MYFLIX_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"MYFLIX_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"MYFLIX_REDIS_DEFAULT_TTL" env-default:"15m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
