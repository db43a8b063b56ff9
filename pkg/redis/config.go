package redis

import "time"

// Config describes the connection used by the analytics stream sink.
type Config struct {
	URL            string        `env:"REDIS_URL" yaml:"url" json:"url"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts" json:"retry_attempts"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s" yaml:"retry_interval" json:"retry_interval"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s" yaml:"connect_timeout" json:"connect_timeout"`
}
