// internal/workers/admissions/score-document/config.go
package scoredocument

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: 24 * time.Hour,
	}
}
