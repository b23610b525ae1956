// internal/workers/admissions/resolve-program/config.go
package resolveprogram

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
