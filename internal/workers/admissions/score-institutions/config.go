// internal/workers/admissions/score-institutions/config.go
package scoreinstitutions

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
