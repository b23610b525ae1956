// internal/workers/admissions/build-recommendations/config.go
package buildrecommendations

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultLimit applies when the job does not set one; 0 keeps every row.
	DefaultLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		DefaultLimit: 0,
	}
}
