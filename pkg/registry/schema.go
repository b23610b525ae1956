// pkg/registry/schema.go
package registry

import "time"

// ActivityRegistry describes every job type the worker manager can serve,
// with JSON Schemas for the job variables each one consumes and produces.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity binds one Zeebe task type to its schemas and broker settings.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// HasInputSchema reports whether job variables for this activity are validated.
func (a Activity) HasInputSchema() bool {
	return len(a.InputSchema) > 0
}

// TimeoutOr parses Timeout, returning fallback when it is empty or invalid.
func (a Activity) TimeoutOr(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
