// internal/workers/admissions/resolve-program/models.go
package resolveprogram

import "admission-workers/internal/models"

type Input struct {
	ProgramName string                `json:"programName"`
	Location    models.LocationFilter `json:"location"`
}

type Output struct {
	Query    models.ProgramQuery   `json:"query"`
	Location models.LocationFilter `json:"location"`
	Resolved bool                  `json:"resolved"`
	Code     string                `json:"code,omitempty"`
	Related  []string              `json:"relatedCodes,omitempty"`
	Keywords []string              `json:"keywords,omitempty"`
}
