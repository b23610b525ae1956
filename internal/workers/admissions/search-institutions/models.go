// internal/workers/admissions/search-institutions/models.go
package searchinstitutions

import (
	"admission-workers/internal/models"
	"admission-workers/internal/search"
)

type Input struct {
	SearchID    string                `json:"searchId,omitempty"`
	ProgramName string                `json:"programName"`
	Location    models.LocationFilter `json:"location"`
}

type Output struct {
	SearchID     string              `json:"searchId"`
	Query        models.ProgramQuery `json:"query"`
	Institutions models.ResultSet    `json:"institutions"`
	ResultCount  int                 `json:"resultCount"`
	Stats        search.Stats        `json:"stats"`
	TookMs       int64               `json:"tookMs"`
}
