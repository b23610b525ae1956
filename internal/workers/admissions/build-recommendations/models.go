// internal/workers/admissions/build-recommendations/models.go
package buildrecommendations

import "admission-workers/internal/models"

type Input struct {
	Rows       []models.ScoredRow `json:"rows"`
	Limit      int                `json:"limit,omitempty"`
	IncludeCSV bool               `json:"includeCsv"`
}

type Recommendation struct {
	Rank    int               `json:"rank"`
	Row     models.ScoredRow  `json:"row"`
	Display models.DisplayRow `json:"display"`
}

type Output struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Empty           bool             `json:"empty"`
	Message         string           `json:"message,omitempty"`
	CSV             string           `json:"csv,omitempty"`
	CSVFilename     string           `json:"csvFilename,omitempty"`
	Explanation     string           `json:"explanation"`
}
