// internal/models/recommendation.go
package models

// ScoredRow is the per-institution result of cost aggregation and acceptance estimation.
type ScoredRow struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	URL          string   `json:"url,omitempty"`
	Tuition      float64  `json:"tuition"`
	Living       float64  `json:"living"`
	Books        float64  `json:"books"`
	PerYear      float64  `json:"perYear"`
	TwoYear      float64  `json:"twoYear"`
	WithinBudget bool     `json:"withinBudget"`
	BaselineRate *float64 `json:"baselineRate,omitempty"`
	Acceptance   float64  `json:"acceptance"`
	AdmitPercent float64  `json:"admitPercent"`
}

// DisplayRow is a ScoredRow rendered for tables and CSV.
type DisplayRow struct {
	Institution  string `json:"institution"`
	City         string `json:"city"`
	State        string `json:"state"`
	URL          string `json:"url"`
	Tuition      string `json:"tuition"`
	Living       string `json:"living"`
	Books        string `json:"books"`
	PerYear      string `json:"perYear"`
	TwoYear      string `json:"twoYear"`
	Baseline     string `json:"baseline"`
	AdmitPercent string `json:"admitPercent"`
	WithinBudget string `json:"withinBudget"`
}
