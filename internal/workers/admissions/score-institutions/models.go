// internal/workers/admissions/score-institutions/models.go
package scoreinstitutions

import (
	"admission-workers/internal/models"
	"admission-workers/internal/scoring"
)

type Input struct {
	Institutions []models.InstitutionRecord `json:"institutions"`
	Profile      ProfileInput               `json:"profile"`
	Budget       float64                    `json:"budget"`
	// DocumentScore is the score-document output variable; a score set on
	// the profile takes precedence.
	DocumentScore *float64 `json:"documentScore,omitempty"`
}

type ProfileInput struct {
	CGPA          float64  `json:"cgpa"`
	GRE           *int     `json:"gre"`
	IELTS         *float64 `json:"ielts"`
	DocumentScore *float64 `json:"documentScore"`
}

type Output struct {
	Rows        []models.ScoredRow `json:"rows"`
	MatchScore  float64            `json:"matchScore"`
	Signals     scoring.Signals    `json:"signals"`
	WithinCount int                `json:"withinBudgetCount"`
}
