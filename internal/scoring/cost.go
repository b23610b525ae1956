package scoring

import "admission-workers/internal/models"

// CostBreakdown is the yearly and two-year cost of attendance. Books are
// reported but never counted in the totals.
type CostBreakdown struct {
	Tuition      float64 `json:"tuition"`
	Living       float64 `json:"living"`
	Books        float64 `json:"books"`
	PerYear      float64 `json:"perYear"`
	TwoYear      float64 `json:"twoYear"`
	WithinBudget bool    `json:"withinBudget"`
}

// Cost prefers out-of-state tuition whenever it is positive. Absent fields count as 0.
func Cost(r models.InstitutionRecord, budget float64) CostBreakdown {
	tuition := models.ValueOrZero(r.TuitionOutOfState)
	if tuition <= 0 {
		tuition = models.ValueOrZero(r.TuitionInState)
	}
	living := models.ValueOrZero(r.RoomBoard) + models.ValueOrZero(r.OtherOnCampus)
	perYear := tuition + living
	twoYear := 2 * perYear
	return CostBreakdown{
		Tuition:      tuition,
		Living:       living,
		Books:        models.ValueOrZero(r.BooksSupply),
		PerYear:      perYear,
		TwoYear:      twoYear,
		WithinBudget: twoYear <= budget,
	}
}
