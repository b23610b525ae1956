package scoring

import (
	"math"
	"sort"

	"admission-workers/internal/models"
)

// ScoreAll scores every record against the same profile. The match score is
// computed once; the output order follows the input.
func ScoreAll(records []models.InstitutionRecord, p models.ApplicantProfile, budget float64) []models.ScoredRow {
	match := Match(p)
	rows := make([]models.ScoredRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, scoreWithMatch(r, match, budget))
	}
	return rows
}

func scoreWithMatch(r models.InstitutionRecord, match, budget float64) models.ScoredRow {
	c := Cost(r, budget)
	acc := EstimateFromMatch(r.AdmissionRate, match)
	return models.ScoredRow{
		Name:         r.Name,
		City:         r.City,
		State:        r.State,
		URL:          r.URL,
		Tuition:      c.Tuition,
		Living:       c.Living,
		Books:        c.Books,
		PerYear:      c.PerYear,
		TwoYear:      c.TwoYear,
		WithinBudget: c.WithinBudget,
		BaselineRate: r.AdmissionRate,
		Acceptance:   acc,
		AdmitPercent: math.Round(1000*acc) / 10,
	}
}

// Rank orders rows in place: within budget first, cheaper two-year total
// next, higher admit percent last. Ties keep their input order.
func Rank(rows []models.ScoredRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.WithinBudget != b.WithinBudget {
			return a.WithinBudget
		}
		if a.TwoYear != b.TwoYear {
			return a.TwoYear < b.TwoYear
		}
		return a.AdmitPercent > b.AdmitPercent
	})
}
