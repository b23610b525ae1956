// Package export renders scored rows for tables and CSV files.
package export

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"admission-workers/internal/models"
)

const (
	// DefaultFilename is the suggested name for the CSV download.
	DefaultFilename = "uni_recommendations.csv"

	EmptyMessage = "No matching institutions found. Try broadening location or course."

	placeholder = "-"
)

// Explanation describes how the figures in a recommendation table are derived.
const Explanation = `Costs: tuition uses the out-of-state figure when published, otherwise in-state. ` +
	`Living is room and board plus other on-campus costs. Books are shown separately and are not part of the totals. ` +
	`The two-year total is twice the yearly tuition plus living and is compared with your budget. ` +
	`Admission: the institution's published admission rate (50% when unknown) is shifted in log-odds space ` +
	`by how your GPA, GRE, IELTS and document score compare with an average applicant. ` +
	`Estimates are heuristic and stay between 1% and 99%.`

var printer = message.NewPrinter(language.English)

// USD formats whole dollars with thousands separators, "-" for zero.
func USD(v float64) string {
	if v == 0 {
		return placeholder
	}
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// Baseline renders an admission rate as "45.0%", "-" when absent or zero.
func Baseline(rate *float64) string {
	if rate == nil || *rate == 0 {
		return placeholder
	}
	return fmt.Sprintf("%.1f%%", *rate*100)
}

func YesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return placeholder
}

func ToDisplay(r models.ScoredRow) models.DisplayRow {
	return models.DisplayRow{
		Institution:  r.Name,
		City:         r.City,
		State:        r.State,
		URL:          r.URL,
		Tuition:      USD(r.Tuition),
		Living:       USD(r.Living),
		Books:        USD(r.Books),
		PerYear:      USD(r.PerYear),
		TwoYear:      USD(r.TwoYear),
		Baseline:     Baseline(r.BaselineRate),
		AdmitPercent: fmt.Sprintf("%.1f", r.AdmitPercent),
		WithinBudget: YesNo(r.WithinBudget),
	}
}

func ToDisplayRows(rows []models.ScoredRow) []models.DisplayRow {
	out := make([]models.DisplayRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToDisplay(r))
	}
	return out
}
