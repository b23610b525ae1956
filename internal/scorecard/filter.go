package scorecard

import (
	"strings"

	"admission-workers/internal/models"
)

// FilterByTitle keeps records with at least one program title containing
// keyword, case-insensitively. The upstream API has no "contains" operator,
// so this runs on each fetched page.
func FilterByTitle(records []models.InstitutionRecord, keyword string) []models.InstitutionRecord {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return records
	}
	out := make([]models.InstitutionRecord, 0, len(records))
	for _, r := range records {
		for _, p := range r.Programs {
			if strings.Contains(strings.ToLower(p.Title), kw) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
