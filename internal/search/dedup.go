package search

import "admission-workers/internal/models"

// Dedup keeps the first record for every (name, state) pair, preserving order.
func Dedup(records []models.InstitutionRecord) models.ResultSet {
	seen := make(map[models.DedupKey]struct{}, len(records))
	out := make(models.ResultSet, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
