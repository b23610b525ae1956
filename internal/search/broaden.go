// Package search drives the paginated search collaborator and widens sparse
// result sets through related-code and keyword tiers.
package search

import (
	"context"
	"fmt"

	"admission-workers/internal/models"
	"admission-workers/internal/programs"
)

// Threshold is the distinct-result count at which broadening stops.
const Threshold = 20

// Searcher is the search collaborator.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error)
}

type Tier string

const (
	TierInitial   Tier = "initial"
	TierBundle    Tier = "bundle"
	TierSynonym   Tier = "synonym"
	TierExhausted Tier = "exhausted"
)

// Stats describes how a result set was assembled.
type Stats struct {
	InitialCalls int  `json:"initialCalls"`
	BundleCalls  int  `json:"bundleCalls"`
	SynonymCalls int  `json:"synonymCalls"`
	SatisfiedBy  Tier `json:"satisfiedBy"`
}

// Calls is the total number of collaborator calls.
func (s Stats) Calls() int {
	return s.InitialCalls + s.BundleCalls + s.SynonymCalls
}

// FetchPages requests pages 0..maxPages-1 for q, stopping after the first
// short page. It returns everything fetched and the number of calls made.
func FetchPages(ctx context.Context, s Searcher, q models.SearchQuery, maxPages int) ([]models.InstitutionRecord, int, error) {
	var (
		out   []models.InstitutionRecord
		calls int
	)
	for page := 0; page < maxPages; page++ {
		q.Page = page
		calls++
		res, err := s.Search(ctx, q)
		if err != nil {
			return nil, calls, fmt.Errorf("fetch page %d: %w", page, err)
		}
		var rows []models.InstitutionRecord
		if res != nil {
			rows = res.Results
		}
		out = append(out, rows...)
		if len(rows) < models.PageSize {
			break
		}
	}
	return out, calls, nil
}

type accumulation struct {
	rows  []models.InstitutionRecord
	calls int
}

// Broaden widens firstPage when it holds fewer than Threshold records. Bundle
// codes run fully before keyword synonyms; every call is sequential.
func Broaden(
	ctx context.Context,
	s Searcher,
	catalog *programs.Catalog,
	location models.LocationFilter,
	query models.ProgramQuery,
	firstPage []models.InstitutionRecord,
	maxPages int,
) (models.ResultSet, Stats, error) {
	stats := Stats{SatisfiedBy: TierInitial}
	if len(firstPage) >= Threshold {
		return firstPage, stats, nil
	}

	acc := accumulation{rows: append([]models.InstitutionRecord(nil), firstPage...)}

	codes := catalog.Bundle(query.FreeTextName, query.ResolvedCode)
	acc, err := bundleTier(ctx, s, location, codes, maxPages, acc)
	stats.BundleCalls = acc.calls
	if err != nil {
		return nil, stats, err
	}
	deduped := Dedup(acc.rows)
	if len(deduped) >= Threshold {
		stats.SatisfiedBy = TierBundle
		return deduped, stats, nil
	}

	keywords := catalog.Synonyms(query.FreeTextName)
	next, err := synonymTier(ctx, s, location, keywords, maxPages, accumulation{rows: deduped})
	stats.SynonymCalls = next.calls
	if err != nil {
		return nil, stats, err
	}
	result := Dedup(next.rows)
	stats.SatisfiedBy = TierExhausted
	if len(result) >= Threshold {
		stats.SatisfiedBy = TierSynonym
	}
	return result, stats, nil
}

func bundleTier(ctx context.Context, s Searcher, loc models.LocationFilter, codes []models.CIPCode, maxPages int, acc accumulation) (accumulation, error) {
	for _, code := range codes {
		rows, calls, err := FetchPages(ctx, s, models.SearchQuery{Location: loc, Code: code.Ptr()}, maxPages)
		acc.calls += calls
		if err != nil {
			return acc, fmt.Errorf("bundle code %s: %w", code, err)
		}
		acc.rows = append(acc.rows, rows...)
	}
	return acc, nil
}

func synonymTier(ctx context.Context, s Searcher, loc models.LocationFilter, keywords []string, maxPages int, acc accumulation) (accumulation, error) {
	for _, kw := range keywords {
		rows, calls, err := FetchPages(ctx, s, models.SearchQuery{Location: loc, TitleKeyword: kw}, maxPages)
		acc.calls += calls
		if err != nil {
			return acc, fmt.Errorf("synonym %q: %w", kw, err)
		}
		acc.rows = append(acc.rows, rows...)
	}
	return acc, nil
}
