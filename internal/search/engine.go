package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/models"
	"admission-workers/internal/programs"
)

const tracerName = "admission-workers/search"

type Config struct {
	// InitialPages bounds the first, exact fetch.
	InitialPages int
	// MaxPagesPerCandidate bounds each bundle code and synonym keyword.
	MaxPagesPerCandidate int
}

func DefaultConfig() Config {
	return Config{InitialPages: 3, MaxPagesPerCandidate: 3}
}

type Request struct {
	SearchID    string                `json:"searchId,omitempty"`
	ProgramName string                `json:"programName"`
	Location    models.LocationFilter `json:"location"`
}

type Outcome struct {
	SearchID string              `json:"searchId"`
	Query    models.ProgramQuery `json:"query"`
	Results  models.ResultSet    `json:"results"`
	Stats    Stats               `json:"stats"`
	Took     time.Duration       `json:"took"`
}

// Recorder receives one observation per completed search.
type Recorder interface {
	RecordSearch(ctx context.Context, tier string, results int, duration time.Duration)
}

// Engine runs one search to completion: resolve, initial fetch, broaden.
type Engine struct {
	searcher Searcher
	catalog  *programs.Catalog
	config   Config
	logger   logger.Logger
	recorder Recorder
}

func NewEngine(searcher Searcher, catalog *programs.Catalog, config Config, log logger.Logger) *Engine {
	if catalog == nil {
		catalog = programs.DefaultCatalog()
	}
	if config.InitialPages <= 0 {
		config.InitialPages = DefaultConfig().InitialPages
	}
	if config.MaxPagesPerCandidate <= 0 {
		config.MaxPagesPerCandidate = DefaultConfig().MaxPagesPerCandidate
	}
	return &Engine{
		searcher: searcher,
		catalog:  catalog,
		config:   config,
		logger:   log,
	}
}

// WithRecorder attaches an observation sink and returns e.
func (e *Engine) WithRecorder(r Recorder) *Engine {
	e.recorder = r
	return e
}

func (e *Engine) Run(ctx context.Context, req Request) (*Outcome, error) {
	start := time.Now()
	searchID := req.SearchID
	if searchID == "" {
		searchID = uuid.NewString()
	}

	location := req.Location.Normalize()
	if err := location.Validate(); err != nil {
		return nil, err
	}
	query := e.catalog.NewQuery(req.ProgramName)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "search.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.id", searchID),
		attribute.String("search.program", query.FreeTextName),
		attribute.Bool("search.resolved", query.ResolvedCode != nil),
		attribute.String("search.location_mode", string(location.Mode)),
	)

	log := e.logger.WithFields(map[string]interface{}{"searchId": searchID})
	log.Info("search started", map[string]interface{}{
		"program":      query.FreeTextName,
		"resolvedCode": query.ResolvedCode,
		"titleKeyword": query.TitleKeyword,
		"location":     location,
	})

	initial, calls, err := FetchPages(ctx, e.searcher, models.SearchQuery{
		Location:     location,
		Code:         query.ResolvedCode,
		TitleKeyword: query.TitleKeyword,
	}, e.config.InitialPages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "initial fetch failed")
		return nil, fmt.Errorf("initial fetch: %w", err)
	}

	results, stats, err := Broaden(ctx, e.searcher, e.catalog, location, query, Dedup(initial), e.config.MaxPagesPerCandidate)
	stats.InitialCalls = calls
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "broadening failed")
		return nil, fmt.Errorf("broaden: %w", err)
	}

	metrics.SearchBroadening.WithLabelValues(string(stats.SatisfiedBy)).Inc()
	metrics.SearchResults.Observe(float64(len(results)))
	span.SetAttributes(
		attribute.Int("search.results", len(results)),
		attribute.Int("search.calls", stats.Calls()),
		attribute.String("search.tier", string(stats.SatisfiedBy)),
	)

	took := time.Since(start)
	if e.recorder != nil {
		e.recorder.RecordSearch(ctx, string(stats.SatisfiedBy), len(results), took)
	}
	log.Info("search completed", map[string]interface{}{
		"results":     len(results),
		"calls":       stats.Calls(),
		"satisfiedBy": stats.SatisfiedBy,
		"took":        took.String(),
	})

	return &Outcome{
		SearchID: searchID,
		Query:    query,
		Results:  results,
		Stats:    stats,
		Took:     took,
	}, nil
}
