package scorecard

import (
	"context"
	"errors"
	"time"

	httpclient "admission-workers/internal/common/http"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/models"
)

// InstrumentedSearcher records request counts and latency per backend.
type InstrumentedSearcher struct {
	next    Searcher
	backend string
	logger  logger.Logger
}

func NewInstrumentedSearcher(next Searcher, backend string, log logger.Logger) *InstrumentedSearcher {
	return &InstrumentedSearcher{
		next:    next,
		backend: backend,
		logger:  log.WithFields(map[string]interface{}{"backend": backend}),
	}
}

func (s *InstrumentedSearcher) Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error) {
	start := time.Now()
	page, err := s.next.Search(ctx, q)
	elapsed := time.Since(start)

	metrics.ScorecardRequestDuration.WithLabelValues(s.backend).Observe(elapsed.Seconds())
	metrics.ScorecardRequests.WithLabelValues(s.backend, Status(err)).Inc()

	fields := map[string]interface{}{
		"page":     q.Page,
		"mode":     string(q.Location.Mode),
		"duration": elapsed.String(),
	}
	if q.Code != nil {
		fields["code"] = q.Code.String()
	}
	if q.TitleKeyword != "" {
		fields["keyword"] = q.TitleKeyword
	}
	if err != nil {
		fields["error"] = err.Error()
		s.logger.Warn("search request failed", fields)
		return nil, err
	}
	if page != nil {
		fields["results"] = len(page.Results)
	}
	s.logger.Debug("search request", fields)
	return page, nil
}

// Status is the metric label for a request outcome.
func Status(err error) string {
	var statusErr *httpclient.StatusError
	switch {
	case err == nil:
		return "ok"
	case httpclient.IsTimeout(err):
		return "timeout"
	case errors.As(err, &statusErr):
		return "http_error"
	case errors.Is(err, ErrUnsupportedFilter):
		return "unsupported"
	default:
		return "error"
	}
}
