// internal/workers/admissions/search-institutions/handler.go
package searchinstitutions

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"admission-workers/internal/common/camunda"
	apperrors "admission-workers/internal/common/errors"
	httpclient "admission-workers/internal/common/http"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"
	"admission-workers/internal/scorecard"
	"admission-workers/internal/search"
)

const (
	TaskType = "search-institutions"
)

type Handler struct {
	config *Config
	engine *search.Engine
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, engine *search.Engine, support camunda.JobSupport, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: engine,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, support, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, variables string) (interface{}, error) {
		var input Input
		if err := json.Unmarshal([]byte(variables), &input); err != nil {
			return nil, apperrors.NewParseError(err)
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidSearchInputError(errors.New("input cannot be nil"))
	}

	outcome, err := h.engine.Run(ctx, search.Request{
		SearchID:    input.SearchID,
		ProgramName: input.ProgramName,
		Location:    input.Location,
	})
	if err != nil {
		return nil, mapError(ctx, err)
	}

	results := outcome.Results
	if results == nil {
		results = models.ResultSet{}
	}
	return &Output{
		SearchID:     outcome.SearchID,
		Query:        outcome.Query,
		Institutions: results,
		ResultCount:  len(results),
		Stats:        outcome.Stats,
		TookMs:       outcome.Took.Milliseconds(),
	}, nil
}

// mapError turns a failed search into the code the process model branches on.
func mapError(ctx context.Context, err error) error {
	var statusErr *httpclient.StatusError
	switch {
	case errors.Is(err, models.ErrInvalidLocationMode),
		errors.Is(err, models.ErrInvalidRadius),
		errors.Is(err, models.ErrMissingLocation),
		errors.Is(err, scorecard.ErrUnsupportedFilter):
		return apperrors.NewInvalidSearchInputError(err)
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() != nil, httpclient.IsTimeout(err):
		return apperrors.NewScorecardTimeoutError(err)
	case errors.Is(err, scorecard.ErrIndexNotFound):
		return apperrors.NewIndexNotFoundError(err)
	case errors.Is(err, scorecard.ErrIndexQuery):
		return apperrors.NewIndexQueryFailedError(err)
	case errors.As(err, &statusErr):
		return apperrors.NewScorecardUnavailableError(err).WithMetadata("httpStatus", statusErr.StatusCode)
	default:
		return apperrors.NewScorecardUnavailableError(err)
	}
}
