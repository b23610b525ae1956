// internal/workers/admissions/score-institutions/handler.go
package scoreinstitutions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"admission-workers/internal/common/camunda"
	apperrors "admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"
	"admission-workers/internal/scoring"
)

const (
	TaskType = "score-institutions"
)

var (
	ErrNegativeBudget = errors.New("budget must not be negative")
)

type Handler struct {
	config *Config
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, support camunda.JobSupport, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	runner := camunda.NewJobRunner(TaskType, config.Timeout, support, log)
	runner.InvalidInput = apperrors.NewInvalidProfileError
	return &Handler{
		config: config,
		runner: runner,
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
		return nil, apperrors.NewInvalidProfileError(errors.New("input cannot be nil"))
	}
	if input.Budget < 0 {
		return nil, apperrors.NewInvalidProfileError(fmt.Errorf("%w: %.0f", ErrNegativeBudget, input.Budget))
	}

	profile := input.applicantProfile()
	if err := profile.Validate(); err != nil {
		return nil, apperrors.NewInvalidProfileError(err)
	}

	signals := scoring.Normalize(profile)
	rows := scoring.ScoreAll(input.Institutions, profile, input.Budget)

	within := 0
	for _, r := range rows {
		if r.WithinBudget {
			within++
		}
	}

	h.logger.Info("institutions scored", map[string]interface{}{
		"count":        len(rows),
		"withinBudget": within,
		"match":        signals.Match(),
	})

	return &Output{
		Rows:        rows,
		MatchScore:  signals.Match(),
		Signals:     signals,
		WithinCount: within,
	}, nil
}

func (in *Input) applicantProfile() models.ApplicantProfile {
	doc := models.DefaultDocumentScore
	switch {
	case in.Profile.DocumentScore != nil:
		doc = *in.Profile.DocumentScore
	case in.DocumentScore != nil:
		doc = *in.DocumentScore
	}
	return models.ApplicantProfile{
		CGPA:          in.Profile.CGPA,
		GRE:           in.Profile.GRE,
		IELTS:         in.Profile.IELTS,
		DocumentScore: doc,
	}
}
