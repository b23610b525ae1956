// internal/workers/admissions/build-recommendations/handler.go
package buildrecommendations

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"admission-workers/internal/common/camunda"
	apperrors "admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/export"
	"admission-workers/internal/models"
	"admission-workers/internal/scoring"
)

const (
	TaskType = "build-recommendations"
)

type Handler struct {
	config *Config
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, support camunda.JobSupport, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
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
		input = &Input{}
	}

	rows := append([]models.ScoredRow(nil), input.Rows...)
	scoring.Rank(rows)

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := &Output{
		Recommendations: make([]Recommendation, 0, len(rows)),
		Count:           len(rows),
		Empty:           len(rows) == 0,
		Explanation:     export.Explanation,
	}
	for i, r := range rows {
		out.Recommendations = append(out.Recommendations, Recommendation{
			Rank:    i + 1,
			Row:     r,
			Display: export.ToDisplay(r),
		})
	}

	if out.Empty {
		out.Message = export.EmptyMessage
		return out, nil
	}

	if input.IncludeCSV {
		csv, err := export.CSV(rows)
		if err != nil {
			return nil, apperrors.NewExportFailedError(err)
		}
		out.CSV = csv
		out.CSVFilename = export.DefaultFilename
	}

	h.logger.Info("recommendations built", map[string]interface{}{
		"count":      out.Count,
		"includeCsv": input.IncludeCSV,
	})
	return out, nil
}
