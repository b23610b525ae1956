// internal/workers/admissions/resolve-program/handler.go
package resolveprogram

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"admission-workers/internal/common/camunda"
	apperrors "admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/programs"
)

const (
	TaskType = "resolve-program"
)

var (
	ErrEmptyProgram = errors.New("program name is empty")
)

type Handler struct {
	config  *Config
	catalog *programs.Catalog
	runner  *camunda.JobRunner
	logger  logger.Logger
}

func NewHandler(config *Config, catalog *programs.Catalog, support camunda.JobSupport, log logger.Logger) *Handler {
	if catalog == nil {
		catalog = programs.DefaultCatalog()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: catalog,
		runner:  camunda.NewJobRunner(TaskType, config.Timeout, support, log),
		logger:  log,
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
	if input == nil || strings.TrimSpace(input.ProgramName) == "" {
		return nil, apperrors.NewInvalidSearchInputError(ErrEmptyProgram)
	}

	location := input.Location.Normalize()
	if err := location.Validate(); err != nil {
		return nil, apperrors.NewInvalidSearchInputError(err)
	}

	query := h.catalog.NewQuery(input.ProgramName)
	out := &Output{
		Query:    query,
		Location: location,
		Resolved: query.ResolvedCode != nil,
	}
	if query.ResolvedCode != nil {
		out.Code = query.ResolvedCode.String()
	}
	for _, c := range h.catalog.Bundle(input.ProgramName, query.ResolvedCode) {
		out.Related = append(out.Related, c.String())
	}
	out.Keywords = h.catalog.Synonyms(input.ProgramName)

	h.logger.Debug("program resolved", map[string]interface{}{
		"program":  query.FreeTextName,
		"resolved": out.Resolved,
		"code":     out.Code,
		"mode":     string(location.Mode),
	})
	return out, nil
}
