// internal/common/camunda/job.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/common/validation"
)

const commandTimeout = 10 * time.Second

// JobRecorder receives one observation per finished job.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// JobSupport carries the collaborators shared by every handler. Both fields
// are optional.
type JobSupport struct {
	Validator *validation.Validator
	Recorder  JobRecorder
}

// ExecuteFunc decodes the raw job variables and runs the worker.
type ExecuteFunc func(ctx context.Context, variables string) (interface{}, error)

// JobRunner holds the complete/fail plumbing so handlers only decode and
// execute.
type JobRunner struct {
	taskType string
	timeout  time.Duration
	support  JobSupport
	errors   *errors.ErrorHandler
	logger   logger.Logger

	// InvalidInput wraps schema violations. Defaults to INVALID_SEARCH_INPUT.
	InvalidInput func(error) *errors.StandardError
}

func NewJobRunner(taskType string, timeout time.Duration, support JobSupport, log logger.Logger) *JobRunner {
	return &JobRunner{
		taskType:     taskType,
		timeout:      timeout,
		support:      support,
		errors:       errors.NewErrorHandler(log),
		logger:       log,
		InvalidInput: errors.NewInvalidSearchInputError,
	}
}

func (r *JobRunner) Run(client worker.JobClient, job entities.Job, execute ExecuteFunc) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
		"retries":     job.GetRetries(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	output, err := r.Process(ctx, job, execute)

	cmdCtx, cmdCancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cmdCancel()

	if err != nil {
		stdErr := errors.Normalize(err)
		r.errors.HandleJobError(cmdCtx, client, job, stdErr)
		r.recordFailure(cmdCtx, stdErr, start)
		return
	}

	if err := r.completeJob(cmdCtx, client, job, output); err != nil {
		r.recordFailure(cmdCtx, errors.Normalize(err), start)
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(time.Since(start).Seconds())
	r.record(cmdCtx, "completed", time.Since(start))
}

func (r *JobRunner) recordFailure(ctx context.Context, stdErr *errors.StandardError, start time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
	r.record(ctx, "failed", time.Since(start))
}

// Process validates the job variables against the registry schema and runs
// execute. A deadline hit during execute is reported as-is so callers can map
// it to their own timeout code.
func (r *JobRunner) Process(ctx context.Context, job entities.Job, execute ExecuteFunc) (interface{}, error) {
	variables := job.GetVariables()

	if r.support.Validator != nil {
		res, err := r.support.Validator.ValidateJSON(r.taskType, variables)
		if err != nil {
			return nil, errors.NewParseError(err)
		}
		if verr := res.Err(); verr != nil {
			return nil, r.InvalidInput(verr).WithMetadata("validationErrors", res.GetErrorMessages())
		}
	}

	return execute(ctx, variables)
}

// completeJob reports output to the broker. Output that cannot be encoded
// fails the job; a send error leaves the job to time out and be reactivated.
func (r *JobRunner) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		stdErr := errors.NewInternalError(err)
		r.errors.HandleJobError(ctx, client, job, stdErr)
		return stdErr
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return errors.NewInternalError(err)
	}
	r.logger.Info("job completed", map[string]interface{}{"jobKey": job.GetKey()})
	return nil
}

func (r *JobRunner) record(ctx context.Context, status string, d time.Duration) {
	if r.support.Recorder == nil {
		return
	}
	r.support.Recorder.RecordJobProcessed(ctx, r.taskType, status)
	r.support.Recorder.RecordJobDuration(ctx, r.taskType, d, status)
}
