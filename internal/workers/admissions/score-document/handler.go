// internal/workers/admissions/score-document/handler.go
package scoredocument

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"admission-workers/internal/common/camunda"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/documents"
)

const (
	TaskType = "score-document"

	cacheKeyPrefix = "document:score:"
)

type Handler struct {
	config *Config
	scorer *documents.Scorer
	redis  *redis.Client
	runner *camunda.JobRunner
	logger logger.Logger
}

// NewHandler accepts a nil redis client, which disables caching.
func NewHandler(config *Config, scorer *documents.Scorer, rdb *redis.Client, support camunda.JobSupport, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		scorer: scorer,
		redis:  rdb,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, support, log),
		logger: log,
	}
}

// Handle never fails a job: undecodable variables score as neutral too.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, variables string) (interface{}, error) {
		var input Input
		if err := json.Unmarshal([]byte(variables), &input); err != nil {
			h.logger.Warn("document input unreadable", map[string]interface{}{"error": err.Error()})
			metrics.DocumentScoreFallbacks.WithLabelValues("parse").Inc()
			return toOutput(documents.Neutral(), false), nil
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.Document) == "" {
		return &Output{
			DocumentScore:   documents.NeutralScore,
			DocumentDetails: map[string]interface{}{},
		}, nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input.Document))
	if err != nil {
		h.logger.Warn("document is not valid base64", map[string]interface{}{
			"filename": input.Filename,
			"error":    err.Error(),
		})
		metrics.DocumentScoreFallbacks.WithLabelValues("decode").Inc()
		return toOutput(documents.Neutral(), false), nil
	}

	kind := documents.ParseKind(input.Kind)
	key := cacheKey(data, input.Filename, kind)

	if cached, ok := h.lookup(ctx, key); ok {
		return toOutput(cached, true), nil
	}

	res := h.scorer.ScoreOrDefault(ctx, data, input.Filename, kind)
	if !res.Fallback {
		h.store(ctx, key, res)
	}
	return toOutput(res, false), nil
}

func (h *Handler) lookup(ctx context.Context, key string) (documents.Result, bool) {
	if h.redis == nil {
		return documents.Result{}, false
	}

	raw, err := h.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return documents.Result{}, false
	}
	if err != nil {
		h.logger.Warn("document cache read failed", map[string]interface{}{"error": err.Error()})
		return documents.Result{}, false
	}

	var res documents.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		h.logger.Warn("document cache entry corrupt", map[string]interface{}{"key": key})
		return documents.Result{}, false
	}
	return res, true
}

func (h *Handler) store(ctx context.Context, key string, res documents.Result) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("document cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// cacheKey hashes the content with the declared kind and the extension, since
// both change how the bytes are scored.
func cacheKey(data []byte, filename string, kind documents.Kind) string {
	sum := sha256.New()
	sum.Write([]byte(kind))
	sum.Write([]byte{0})
	sum.Write([]byte(strings.ToLower(extension(filename))))
	sum.Write([]byte{0})
	sum.Write(data)
	return cacheKeyPrefix + hex.EncodeToString(sum.Sum(nil))
}

func extension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}

func toOutput(res documents.Result, cached bool) *Output {
	details := res.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	return &Output{
		DocumentScore:   res.Score,
		DocumentDetails: details,
		Fallback:        res.Fallback,
		Cached:          cached,
	}
}
