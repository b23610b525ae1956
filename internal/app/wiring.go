// Package app assembles the search engine and document scorer from
// configuration. Both the worker manager and the CLI start here.
package app

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/documents"
	"admission-workers/internal/programs"
	"admission-workers/internal/scorecard"
	"admission-workers/internal/search"
)

// Deps holds the optional infrastructure clients. Nil fields are not
// configured.
type Deps struct {
	Redis         *redis.Client
	Elasticsearch *elasticsearch.Client
}

// Connect opens Redis when caching is enabled and Elasticsearch when the
// index backend is selected.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*Deps, error) {
	deps := &Deps{}

	if cfg.Cache.Enabled {
		rdb, err := database.NewRedis(ctx, cfg.Database.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		deps.Redis = rdb
		log.Info("redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
	}

	if cfg.Scorecard.Backend == config.BackendIndex {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			deps.Close()
			return nil, err
		}
		if err := database.PingElasticsearch(ctx, es, cfg.Database.Elasticsearch.Index); err != nil {
			deps.Close()
			return nil, err
		}
		deps.Elasticsearch = es
		log.Info("elasticsearch connected", map[string]interface{}{
			"address": cfg.Database.Elasticsearch.GetURL(),
			"index":   cfg.Database.Elasticsearch.Index,
		})
	}

	return deps, nil
}

func (d *Deps) Close() {
	if d != nil && d.Redis != nil {
		_ = d.Redis.Close()
	}
}

// NewSearcher builds the configured backend, wrapped with metrics and, when a
// Redis client is present, the page cache.
func NewSearcher(cfg *config.Config, deps *Deps, log logger.Logger) (search.Searcher, error) {
	if deps == nil {
		deps = &Deps{}
	}

	var (
		backend  scorecard.Searcher
		label    string
		err      error
		apiCfg   = cfg.Scorecard
		indexCfg = cfg.Database.Elasticsearch
	)

	switch apiCfg.Backend {
	case config.BackendIndex:
		if deps.Elasticsearch == nil {
			return nil, fmt.Errorf("index backend selected but elasticsearch is not connected")
		}
		backend = scorecard.NewIndexClient(deps.Elasticsearch, indexCfg.Index)
		label = scorecard.BackendIndex
	case config.BackendAPI, "":
		backend, err = scorecard.NewClient(scorecard.Config{
			BaseURL: apiCfg.BaseURL,
			APIKey:  apiCfg.APIKey,
			Timeout: config.GetDuration(apiCfg.Timeout),
		})
		if err != nil {
			return nil, err
		}
		label = scorecard.BackendAPI
	default:
		return nil, fmt.Errorf("unknown scorecard backend %q", apiCfg.Backend)
	}

	var s scorecard.Searcher = scorecard.NewInstrumentedSearcher(backend, label, log)
	if deps.Redis != nil {
		s = scorecard.NewCachedSearcher(s, deps.Redis, cfg.Cache.PageTTL, log)
	}
	return s, nil
}

func NewEngine(cfg *config.Config, searcher search.Searcher, log logger.Logger) *search.Engine {
	return search.NewEngine(searcher, programs.DefaultCatalog(), search.Config{
		InitialPages:         cfg.Search.InitialPages,
		MaxPagesPerCandidate: cfg.Search.MaxPagesPerCandidate,
	}, log)
}

// NewScorer uses OpenAI embeddings when an API key is configured.
func NewScorer(cfg *config.Config, log logger.Logger) *documents.Scorer {
	var embedder documents.Embedder
	if key := cfg.Documents.OpenAI.APIKey; key != "" {
		embedder = documents.NewOpenAIEmbedder(documents.OpenAIConfig{
			APIKey:  key,
			BaseURL: cfg.Documents.OpenAI.BaseURL,
			Model:   cfg.Documents.OpenAI.Model,
			Timeout: config.GetDuration(cfg.Documents.OpenAI.Timeout),
		})
	}
	return documents.NewScorer(embedder, int(cfg.Documents.MaxBytes), log)
}
