// cmd/worker-manager/workers.go
package main

import (
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"admission-workers/internal/app"
	"admission-workers/internal/common/camunda"
	"admission-workers/internal/common/config"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/documents"
	"admission-workers/internal/programs"
	"admission-workers/internal/search"

	br "admission-workers/internal/workers/admissions/build-recommendations"
	rp "admission-workers/internal/workers/admissions/resolve-program"
	sd "admission-workers/internal/workers/admissions/score-document"
	si "admission-workers/internal/workers/admissions/score-institutions"
	sr "admission-workers/internal/workers/admissions/search-institutions"
)

// BrokerClient is the part of *camunda.Client the registration needs.
type BrokerClient interface {
	GetClient() zbc.Client
}

// handlers builds one handler per task type. Each handler's timeout comes
// from its worker section.
func handlers(cfg *config.Config, engine *search.Engine, scorer *documents.Scorer, deps *app.Deps, support camunda.JobSupport, log logger.Logger) map[string]camunda.JobHandler {
	timeout := func(taskType string) int {
		return config.GetWorkerConfig(cfg, taskType).Timeout
	}

	docCfg := sd.LoadConfig()
	docCfg.Timeout = config.GetDuration(timeout(sd.TaskType))
	if cfg.Cache.DocumentTTL > 0 {
		docCfg.CacheTTL = cfg.Cache.DocumentTTL
	}

	recCfg := br.LoadConfig()
	recCfg.Timeout = config.GetDuration(timeout(br.TaskType))

	return map[string]camunda.JobHandler{
		rp.TaskType: rp.NewHandler(&rp.Config{Timeout: config.GetDuration(timeout(rp.TaskType))}, programs.DefaultCatalog(), support, log),
		sr.TaskType: sr.NewHandler(&sr.Config{Timeout: config.GetDuration(timeout(sr.TaskType))}, engine, support, log),
		sd.TaskType: sd.NewHandler(docCfg, scorer, deps.Redis, support, log),
		si.TaskType: si.NewHandler(&si.Config{Timeout: config.GetDuration(timeout(si.TaskType))}, support, log),
		br.TaskType: br.NewHandler(recCfg, support, log),
	}
}

// taskOrder fixes the start order so logs read like the process flow.
var taskOrder = []string{rp.TaskType, sr.TaskType, sd.TaskType, si.TaskType, br.TaskType}

func startWorkers(client BrokerClient, cfg *config.Config, hs map[string]camunda.JobHandler, log logger.Logger) []*camunda.CamundaWorker {
	var started []*camunda.CamundaWorker
	for _, taskType := range taskOrder {
		h, ok := hs[taskType]
		if !ok {
			continue
		}
		wc := config.GetWorkerConfig(cfg, taskType)
		if !wc.Enabled {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		maxActive := wc.MaxJobsActive
		if maxActive <= 0 {
			maxActive = cfg.Camunda.MaxJobsActive
		}
		started = append(started, camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
			TaskType:       taskType,
			MaxJobsActive:  maxActive,
			Timeout:        config.GetDuration(wc.Timeout),
			RequestTimeout: config.GetDuration(cfg.Camunda.RequestTimeout),
		}, h, log))
	}
	return started
}
