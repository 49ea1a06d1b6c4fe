package workers

import (
	"context"

	"github.com/MKhiriev/portfolio-cms/internal/adapter"
	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
)

type Workers struct {
	Revalidation *RevalidationWorker

	workers []Worker
}

// NewWorkers builds the background workers. Revalidation is nil when no
// front-end adapter is configured.
func NewWorkers(frontend adapter.FrontendAdapter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if frontend != nil {
		w.Revalidation = NewRevalidationWorker(frontend, cfg, logger)
		w.workers = append(w.workers, w.Revalidation)
	}
	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

func (w *Workers) Wait() {
	for _, worker := range w.workers {
		worker.Wait()
	}
}
