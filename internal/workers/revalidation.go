package workers

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/adapter"
	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRevalidationDebounce = 2 * time.Second

	revalidationAttempts  = 3
	revalidationBaseDelay = 200 * time.Millisecond
	// flushTimeout bounds the final delivery after shutdown was requested.
	flushTimeout = 5 * time.Second
)

// RevalidationWorker collects changed content tags and delivers them to the
// front-end in batches. Tags notified within one debounce interval are sent
// in a single webhook call.
type RevalidationWorker struct {
	frontend adapter.FrontendAdapter
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}

	kick chan struct{}
	done chan struct{}

	logger *logger.Logger
}

func NewRevalidationWorker(frontend adapter.FrontendAdapter, cfg config.Workers, logger *logger.Logger) *RevalidationWorker {
	debounce := cfg.RevalidationDebounce
	if debounce <= 0 {
		debounce = defaultRevalidationDebounce
	}

	return &RevalidationWorker{
		frontend: frontend,
		debounce: debounce,
		pending:  make(map[string]struct{}),
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Notify queues tags for the next delivery. It never blocks.
func (w *RevalidationWorker) Notify(tags ...string) {
	if len(tags) == 0 {
		return
	}

	w.mu.Lock()
	for _, tag := range tags {
		w.pending[tag] = struct{}{}
	}
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *RevalidationWorker) Run(ctx context.Context) {
	go w.loop(ctx)
}

func (w *RevalidationWorker) Wait() {
	<-w.done
}

func (w *RevalidationWorker) loop(ctx context.Context) {
	defer close(w.done)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			w.flush(flushCtx)
			cancel()
			return
		case <-w.kick:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}
		case <-timerC:
			timer, timerC = nil, nil
			w.flush(ctx)
		}
	}
}

// flush delivers every pending tag. Tags of a failed delivery are dropped;
// the front-end falls back to its own cache expiry for them.
func (w *RevalidationWorker) flush(ctx context.Context) {
	tags := w.takePending()
	if len(tags) == 0 {
		return
	}

	backoff := retry.WithMaxRetries(revalidationAttempts-1, retry.NewExponential(revalidationBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := w.frontend.Revalidate(ctx, tags)
		if err != nil && adapter.IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		w.logger.Warn().Err(err).
			Str("func", "*RevalidationWorker.flush").
			Strs("tags", tags).
			Msg("front-end revalidation failed")
		return
	}

	w.logger.Debug().Str("func", "*RevalidationWorker.flush").Strs("tags", tags).Msg("front-end revalidated")
}

func (w *RevalidationWorker) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	tags := make([]string, 0, len(w.pending))
	for tag := range w.pending {
		tags = append(tags, tag)
	}
	clear(w.pending)

	slices.Sort(tags)
	return tags
}
