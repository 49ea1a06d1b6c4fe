package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/adapter"
	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFrontend records every delivered batch and fails the first failures
// calls with err.
type fakeFrontend struct {
	mu       sync.Mutex
	batches  [][]string
	calls    int
	failures int
	err      error
	called   chan struct{}
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{called: make(chan struct{}, 16)}
}

func (f *fakeFrontend) Revalidate(_ context.Context, tags []string) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	if !fail {
		f.batches = append(f.batches, tags)
	}
	f.mu.Unlock()

	f.called <- struct{}{}
	if fail {
		return f.err
	}
	return nil
}

func (f *fakeFrontend) Batches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.batches...)
}

func (f *fakeFrontend) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitCalled(t *testing.T, f *fakeFrontend) {
	t.Helper()
	select {
	case <-f.called:
	case <-time.After(2 * time.Second):
		t.Fatal("front-end was not called")
	}
}

func TestRevalidationWorker_DebouncesTags(t *testing.T) {
	front := newFakeFrontend()
	w := NewRevalidationWorker(front, config.Workers{RevalidationDebounce: 20 * time.Millisecond}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)

	w.Notify("skills")
	w.Notify("projects", "skills")
	w.Notify()

	waitCalled(t, front)
	assert.Equal(t, [][]string{{"projects", "skills"}}, front.Batches())

	w.Notify("blog-posts")
	waitCalled(t, front)
	assert.Equal(t, [][]string{{"projects", "skills"}, {"blog-posts"}}, front.Batches())
}

func TestRevalidationWorker_RetriesServerErrors(t *testing.T) {
	front := newFakeFrontend()
	front.failures = 1
	front.err = adapter.ErrBadGateway
	w := NewRevalidationWorker(front, config.Workers{RevalidationDebounce: time.Millisecond}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)

	w.Notify("projects")
	waitCalled(t, front)
	waitCalled(t, front)

	assert.Equal(t, 2, front.Calls())
	assert.Equal(t, [][]string{{"projects"}}, front.Batches())
}

func TestRevalidationWorker_DoesNotRetryRejectedSecret(t *testing.T) {
	front := newFakeFrontend()
	front.failures = 10
	front.err = adapter.ErrUnauthorized
	w := NewRevalidationWorker(front, config.Workers{RevalidationDebounce: time.Millisecond}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)

	w.Notify("projects")
	waitCalled(t, front)

	cancel()
	w.Wait()
	assert.Equal(t, 1, front.Calls())
}

func TestRevalidationWorker_FlushesOnShutdown(t *testing.T) {
	front := newFakeFrontend()
	w := NewRevalidationWorker(front, config.Workers{RevalidationDebounce: time.Hour}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)

	w.Notify("testimonials")
	cancel()
	w.Wait()

	require.Equal(t, 1, front.Calls())
	assert.Equal(t, [][]string{{"testimonials"}}, front.Batches())
}

func TestRevalidationWorker_NothingPending(t *testing.T) {
	front := newFakeFrontend()
	w := NewRevalidationWorker(front, config.Workers{}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)
	cancel()
	w.Wait()

	assert.Zero(t, front.Calls())
}
