// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"testing"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Wait were called.
type mockWorker struct {
	mu        sync.Mutex
	runCount  int
	waitCount int
}

func (m *mockWorker) Run(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCount++
}

func (m *mockWorker) Wait() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waitCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())
	ws.Wait()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 || w.waitCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1 waitCount=1, got %d %d", i, w.runCount, w.waitCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Wait()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
	ws.Wait()
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := &Workers{workers: []Worker{
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	}}
	ws.Run(context.Background())

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestNewWorkers_WithoutFrontend(t *testing.T) {
	ws := NewWorkers(nil, config.Workers{}, logger.Nop())

	assert.Nil(t, ws.Revalidation)
	assert.Empty(t, ws.workers)
}

func TestNewWorkers_WithFrontend(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := NewWorkers(mock.NewMockFrontendAdapter(ctrl), config.Workers{}, logger.Nop())

	if assert.NotNil(t, ws.Revalidation) {
		assert.Equal(t, defaultRevalidationDebounce, ws.Revalidation.debounce)
	}
	assert.Len(t, ws.workers, 1)
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, o.id)
}

func (o *orderWorker) Wait() {}
