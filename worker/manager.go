package worker

import (
	"context"
	"sync"
)

// Worker is a long-running background task tied to a context.
type Worker interface {
	Start(ctx context.Context) error
}

// Manager supervises a set of workers and shuts them down together.
type Manager struct {
	workers []Worker

	mu       sync.Mutex
	firstErr error
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

// Start runs every worker in its own goroutine, blocks until the context is
// cancelled and all workers have exited, then reports the first worker error
// seen, if any.
func (m *Manager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, w := range m.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Start(ctx); err != nil {
				m.record(err)
			}
		}(w)
	}
	<-ctx.Done()
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firstErr
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.firstErr == nil {
		m.firstErr = err
	}
}
