// Package netstatus tracks whether the document store is reachable so that
// reads can fail fast while it is not.
package netstatus

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/glosscard/glosscard-backend/internal/repository"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

type Monitor struct {
	pinger   repository.Pinger
	interval time.Duration
	log      *zap.Logger

	online atomic.Bool

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewMonitor returns a monitor that reports online until a ping fails.
func NewMonitor(pinger repository.Pinger, interval time.Duration, log *zap.Logger) *Monitor {
	m := &Monitor{
		pinger:   pinger,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
	}
	m.online.Store(true)
	return m
}

func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Start launches the background ping loop.
func (m *Monitor) Start() {
	if m.interval <= 0 {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Check(context.Background())
			case <-m.stop:
				return
			}
		}
	}()
}

// Check pings the store once and updates the flag.
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := m.pinger.Ping(ctx)
	online := err == nil
	if m.online.Swap(online) != online {
		if online {
			m.log.Info("document store reachable again")
		} else {
			m.log.Warn("document store unreachable", zap.Error(err))
		}
	}
	return online
}

func (m *Monitor) Stop() {
	m.once.Do(func() { close(m.stop) })
	m.wg.Wait()
}
