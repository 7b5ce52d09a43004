package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/umay/internal/logger"
)

// DefaultRefreshInterval is used when the configured interval is not positive.
const DefaultRefreshInterval = time.Minute

// RefreshFunc is called on every tick of a RefreshWorker.
type RefreshFunc func(ctx context.Context)

// RefreshWorker calls a RefreshFunc on a ticker. The terminal client uses
// it to reload the record list while a staff member keeps the screen open.
type RefreshWorker struct {
	interval time.Duration
	refresh  RefreshFunc
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRefreshWorker(interval time.Duration, refresh RefreshFunc, logger *logger.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshWorker{
		interval: interval,
		refresh:  refresh,
		logger:   logger,
	}
}

// Run stops a previously started loop, then launches a goroutine that
// calls the refresh func every interval until ctx is cancelled or Stop
// is called.
func (w *RefreshWorker) Run(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Debug().Dur("interval", w.interval).Msg("refresh worker started")

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.refresh(jobCtx)
			}
		}
	}()
}

func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		w.logger.Debug().Msg("refresh worker stopped")
	}
	w.wg.Wait()
}
