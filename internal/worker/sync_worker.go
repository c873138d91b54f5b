package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/majifix/service-request/internal/events"
	"github.com/majifix/service-request/internal/service"
)

// SyncWorker listens for service request events and pushes the affected
// request to the configured partner systems. In async mode pushes run in
// the background so request handling never waits on partner latency;
// otherwise they run inline on the publishing goroutine.
type SyncWorker struct {
	syncer *service.SyncService
	logger *zap.Logger
	async  bool
	wg     sync.WaitGroup
}

// NewSyncWorker constructs the worker.
func NewSyncWorker(syncer *service.SyncService, logger *zap.Logger, async bool) *SyncWorker {
	return &SyncWorker{syncer: syncer, logger: logger, async: async}
}

// Register subscribes the worker to the request lifecycle events.
func (w *SyncWorker) Register(dispatcher events.Dispatcher) {
	for _, eventType := range []events.EventType{
		events.EventRequestCreated,
		events.EventRequestUpdated,
		events.EventRequestResolved,
	} {
		dispatcher.Subscribe(eventType, w.handle)
	}
}

func (w *SyncWorker) handle(ctx context.Context, event events.Event) error {
	if event.Request == nil {
		return nil
	}
	if !w.async {
		w.push(ctx, event)
		return nil
	}

	w.wg.Add(1)
	// detach from the request lifetime; the sync client enforces its own timeout
	background := context.WithoutCancel(ctx)
	go func() {
		defer w.wg.Done()
		w.push(background, event)
	}()
	return nil
}

func (w *SyncWorker) push(ctx context.Context, event events.Event) {
	for _, direction := range []service.SyncDirection{service.SyncUpstream, service.SyncDownstream} {
		if err := w.syncer.Sync(ctx, direction, event.Request); err != nil {
			w.logger.Warn("service request sync failed",
				zap.String("direction", string(direction)),
				zap.String("event", string(event.Type)),
				zap.String("request_id", event.RequestID),
				zap.Error(err))
		}
	}
}

// Wait blocks until in-flight background pushes drain. Called on shutdown.
func (w *SyncWorker) Wait() {
	w.wg.Wait()
}
