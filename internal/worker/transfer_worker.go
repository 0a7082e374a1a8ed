package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/metrics"
	"github.com/stakeyard/farmledger/internal/transfer"
)

// TransferWorker drains committed transfer intents through a dispatcher.
//
// The ledger is already settled when an intent reaches the worker, so a
// dispatch failure never rolls anything back. Failed attempts are retried a
// bounded number of times with doubling backoff; after the final attempt the
// intent is surfaced as a transfer.failed event and abandoned.
type TransferWorker struct {
	BaseWorker
	pool       *Pool
	dispatcher transfer.Dispatcher
	bus        event.Bus
	backoff    time.Duration
}

// NewTransferWorker creates a transfer worker with its own pool.
func NewTransferWorker(workers, queueSize int, dispatcher transfer.Dispatcher, bus event.Bus) *TransferWorker {
	if workers <= 0 {
		workers = DefaultTransferWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultTransferQueueSize
	}
	w := &TransferWorker{
		pool:       NewPool(workers, queueSize),
		dispatcher: dispatcher,
		bus:        bus,
		backoff:    retryBackoffBase,
	}
	w.init()
	return w
}

// Start begins draining the queue.
func (w *TransferWorker) Start() {
	w.pool.Start()
}

// Shutdown cancels pending retries, waits for in-flight dispatches and stops
// the pool.
func (w *TransferWorker) Shutdown(ctx context.Context) error {
	err := w.shutdownInternal(ctx, "transfer worker")
	w.pool.Stop()
	return err
}

// Enqueue accepts an intent for dispatch. Implements transfer.Queue; it must
// not block ledger handlers, so a full queue drops the intent with a log line
// rather than stalling the request.
func (w *TransferWorker) Enqueue(intent domain.TransferIntent) {
	job := &transferJob{worker: w, intent: intent, attempt: 1}
	if !w.pool.TryEnqueue(job) {
		logger.Error(LogMsgTransferQueueFull, "intentID", intent.ID, "kind", intent.Kind)
		metrics.RecordTransferDropped(string(intent.Kind))
	}
}

// scheduleRetry re-enqueues the intent after a backoff delay.
func (w *TransferWorker) scheduleRetry(intent domain.TransferIntent, attempt int) {
	delay := w.backoff << (attempt - 2)
	id := uuid.New()

	timer := time.AfterFunc(delay, func() {
		w.removeTimer(id)
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.pool.Enqueue(&transferJob{worker: w, intent: intent, attempt: attempt})
	})
	w.registerTimer(id, timer)
	logger.Info(LogMsgTransferRetryScheduled, "intentID", intent.ID, "attempt", attempt, "delay", delay)
}

// transferJob is one dispatch attempt for one intent.
type transferJob struct {
	worker  *TransferWorker
	intent  domain.TransferIntent
	attempt int
}

func (j *transferJob) Process(ctx context.Context) error {
	w := j.worker
	w.wg.Add(1)
	defer w.wg.Done()

	log := logger.FromContext(ctx)

	dispatchCtx, cancel := context.WithTimeout(ctx, transferDispatchTimeout)
	defer cancel()

	err := w.dispatcher.Dispatch(dispatchCtx, j.intent)
	metrics.RecordTransferDispatch(string(j.intent.Kind), err == nil)

	if err == nil {
		log.Info(LogMsgTransferDispatched, "intentID", j.intent.ID, "kind", j.intent.Kind, "attempt", j.attempt)
		w.publish(ctx, event.NewTransferEvent(j.intent, nil))
		return nil
	}

	if j.attempt < maxDispatchAttempts {
		w.scheduleRetry(j.intent, j.attempt+1)
		return nil
	}

	log.Error(LogMsgTransferAbandoned, "intentID", j.intent.ID, "kind", j.intent.Kind, "error", err)
	w.publish(ctx, event.NewTransferEvent(j.intent, err))
	return err
}

func (w *TransferWorker) publish(ctx context.Context, evt event.Event) {
	if w.bus == nil {
		return
	}
	if err := w.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("failed to publish transfer event", "type", evt.Type, "error", err)
	}
}
