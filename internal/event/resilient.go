package event

import (
	"context"
	"sync"
	"time"

	"github.com/stakeyard/farmledger/internal/logger"
)

// ResilientPublisher wraps a Bus with background retries and a dead-letter
// file. Publish never surfaces a transient failure to the caller; an event
// that still cannot be delivered after the final retry lands in the
// dead-letter log instead of being lost.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once
}

// NewResilientPublisher creates a ResilientPublisher writing exhausted events
// to the dead-letter file at deadLetterPath.
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = RetryInitialDelay
	}

	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dlw,
		shutdown:   make(chan struct{}),
	}, nil
}

// Publish attempts to publish an event. A failed first attempt starts a
// background retry loop and returns nil; the caller is decoupled from the
// retry mechanism.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", evt.Type,
		"error", err,
		"retries", p.maxRetries)

	select {
	case <-p.shutdown:
		// Shutting down, no retry loop. Preserve the event.
		if dlErr := p.deadLetter.Write(evt, 0, err); dlErr != nil {
			logger.Error("Failed to write to dead letter", "error", dlErr)
		}
		return nil
	default:
	}

	p.wg.Add(1)
	go p.retryLoop(evt, err)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops accepting retries, waits for in-flight retry loops and
// closes the dead-letter file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.deadLetter.Close()
}

// retryLoop retries with exponential backoff on a detached context; the
// originating request context may already be cancelled.
func (p *ResilientPublisher) retryLoop(evt Event, lastErr error) {
	defer p.wg.Done()

	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		select {
		case <-p.shutdown:
			if err := p.deadLetter.Write(evt, attempt-1, lastErr); err != nil {
				log.Error("Failed to write to dead letter", "error", err)
			}
			return
		case <-time.After(CalculateRetryDelay(p.retryDelay, attempt)):
		}

		err := p.inner.Publish(ctx, evt)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
			return
		}
		lastErr = err
		log.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", err)
	}

	log.Warn(LogMsgEventRetryExhausted, "event_type", evt.Type)
	if err := p.deadLetter.Write(evt, p.maxRetries, lastErr); err != nil {
		log.Error("Failed to write to dead letter", "error", err)
	}
}
