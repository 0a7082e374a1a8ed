package transfer

import (
	"context"

	"github.com/stakeyard/farmledger/internal/domain"
)

// Dispatcher executes a committed transfer intent against the asset backend.
// Ledger accounting is already final when a dispatcher runs; a dispatch
// failure is logged and surfaced as an event, never rolled back.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent domain.TransferIntent) error
}

// Queue accepts intents for asynchronous dispatch after the ledger
// transaction commits. Enqueue must not block the caller.
type Queue interface {
	Enqueue(intent domain.TransferIntent)
}

// NopQueue discards intents. Used in tests and in development mode when no
// transfer backend is configured.
type NopQueue struct{}

// Enqueue drops the intent.
func (NopQueue) Enqueue(intent domain.TransferIntent) {}
