package farming

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/stakeyard/farmledger/internal/domain"
)

// MockVerifier implements verify.OwnershipVerifier for testing
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyOwnership(ctx context.Context, accountID, contractID string, itemIDs []string) error {
	args := m.Called(ctx, accountID, contractID, itemIDs)
	return args.Error(0)
}

// approveAll is an OwnershipVerifier that accepts everything.
type approveAll struct{}

func (approveAll) VerifyOwnership(ctx context.Context, accountID, contractID string, itemIDs []string) error {
	return nil
}

// recordingQueue captures transfer intents for assertions.
type recordingQueue struct {
	mu      sync.Mutex
	intents []domain.TransferIntent
}

func (q *recordingQueue) Enqueue(intent domain.TransferIntent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.intents = append(q.intents, intent)
}

func (q *recordingQueue) all() []domain.TransferIntent {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.TransferIntent(nil), q.intents...)
}

func (q *recordingQueue) byKind(kind domain.TransferKind) []domain.TransferIntent {
	var out []domain.TransferIntent
	for _, intent := range q.all() {
		if intent.Kind == kind {
			out = append(out, intent)
		}
	}
	return out
}
