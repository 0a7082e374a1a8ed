package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	mockBus := new(MockEventBus)

	eventTypes := []event.Type{
		event.FarmCreated,
		event.FarmStarted,
		event.FarmEnded,
		event.RewardDeposited,
		event.RewardClaimed,
		event.ItemStaked,
		event.ItemWithdrawn,
		event.TransferDispatched,
		event.TransferFailed,
	}

	for _, et := range eventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewRewardClaimedEvent("seed#0", "bob", domain.NewAmount(15), false)
	accountID := "bob"
	farmID := "seed#0"

	mockRepo.On("LogEvent", ctx, "reward.claimed", &accountID, &farmID, evt.Payload, mock.Anything).Return(nil)

	err := svc.handleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestEventRefs(t *testing.T) {
	tests := []struct {
		name        string
		evt         event.Event
		wantAccount string
		wantFarm    string
	}{
		{"farm created", event.NewFarmCreatedEvent("seed#0", "alice", "seed", "nft", 2), "alice", "seed#0"},
		{"item staked", event.NewItemStakedEvent("seed#0", "bob", "item-1", 1), "bob", "seed#0"},
		{"reward deposited", event.NewRewardDepositedEvent("seed#0", "funder", "seed", domain.NewAmount(5), true), "funder", "seed#0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, farm := eventRefs(tt.evt)
			if assert.NotNil(t, account) {
				assert.Equal(t, tt.wantAccount, *account)
			}
			if assert.NotNil(t, farm) {
				assert.Equal(t, tt.wantFarm, *farm)
			}
		})
	}

	account, farm := eventRefs(event.NewFarmEndedEvent("seed#0", "seed", domain.NewAmount(20)))
	assert.Nil(t, account)
	if assert.NotNil(t, farm) {
		assert.Equal(t, "seed#0", *farm)
	}
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)

	count, err := service.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}
