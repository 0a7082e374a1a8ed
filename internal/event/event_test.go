package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeyard/farmledger/internal/domain"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(RewardClaimed, func(ctx context.Context, evt Event) error {
		received = append(received, evt)
		return nil
	})

	evt := NewRewardClaimedEvent("seed#0", "bob", domain.NewAmount(10), false)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(RewardClaimedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "seed#0", payload.FarmID)
	assert.Equal(t, "bob", payload.AccountID)
	assert.Equal(t, "10", payload.Amount)
	assert.False(t, payload.FarmEnded)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewFarmCreatedEvent("seed#0", "alice", "seed", "nft", 3))
	assert.NoError(t, err)
}

func TestMemoryBusHandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(ItemStaked, func(ctx context.Context, evt Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(ItemStaked, func(ctx context.Context, evt Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewItemStakedEvent("seed#0", "bob", "item-1", 1))
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "a failing handler must not stop later handlers")
}

func TestNewTransferEvent(t *testing.T) {
	intent := domain.TransferIntent{
		ID:            "intent-1",
		Kind:          domain.TransferRewardPayout,
		FarmID:        "seed#0",
		TokenContract: "seed",
		Recipient:     "bob",
		Amount:        domain.NewAmount(42),
	}

	ok := NewTransferEvent(intent, nil)
	assert.Equal(t, TransferDispatched, ok.Type)

	failed := NewTransferEvent(intent, errors.New("transport down"))
	assert.Equal(t, TransferFailed, failed.Type)
	payload := failed.Payload.(TransferPayloadV1)
	assert.Equal(t, "transport down", payload.Error)
	assert.Equal(t, "42", payload.Amount)
}
