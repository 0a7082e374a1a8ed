package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stakeyard/farmledger/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Ledger event types
const (
	FarmCreated        Type = "farm.created"
	FarmStarted        Type = "farm.started"
	FarmEnded          Type = "farm.ended"
	RewardDeposited    Type = "reward.deposited"
	RewardClaimed      Type = "reward.claimed"
	ItemStaked         Type = "item.staked"
	ItemWithdrawn      Type = "item.withdrawn"
	TransferDispatched Type = "transfer.dispatched"
	TransferFailed     Type = "transfer.failed"
)

// Typed event payloads for type safety

// FarmCreatedPayloadV1 is the typed payload for farm creation events
type FarmCreatedPayloadV1 struct {
	FarmID               string `json:"farm_id"`
	OwnerID              string `json:"owner_id"`
	SeedID               string `json:"seed_id"`
	CollateralContractID string `json:"collateral_contract_id"`
	AcceptedItemCount    int    `json:"accepted_item_count"`
	Timestamp            int64  `json:"timestamp"`
}

// FarmLifecyclePayloadV1 is the typed payload for farm start and end events
type FarmLifecyclePayloadV1 struct {
	FarmID       string `json:"farm_id"`
	SeedID       string `json:"seed_id"`
	TotalClaimed string `json:"total_claimed,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// RewardDepositedPayloadV1 is the typed payload for reward top-up events
type RewardDepositedPayloadV1 struct {
	FarmID    string `json:"farm_id"`
	FunderID  string `json:"funder_id"`
	SeedID    string `json:"seed_id"`
	Amount    string `json:"amount"`
	Started   bool   `json:"started"`
	Timestamp int64  `json:"timestamp"`
}

// RewardClaimedPayloadV1 is the typed payload for reward settlement events
type RewardClaimedPayloadV1 struct {
	FarmID    string `json:"farm_id"`
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	FarmEnded bool   `json:"farm_ended"`
	Timestamp int64  `json:"timestamp"`
}

// StakeMutationPayloadV1 is the typed payload for stake and withdraw events
type StakeMutationPayloadV1 struct {
	FarmID    string `json:"farm_id"`
	AccountID string `json:"account_id"`
	ItemID    string `json:"item_id"`
	Amount    int64  `json:"amount"` // position size after the mutation
	Timestamp int64  `json:"timestamp"`
}

// TransferPayloadV1 is the typed payload for transfer dispatch events
type TransferPayloadV1 struct {
	IntentID      string `json:"intent_id"`
	Kind          string `json:"kind"`
	FarmID        string `json:"farm_id"`
	TokenContract string `json:"token_contract"`
	Recipient     string `json:"recipient"`
	Amount        string `json:"amount,omitempty"`
	ItemID        string `json:"item_id,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewFarmCreatedEvent creates a new farm created event
func NewFarmCreatedEvent(farmID, ownerID, seedID, contractID string, acceptedItems int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FarmCreated,
		Payload: FarmCreatedPayloadV1{
			FarmID:               farmID,
			OwnerID:              ownerID,
			SeedID:               seedID,
			CollateralContractID: contractID,
			AcceptedItemCount:    acceptedItems,
			Timestamp:            time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewFarmStartedEvent creates a new farm started event
func NewFarmStartedEvent(farmID, seedID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FarmStarted,
		Payload: FarmLifecyclePayloadV1{
			FarmID:    farmID,
			SeedID:    seedID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewFarmEndedEvent creates a new farm ended event
func NewFarmEndedEvent(farmID, seedID string, totalClaimed *domain.Amount) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FarmEnded,
		Payload: FarmLifecyclePayloadV1{
			FarmID:       farmID,
			SeedID:       seedID,
			TotalClaimed: totalClaimed.String(),
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRewardDepositedEvent creates a new reward top-up event
func NewRewardDepositedEvent(farmID, funderID, seedID string, amount *domain.Amount, started bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardDeposited,
		Payload: RewardDepositedPayloadV1{
			FarmID:    farmID,
			FunderID:  funderID,
			SeedID:    seedID,
			Amount:    amount.String(),
			Started:   started,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRewardClaimedEvent creates a new reward settlement event
func NewRewardClaimedEvent(farmID, accountID string, amount *domain.Amount, farmEnded bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardClaimed,
		Payload: RewardClaimedPayloadV1{
			FarmID:    farmID,
			AccountID: accountID,
			Amount:    amount.String(),
			FarmEnded: farmEnded,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewItemStakedEvent creates a new stake event
func NewItemStakedEvent(farmID, accountID, itemID string, positionAmount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemStaked,
		Payload: StakeMutationPayloadV1{
			FarmID:    farmID,
			AccountID: accountID,
			ItemID:    itemID,
			Amount:    positionAmount,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewItemWithdrawnEvent creates a new withdraw event
func NewItemWithdrawnEvent(farmID, accountID, itemID string, positionAmount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemWithdrawn,
		Payload: StakeMutationPayloadV1{
			FarmID:    farmID,
			AccountID: accountID,
			ItemID:    itemID,
			Amount:    positionAmount,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTransferEvent creates a transfer dispatch outcome event
func NewTransferEvent(intent domain.TransferIntent, dispatchErr error) Event {
	payload := TransferPayloadV1{
		IntentID:      intent.ID,
		Kind:          string(intent.Kind),
		FarmID:        intent.FarmID,
		TokenContract: intent.TokenContract,
		Recipient:     intent.Recipient,
		ItemID:        intent.ItemID,
		Timestamp:     time.Now().Unix(),
	}
	if intent.Amount != nil {
		payload.Amount = intent.Amount.String()
	}
	eventType := TransferDispatched
	if dispatchErr != nil {
		eventType = TransferFailed
		payload.Error = dispatchErr.Error()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  payload,
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; a failing handler must not stop the rest.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
