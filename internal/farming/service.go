package farming

import (
	"context"
	"time"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/repository"
	"github.com/stakeyard/farmledger/internal/transfer"
	"github.com/stakeyard/farmledger/internal/verify"
)

// CreateFarmParams are the terms a new farm is created with.
type CreateFarmParams struct {
	SeedID               string
	StartAt              time.Time
	RewardPerSession     *domain.Amount
	SessionInterval      time.Duration
	CollateralContractID string
	AcceptedItems        []string
}

// StakeResult reports the outcome of staking one collateral item.
type StakeResult struct {
	FarmID         string         `json:"farm_id"`
	ItemID         string         `json:"item_id"`
	PositionAmount int64          `json:"position_amount"`
	Settled        *domain.Amount `json:"settled"`
}

// WithdrawResult reports the outcome of withdrawing one collateral item.
type WithdrawResult struct {
	FarmID         string         `json:"farm_id"`
	ItemID         string         `json:"item_id"`
	PositionAmount int64          `json:"position_amount"`
	Settled        *domain.Amount `json:"settled"`
	FarmEnded      bool           `json:"farm_ended"`
}

// ClaimResult reports the outcome of a reward claim.
type ClaimResult struct {
	FarmID    string         `json:"farm_id"`
	Amount    *domain.Amount `json:"amount"`
	FarmEnded bool           `json:"farm_ended"`
}

// Service defines the farming ledger business logic
type Service interface {
	// CreateFarm mints a new farm under the seed named in the params.
	// Ownership of the accepted collateral items is verified before any
	// state changes; a failed creation consumes no farm index.
	CreateFarm(ctx context.Context, ownerID string, params CreateFarmParams) (*domain.FarmInfo, error)

	// DepositReward tops up a farm's reward pool with seed tokens.
	// The first deposit moves the farm from Created to Running.
	// Returns true when this deposit started the farm.
	DepositReward(ctx context.Context, funderID, farmID, seedID string, amount *domain.Amount) (bool, error)

	// Stake locks one collateral item into a farm. Any reward already
	// claimable on the caller's position is settled at the pre-stake
	// position size before the item is added.
	Stake(ctx context.Context, accountID, contractID, farmID, itemID string) (*StakeResult, error)

	// Withdraw releases one staked collateral item back to its owner,
	// settling pending reward first. Subject to the session cooldown.
	Withdraw(ctx context.Context, accountID, farmID, itemID string) (*WithdrawResult, error)

	// Claim settles all claimable reward on the caller's position.
	// A claim covering the whole remaining pool ends the farm.
	Claim(ctx context.Context, accountID, farmID string) (*ClaimResult, error)

	// Queries
	GetFarm(ctx context.Context, farmID string) (*domain.FarmInfo, error)
	ListFarms(ctx context.Context, offset, limit int64) ([]*domain.FarmInfo, error)
	CountFarms(ctx context.Context) (int64, error)
	GetFarmer(ctx context.Context, accountID string) (*domain.FarmerInfo, error)
	GetClaimableAmount(ctx context.Context, accountID, farmID string) (*domain.Amount, error)
	GetSeed(ctx context.Context, seedID string) (*domain.Seed, error)
	ListSeeds(ctx context.Context) ([]string, error)

	// Collateral whitelist administration
	WhitelistContract(ctx context.Context, contractID string) error
	IsContractWhitelisted(ctx context.Context, contractID string) (bool, error)
}

type service struct {
	repo      repository.Farming
	verifier  verify.OwnershipVerifier
	transfers transfer.Queue
	bus       event.Bus
	farms     *farmInfoCache
	now       func() time.Time
}

// NewService creates a new farming service
func NewService(
	repo repository.Farming,
	verifier verify.OwnershipVerifier,
	transfers transfer.Queue,
	bus event.Bus,
) Service {
	return &service{
		repo:      repo,
		verifier:  verifier,
		transfers: transfers,
		bus:       bus,
		farms:     newFarmInfoCache(farmInfoCacheSize, farmInfoCacheTTL),
		now:       time.Now,
	}
}

// publish emits an event without failing the operation that produced it.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("failed to publish event", "type", evt.Type, "error", err)
	}
}

// enqueue hands a transfer intent to the dispatch queue after commit.
func (s *service) enqueue(intent *domain.TransferIntent) {
	if intent == nil || s.transfers == nil {
		return
	}
	s.transfers.Enqueue(*intent)
}
