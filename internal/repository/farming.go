package repository

import (
	"context"

	"github.com/stakeyard/farmledger/internal/domain"
)

// Farming handles persistence for the three ledgers: farms, farmers (staking
// positions) and seeds, plus the collateral-contract whitelist.
//
// Read methods never lock. Every mutating operation goes through a
// FarmingTx so that one stake/withdraw/claim/top-up/creation commits as a
// single atomic unit against the ledger state.
type Farming interface {
	// GetFarm loads a farm with its accepted set and staked items.
	GetFarm(ctx context.Context, farmID string) (*domain.Farm, error)

	// ListFarms pages through farms in creation order.
	ListFarms(ctx context.Context, offset, limit int64) ([]*domain.Farm, error)

	// CountFarms returns the total number of farms.
	CountFarms(ctx context.Context) (int64, error)

	// GetFarmer loads an account's staking positions across farms.
	// Returns domain.ErrFarmerNotFound for accounts that never staked.
	GetFarmer(ctx context.Context, accountID string) (*domain.Farmer, error)

	// GetPosition loads one account's position in one farm.
	// Returns domain.ErrPositionNotFound when the account never staked there.
	GetPosition(ctx context.Context, accountID, farmID string) (*domain.StakingPosition, error)

	// GetSeed returns the counter record for a seed.
	GetSeed(ctx context.Context, seedID string) (*domain.Seed, error)

	// ListSeeds returns all known seed ids in creation order.
	ListSeeds(ctx context.Context) ([]string, error)

	// IsContractWhitelisted reports whether a collateral contract may back farms.
	IsContractWhitelisted(ctx context.Context, contractID string) (bool, error)

	// WhitelistContract adds a collateral contract to the whitelist.
	WhitelistContract(ctx context.Context, contractID string) error

	// Transaction support
	BeginTx(ctx context.Context) (FarmingTx, error)
}

// FarmingTx defines the interface for ledger transactions
type FarmingTx interface {
	Tx

	// GetFarmForUpdate loads a farm with a row lock held until commit.
	GetFarmForUpdate(ctx context.Context, farmID string) (*domain.Farm, error)

	// UpdateFarm persists a farm's mutable fields (status, start time, pool
	// accounting). Staked items are maintained via InsertStakedItem and
	// DeleteStakedItem.
	UpdateFarm(ctx context.Context, farm *domain.Farm) error

	// InsertFarm persists a newly created farm with its accepted item set.
	InsertFarm(ctx context.Context, farm *domain.Farm) error

	// GetPositionForUpdate loads a staking position with a row lock.
	// Returns domain.ErrPositionNotFound when the account never staked there.
	GetPositionForUpdate(ctx context.Context, accountID, farmID string) (*domain.StakingPosition, error)

	// UpsertPosition creates or updates an account's position in a farm.
	UpsertPosition(ctx context.Context, accountID string, pos *domain.StakingPosition) error

	// InsertStakedItem records a collateral item as staked in a farm.
	InsertStakedItem(ctx context.Context, farmID, itemID string, item domain.StakedItem) error

	// DeleteStakedItem removes a staked item record.
	DeleteStakedItem(ctx context.Context, farmID, itemID string) error

	// AllocateFarmIndex returns the seed's next farm index and advances the
	// counter, creating the seed lazily. Must be called exactly once per
	// committed farm creation; an aborted transaction leaves the counter
	// untouched.
	AllocateFarmIndex(ctx context.Context, seedID string) (uint32, error)
}
