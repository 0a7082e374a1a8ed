package farming

import (
	"context"
	"errors"
	"fmt"

	"github.com/stakeyard/farmledger/internal/accrual"
	"github.com/stakeyard/farmledger/internal/domain"
)

// GetFarm returns a farm's read projection, served from the info cache when
// fresh.
func (s *service) GetFarm(ctx context.Context, farmID string) (*domain.FarmInfo, error) {
	if info, ok := s.farms.Get(farmID); ok {
		return info, nil
	}

	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}

	info := farm.Info()
	s.farms.Set(farmID, info)
	return info, nil
}

// ListFarms pages through farms in creation order.
func (s *service) ListFarms(ctx context.Context, offset, limit int64) ([]*domain.FarmInfo, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	farms, err := s.repo.ListFarms(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}

	infos := make([]*domain.FarmInfo, 0, len(farms))
	for _, farm := range farms {
		infos = append(infos, farm.Info())
	}
	return infos, nil
}

// CountFarms returns the total number of farms ever created.
func (s *service) CountFarms(ctx context.Context) (int64, error) {
	return s.repo.CountFarms(ctx)
}

// GetFarmer returns an account's staking positions across all farms.
func (s *service) GetFarmer(ctx context.Context, accountID string) (*domain.FarmerInfo, error) {
	farmer, err := s.repo.GetFarmer(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return farmer.Info(), nil
}

// GetClaimableAmount computes, without mutating anything, the reward an
// account could claim from a farm right now. An account with no position
// can claim nothing.
func (s *service) GetClaimableAmount(ctx context.Context, accountID, farmID string) (*domain.Amount, error) {
	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}

	pos, err := s.repo.GetPosition(ctx, accountID, farmID)
	if err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return domain.NewAmount(0), nil
		}
		return nil, err
	}

	return accrual.Claimable(farm, pos, s.now()), nil
}

// GetSeed returns the counter record for a seed.
func (s *service) GetSeed(ctx context.Context, seedID string) (*domain.Seed, error) {
	return s.repo.GetSeed(ctx, seedID)
}

// ListSeeds returns all seed ids farms have been created under.
func (s *service) ListSeeds(ctx context.Context) ([]string, error) {
	return s.repo.ListSeeds(ctx)
}

// WhitelistContract admits a collateral contract for future farms.
func (s *service) WhitelistContract(ctx context.Context, contractID string) error {
	if contractID == "" {
		return fmt.Errorf("%w: missing contract id", domain.ErrInvalidInput)
	}
	return s.repo.WhitelistContract(ctx, contractID)
}

// IsContractWhitelisted reports whether a collateral contract may back farms.
func (s *service) IsContractWhitelisted(ctx context.Context, contractID string) (bool, error) {
	return s.repo.IsContractWhitelisted(ctx, contractID)
}
