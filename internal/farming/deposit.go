package farming

import (
	"context"
	"fmt"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/repository"
)

// DepositReward tops up a farm's reward pool. Only the farm owner may fund
// it, and only with the farm's own seed token; seedID names the token the
// deposit arrived in. The first deposit moves the farm to Running,
// defaulting the start time to now when the terms left it open.
func (s *service) DepositReward(ctx context.Context, funderID, farmID, seedID string, amount *domain.Amount) (bool, error) {
	log := logger.FromContext(ctx)
	log.Info("DepositReward called", "funderID", funderID, "farmID", farmID, "seedID", seedID)

	if amount == nil || amount.IsZero() {
		return false, fmt.Errorf("%w: deposit must be positive", domain.ErrInvalidAmount)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	farm, err := tx.GetFarmForUpdate(ctx, farmID)
	if err != nil {
		return false, err
	}
	if farm.OwnerID != funderID {
		return false, fmt.Errorf("%w: only the owner of %s may fund it", domain.ErrNotAuthorized, farmID)
	}
	if farm.Terms.SeedID != seedID {
		return false, fmt.Errorf("%w: farm %s takes %s, got %s", domain.ErrSeedMismatch, farmID, farm.Terms.SeedID, seedID)
	}

	started := farm.Status == domain.StatusCreated
	now := s.now()
	if err := farm.AddReward(amount, now); err != nil {
		return false, fmt.Errorf("%w: %s", err, farmID)
	}

	if err := tx.UpdateFarm(ctx, farm); err != nil {
		return false, fmt.Errorf("failed to update farm: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.farms.Invalidate(farmID)
	log.Info("reward deposited", "farmID", farmID, "amount", amount.String(), "started", started)

	s.publish(ctx, event.NewRewardDepositedEvent(farmID, funderID, seedID, amount, started))
	if started {
		s.publish(ctx, event.NewFarmStartedEvent(farmID, seedID))
	}

	return started, nil
}
