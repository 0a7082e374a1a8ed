package farming

import (
	"context"
	"fmt"

	"github.com/stakeyard/farmledger/internal/accrual"
	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/repository"
)

// Claim settles all reward claimable on the caller's position.
//
// A claim against a farm whose start time is still in the future is
// rejected. A claim with nothing accrued succeeds with a zero amount and touches
// nothing; the position clock does not move, so claiming repeatedly never
// loses partial-session progress. A claim covering the whole remaining pool
// drains it and ends the farm.
func (s *service) Claim(ctx context.Context, accountID, farmID string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Claim called", "accountID", accountID, "farmID", farmID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	farm, err := tx.GetFarmForUpdate(ctx, farmID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Before(farm.Terms.StartAt) {
		return nil, fmt.Errorf("%w: farm %s has not started", domain.ErrNotYetEligible, farmID)
	}

	pos, err := tx.GetPositionForUpdate(ctx, accountID, farmID)
	if err != nil {
		return nil, err
	}
	claimable := accrual.Claimable(farm, pos, now)
	if claimable.IsZero() {
		return &ClaimResult{FarmID: farmID, Amount: claimable}, nil
	}

	payout, ended := s.applySettlement(farm, pos, claimable, accountID, now)

	if err := tx.UpsertPosition(ctx, accountID, pos); err != nil {
		return nil, fmt.Errorf("failed to upsert position: %w", err)
	}
	if err := tx.UpdateFarm(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to update farm: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.farms.Invalidate(farmID)
	log.Info("reward claimed", "farmID", farmID, "accountID", accountID, "amount", claimable.String(), "farmEnded", ended)

	s.enqueue(payout)
	s.publish(ctx, event.NewRewardClaimedEvent(farmID, accountID, claimable, ended))
	if ended {
		s.publish(ctx, event.NewFarmEndedEvent(farmID, farm.Terms.SeedID, farm.AmountOfClaimed))
	}

	return &ClaimResult{FarmID: farmID, Amount: claimable, FarmEnded: ended}, nil
}
