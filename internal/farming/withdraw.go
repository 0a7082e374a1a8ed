package farming

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stakeyard/farmledger/internal/accrual"
	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/repository"
)

// Withdraw releases one staked collateral item back to its owner.
//
// While the farm is live, withdrawal is gated by the session cooldown: the
// item itself must have remained staked for a full session interval, and
// the farm must have actually started. Pending reward settles before the
// item leaves, so the departing stake is paid for the time it served. Once
// a farm has ended the cooldown no longer applies and collateral is freely
// recoverable.
//
// The item itself travels back as a transfer intent dispatched after commit.
func (s *service) Withdraw(ctx context.Context, accountID, farmID, itemID string) (*WithdrawResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Withdraw called", "accountID", accountID, "farmID", farmID, "itemID", itemID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	farm, err := tx.GetFarmForUpdate(ctx, farmID)
	if err != nil {
		return nil, err
	}

	staked, ok := farm.StakedItems[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotStaked, itemID)
	}
	if staked.OwnerID != accountID {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotItemOwner, itemID)
	}

	pos, err := tx.GetPositionForUpdate(ctx, accountID, farmID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if farm.Status != domain.StatusEnded {
		if !now.After(farm.Terms.StartAt) {
			return nil, fmt.Errorf("%w: farm %s has not started", domain.ErrNotYetEligible, farmID)
		}
		if now.Sub(staked.StakedAt) < farm.Terms.SessionInterval {
			return nil, fmt.Errorf("%w: item %s must remain staked a full session", domain.ErrNotYetEligible, itemID)
		}
	}

	claimable := accrual.Claimable(farm, pos, now)
	var payout *domain.TransferIntent
	var ended bool
	if !claimable.IsZero() {
		payout, ended = s.applySettlement(farm, pos, claimable, accountID, now)
	}

	if pos.Amount > 0 {
		pos.Amount--
	}
	pos.LastStakedAt = now
	if err := tx.UpsertPosition(ctx, accountID, pos); err != nil {
		return nil, fmt.Errorf("failed to upsert position: %w", err)
	}

	farm.RemoveStakedItem(itemID)
	if err := tx.DeleteStakedItem(ctx, farmID, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete staked item: %w", err)
	}
	if err := tx.UpdateFarm(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to update farm: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.farms.Invalidate(farmID)
	log.Info("item withdrawn", "farmID", farmID, "itemID", itemID, "positionAmount", pos.Amount, "settled", claimable.String())

	s.enqueue(payout)
	s.enqueue(&domain.TransferIntent{
		ID:            uuid.NewString(),
		Kind:          domain.TransferCollateralRelease,
		FarmID:        farmID,
		TokenContract: farm.CollateralContractID,
		Recipient:     accountID,
		ItemID:        itemID,
		CreatedAt:     now,
	})

	if !claimable.IsZero() {
		s.publish(ctx, event.NewRewardClaimedEvent(farmID, accountID, claimable, ended))
	}
	s.publish(ctx, event.NewItemWithdrawnEvent(farmID, accountID, itemID, pos.Amount))
	if ended {
		s.publish(ctx, event.NewFarmEndedEvent(farmID, farm.Terms.SeedID, farm.AmountOfClaimed))
	}

	return &WithdrawResult{
		FarmID:         farmID,
		ItemID:         itemID,
		PositionAmount: pos.Amount,
		Settled:        claimable,
		FarmEnded:      ended,
	}, nil
}
