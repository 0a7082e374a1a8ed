package farming

import (
	"context"
	"errors"
	"fmt"

	"github.com/stakeyard/farmledger/internal/accrual"
	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/repository"
)

// Stake locks one collateral item into a farm.
//
// Reward claimable at the moment of staking is settled at the pre-stake
// position size, so the new item only earns from now on. A stake whose
// settlement would drain the remaining pool is rejected outright: the farm
// is about to end and taking new collateral into it would strand the item
// with nothing left to earn.
//
// Ownership of the item is verified before the transaction opens; a failed
// verification leaves the ledger untouched.
func (s *service) Stake(ctx context.Context, accountID, contractID, farmID, itemID string) (*StakeResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Stake called", "accountID", accountID, "farmID", farmID, "itemID", itemID)

	if accountID == "" || itemID == "" {
		return nil, fmt.Errorf("%w: missing account or item", domain.ErrInvalidInput)
	}

	// Cheap rejections against an unlocked read, before the external call.
	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := checkStakeable(farm, contractID, itemID); err != nil {
		return nil, err
	}

	if err := s.verifier.VerifyOwnership(ctx, accountID, contractID, []string{itemID}); err != nil {
		log.Info("stake rejected by ownership verification", "accountID", accountID, "itemID", itemID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNotItemOwner, err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Re-check under the row lock; the farm may have changed since the read.
	farm, err = tx.GetFarmForUpdate(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := checkStakeable(farm, contractID, itemID); err != nil {
		return nil, err
	}

	now := s.now()
	pos, err := tx.GetPositionForUpdate(ctx, accountID, farmID)
	if err != nil {
		if !errors.Is(err, domain.ErrPositionNotFound) {
			return nil, err
		}
		pos = &domain.StakingPosition{FarmID: farmID, LastStakedAt: now}
	}

	// Settlement uses the position size before this item joins.
	claimable := accrual.Claimable(farm, pos, now)

	var payout *domain.TransferIntent
	if !claimable.IsZero() {
		if claimable.Cmp(farm.AmountOfReward) >= 0 {
			return nil, fmt.Errorf("%w: claim before staking into farm %s", domain.ErrRewardExhausted, farmID)
		}
		payout, _ = s.applySettlement(farm, pos, claimable, accountID, now)
	}

	pos.Amount++
	if err := tx.UpsertPosition(ctx, accountID, pos); err != nil {
		return nil, fmt.Errorf("failed to upsert position: %w", err)
	}

	farm.StakeItem(itemID, accountID, now)
	if err := tx.InsertStakedItem(ctx, farmID, itemID, farm.StakedItems[itemID]); err != nil {
		return nil, fmt.Errorf("failed to insert staked item: %w", err)
	}
	if err := tx.UpdateFarm(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to update farm: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.farms.Invalidate(farmID)
	log.Info("item staked", "farmID", farmID, "itemID", itemID, "positionAmount", pos.Amount, "settled", claimable.String())

	s.enqueue(payout)
	if !claimable.IsZero() {
		s.publish(ctx, event.NewRewardClaimedEvent(farmID, accountID, claimable, false))
	}
	s.publish(ctx, event.NewItemStakedEvent(farmID, accountID, itemID, pos.Amount))

	return &StakeResult{
		FarmID:         farmID,
		ItemID:         itemID,
		PositionAmount: pos.Amount,
		Settled:        claimable,
	}, nil
}

// checkStakeable rejects stakes a farm cannot take.
func checkStakeable(farm *domain.Farm, contractID, itemID string) error {
	if farm.Status == domain.StatusEnded {
		return fmt.Errorf("%w: %s", domain.ErrFarmEnded, farm.ID)
	}
	if farm.CollateralContractID != contractID {
		return fmt.Errorf("%w: farm %s takes collateral from %s, got %s",
			domain.ErrContractMismatch, farm.ID, farm.CollateralContractID, contractID)
	}
	if !farm.AcceptsItem(itemID) {
		return fmt.Errorf("%w: %s", domain.ErrItemNotAccepted, itemID)
	}
	if _, staked := farm.StakedItems[itemID]; staked {
		return fmt.Errorf("%w: item %s already staked", domain.ErrInvalidInput, itemID)
	}
	return nil
}
