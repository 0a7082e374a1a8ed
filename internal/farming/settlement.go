package farming

import (
	"time"

	"github.com/google/uuid"

	"github.com/stakeyard/farmledger/internal/domain"
)

// applySettlement books a claimable reward against the farm's pool.
// The caller has already computed claimable and holds both rows locked.
//
// A settlement covering the whole remaining pool ends the farm; the pool
// drains to zero and the position clock is left alone, since an ended farm
// accrues nothing. A partial settlement advances the position clock so the
// same elapsed time cannot pay twice.
//
// Returns the payout intent to dispatch after commit and whether the farm
// ended.
func (s *service) applySettlement(farm *domain.Farm, pos *domain.StakingPosition, claimable *domain.Amount, accountID string, now time.Time) (*domain.TransferIntent, bool) {
	ended := claimable.Cmp(farm.AmountOfReward) >= 0
	if ended {
		farm.SetEnded(claimable)
	} else {
		farm.Settle(claimable)
		pos.LastStakedAt = now
	}

	intent := &domain.TransferIntent{
		ID:            uuid.NewString(),
		Kind:          domain.TransferRewardPayout,
		FarmID:        farm.ID,
		TokenContract: farm.Terms.SeedID,
		Recipient:     accountID,
		Amount:        claimable.Clone(),
		CreatedAt:     now,
	}
	return intent, ended
}
