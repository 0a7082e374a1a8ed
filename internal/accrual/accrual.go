// Package accrual computes claimable reward for a staking position. It is
// pure computation: every mutation of farm or farmer state happens in the
// farming service after the value is known.
package accrual

import (
	"math/big"
	"time"

	"github.com/stakeyard/farmledger/internal/domain"
)

// Claimable returns the reward a position can claim from a farm at the given
// instant.
//
// The value is zero unless the farm is Running and strictly more than one
// full session interval has elapsed since the position last settled; partial
// sessions never pay out. Otherwise the payout is
//
//	amount * reward_per_session * elapsed / session_interval
//
// with truncating integer division, computed in big.Int so that 128-bit
// scale pools cannot overflow, and clamped to the farm's remaining pool.
func Claimable(farm *domain.Farm, pos *domain.StakingPosition, now time.Time) *domain.Amount {
	if farm == nil || pos == nil || pos.Amount <= 0 {
		return domain.NewAmount(0)
	}
	if farm.Status != domain.StatusRunning {
		return domain.NewAmount(0)
	}

	interval := farm.Terms.SessionInterval
	if interval <= 0 {
		return domain.NewAmount(0)
	}
	elapsed := now.Sub(pos.LastStakedAt)
	if elapsed <= interval {
		return domain.NewAmount(0)
	}

	claimable := new(big.Int).SetInt64(pos.Amount)
	claimable.Mul(claimable, farm.Terms.RewardPerSession.BigInt())
	claimable.Mul(claimable, big.NewInt(int64(elapsed)))
	claimable.Quo(claimable, big.NewInt(int64(interval)))

	remaining := farm.AmountOfReward.BigInt()
	if claimable.Cmp(remaining) > 0 {
		claimable.Set(remaining)
	}
	return domain.AmountFromBig(claimable)
}
