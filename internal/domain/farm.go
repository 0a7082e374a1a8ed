package domain

import (
	"sort"
	"time"
)

// Status is the lifecycle state of a farm.
// Farms move Created -> Running -> Ended and never back.
type Status string

const (
	StatusCreated Status = "Created"
	StatusRunning Status = "Running"
	StatusEnded   Status = "Ended"
)

// Terms are the emission parameters a farm is created with.
// RewardPerSession tokens accrue to each staked item per SessionInterval.
type Terms struct {
	SeedID           string        `json:"seed_id"`
	StartAt          time.Time     `json:"start_at"`
	RewardPerSession *Amount       `json:"reward_per_session"`
	SessionInterval  time.Duration `json:"-"`
}

// StakedItem records one collateral item currently locked in a farm.
type StakedItem struct {
	OwnerID  string    `json:"owner_id"`
	StakedAt time.Time `json:"staked_at"`
}

// Farm is one reward pool distributing a seed token pro-rata to staked
// collateral items.
type Farm struct {
	ID                   string
	OwnerID              string
	Terms                Terms
	Status               Status
	AmountOfReward       *Amount
	AmountOfClaimed      *Amount
	CollateralContractID string
	AcceptedItems        map[string]struct{}
	StakedItems          map[string]StakedItem
	// stakedOrder preserves insertion order so projections are stable.
	stakedOrder []string
}

// NewFarm creates a farm in the Created state with an empty pool.
func NewFarm(id, ownerID string, terms Terms, collateralContractID string, acceptedItems []string) *Farm {
	accepted := make(map[string]struct{}, len(acceptedItems))
	for _, item := range acceptedItems {
		accepted[item] = struct{}{}
	}
	return &Farm{
		ID:                   id,
		OwnerID:              ownerID,
		Terms:                terms,
		Status:               StatusCreated,
		AmountOfReward:       NewAmount(0),
		AmountOfClaimed:      NewAmount(0),
		CollateralContractID: collateralContractID,
		AcceptedItems:        accepted,
		StakedItems:          make(map[string]StakedItem),
	}
}

// AcceptsItem reports whether the farm whitelists the given collateral item.
func (f *Farm) AcceptsItem(itemID string) bool {
	_, ok := f.AcceptedItems[itemID]
	return ok
}

// AddReward applies a reward top-up. The first top-up moves the farm to
// Running; a farm without an explicit start time starts farming at that
// moment. Top-ups on an ended farm fail.
func (f *Farm) AddReward(amount *Amount, now time.Time) error {
	switch f.Status {
	case StatusCreated:
		f.Status = StatusRunning
		if f.Terms.StartAt.IsZero() {
			f.Terms.StartAt = now
		}
		f.AmountOfReward = f.AmountOfReward.Add(amount)
	case StatusRunning:
		f.AmountOfReward = f.AmountOfReward.Add(amount)
	default:
		return ErrFarmEnded
	}
	return nil
}

// SetEnded pays out the entire remaining pool and closes the farm.
func (f *Farm) SetEnded(amount *Amount) {
	f.AmountOfClaimed = f.AmountOfClaimed.Add(amount)
	f.AmountOfReward = NewAmount(0)
	f.Status = StatusEnded
}

// Settle books a partial payout against the pool.
func (f *Farm) Settle(amount *Amount) {
	f.AmountOfReward = f.AmountOfReward.Sub(amount)
	f.AmountOfClaimed = f.AmountOfClaimed.Add(amount)
}

// StakeItem records a collateral item as staked.
func (f *Farm) StakeItem(itemID, ownerID string, at time.Time) {
	if _, exists := f.StakedItems[itemID]; !exists {
		f.stakedOrder = append(f.stakedOrder, itemID)
	}
	f.StakedItems[itemID] = StakedItem{OwnerID: ownerID, StakedAt: at}
}

// RemoveStakedItem drops a staked item, returning its record.
func (f *Farm) RemoveStakedItem(itemID string) (StakedItem, bool) {
	item, ok := f.StakedItems[itemID]
	if !ok {
		return StakedItem{}, false
	}
	delete(f.StakedItems, itemID)
	for i, id := range f.stakedOrder {
		if id == itemID {
			f.stakedOrder = append(f.stakedOrder[:i], f.stakedOrder[i+1:]...)
			break
		}
	}
	return item, true
}

// StakedItemIDs returns the staked item ids in insertion order.
func (f *Farm) StakedItemIDs() []string {
	ids := make([]string, len(f.stakedOrder))
	copy(ids, f.stakedOrder)
	return ids
}

// StakedCountByOwner counts staked items belonging to an account.
func (f *Farm) StakedCountByOwner(ownerID string) int64 {
	var n int64
	for _, item := range f.StakedItems {
		if item.OwnerID == ownerID {
			n++
		}
	}
	return n
}

// FarmInfo is the read projection of a farm, sufficient to rebuild UI state
// without touching storage internals.
type FarmInfo struct {
	FarmID                 string       `json:"farm_id"`
	OwnerID                string       `json:"owner_id"`
	FarmStatus             string       `json:"farm_status"`
	SeedID                 string       `json:"seed_id"`
	StartAt                time.Time    `json:"start_at"`
	RewardPerSession       *Amount      `json:"reward_per_session"`
	SessionIntervalSeconds int64        `json:"session_interval_seconds"`
	CollateralContractID   string       `json:"collateral_contract_id"`
	TotalReward            *Amount      `json:"total_reward"`
	ClaimedReward          *Amount      `json:"claimed_reward"`
	AcceptedItems          []string     `json:"accepted_items"`
	StakedItemIDs          []string     `json:"staked_item_ids"`
	StakedItems            []StakedItem `json:"staked_items"`
}

// Info builds the read projection for this farm.
func (f *Farm) Info() *FarmInfo {
	accepted := make([]string, 0, len(f.AcceptedItems))
	for item := range f.AcceptedItems {
		accepted = append(accepted, item)
	}
	sort.Strings(accepted)

	ids := f.StakedItemIDs()
	staked := make([]StakedItem, 0, len(ids))
	for _, id := range ids {
		staked = append(staked, f.StakedItems[id])
	}

	return &FarmInfo{
		FarmID:                 f.ID,
		OwnerID:                f.OwnerID,
		FarmStatus:             string(f.Status),
		SeedID:                 f.Terms.SeedID,
		StartAt:                f.Terms.StartAt,
		RewardPerSession:       f.Terms.RewardPerSession.Clone(),
		SessionIntervalSeconds: int64(f.Terms.SessionInterval / time.Second),
		CollateralContractID:   f.CollateralContractID,
		TotalReward:            f.AmountOfReward.Clone(),
		ClaimedReward:          f.AmountOfClaimed.Clone(),
		AcceptedItems:          accepted,
		StakedItemIDs:          ids,
		StakedItems:            staked,
	}
}
