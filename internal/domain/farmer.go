package domain

import (
	"sort"
	"time"
)

// StakingPosition is one account's aggregate stake in one farm: how many
// collateral items are locked and the timestamp through which reward has
// been settled.
type StakingPosition struct {
	FarmID       string    `json:"farm_id"`
	LastStakedAt time.Time `json:"last_staked_at"`
	Amount       int64     `json:"amount"`
}

// Farmer holds an account's staking positions across farms.
// A position whose Amount reached zero stays as an inert row.
type Farmer struct {
	AccountID string
	Staking   map[string]*StakingPosition
}

// NewFarmer creates an empty farmer record.
func NewFarmer(accountID string) *Farmer {
	return &Farmer{
		AccountID: accountID,
		Staking:   make(map[string]*StakingPosition),
	}
}

// PositionInfo is the read projection of one staking position.
type PositionInfo struct {
	FarmID       string    `json:"farm_id"`
	LastStakedAt time.Time `json:"last_staked_at"`
	Amount       int64     `json:"amount"`
}

// FarmerInfo is the read projection of a farmer record.
type FarmerInfo struct {
	AccountID string         `json:"account_id"`
	Positions []PositionInfo `json:"positions"`
}

// Info builds the read projection, positions ordered by farm id.
func (f *Farmer) Info() *FarmerInfo {
	info := &FarmerInfo{
		AccountID: f.AccountID,
		Positions: make([]PositionInfo, 0, len(f.Staking)),
	}
	for farmID, pos := range f.Staking {
		info.Positions = append(info.Positions, PositionInfo{
			FarmID:       farmID,
			LastStakedAt: pos.LastStakedAt,
			Amount:       pos.Amount,
		})
	}
	sort.Slice(info.Positions, func(i, j int) bool {
		return info.Positions[i].FarmID < info.Positions[j].FarmID
	})
	return info
}
