package domain

import "time"

// TransferKind distinguishes the two side-effect transfers settlement emits.
type TransferKind string

const (
	// TransferRewardPayout moves claimed seed tokens to a farmer.
	TransferRewardPayout TransferKind = "reward_payout"
	// TransferCollateralRelease returns a withdrawn item to its owner.
	TransferCollateralRelease TransferKind = "collateral_release"
)

// TransferIntent is an asset movement the ledger has committed to but does
// not execute itself. Intents are handed to the transport layer after the
// ledger transaction commits; ledger accounting is authoritative and final
// regardless of transfer outcome, and retries belong to the transport.
type TransferIntent struct {
	ID            string       `json:"id"`
	Kind          TransferKind `json:"kind"`
	FarmID        string       `json:"farm_id"`
	TokenContract string       `json:"token_contract"`
	Recipient     string       `json:"recipient"`
	Amount        *Amount      `json:"amount,omitempty"`
	ItemID        string       `json:"item_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
