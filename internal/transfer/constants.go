package transfer

import "time"

const (
	// TokenTransferPath receives reward payout intents.
	TokenTransferPath = "/v1/transfers/tokens"

	// ItemTransferPath receives collateral release intents.
	ItemTransferPath = "/v1/transfers/items"

	// DefaultTimeout bounds a single dispatch round trip.
	DefaultTimeout = 10 * time.Second
)
