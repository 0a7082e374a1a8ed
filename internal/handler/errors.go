package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidOffset     = "Invalid offset parameter"

	// Farm operation error messages
	ErrMsgCreateFarmFailed   = "Failed to create farm"
	ErrMsgGetFarmFailed      = "Failed to get farm"
	ErrMsgListFarmsFailed    = "Failed to list farms"
	ErrMsgDepositFailed      = "Failed to deposit reward"
	ErrMsgStakeFailed        = "Failed to stake item"
	ErrMsgWithdrawFailed     = "Failed to withdraw item"
	ErrMsgClaimFailed        = "Failed to claim reward"
	ErrMsgGetClaimableFailed = "Failed to get claimable amount"

	// Farmer/seed error messages
	ErrMsgGetFarmerFailed = "Failed to get farmer"
	ErrMsgGetSeedFailed   = "Failed to get seed"
	ErrMsgListSeedsFailed = "Failed to list seeds"

	// Admin error messages
	ErrMsgWhitelistFailed = "Failed to whitelist contract"
	ErrMsgGetEventsFailed = "Failed to get events"
)

// Success messages for API responses
const (
	MsgContractWhitelisted = "Contract whitelisted successfully"
)
