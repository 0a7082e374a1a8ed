package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Farm errors
	ErrMsgFarmNotFound   = "farm not found"
	ErrMsgFarmEnded      = "farm is ended"
	ErrMsgFarmNotRunning = "farm is not running"
	ErrMsgFarmNotStarted = "farm has not started"

	// Stake errors
	ErrMsgItemNotAccepted  = "item not accepted by farm"
	ErrMsgContractMismatch = "collateral contract mismatch"
	ErrMsgItemNotStaked    = "item not staked in farm"
	ErrMsgRewardExhausted  = "reward pool nearly exhausted"

	// Position errors
	ErrMsgPositionNotFound = "no staking position"
	ErrMsgFarmerNotFound   = "farmer not found"

	// Settlement errors
	ErrMsgNotYetEligible = "not eligible yet"
	ErrMsgNothingToClaim = "nothing to claim"

	// Seed errors
	ErrMsgSeedNotFound = "seed not found"
	ErrMsgSeedMismatch = "wrong seed for farm"

	// Authorization errors
	ErrMsgNotAuthorized = "not authorized"
	ErrMsgNotItemOwner  = "caller is not the item owner"

	// Creation errors
	ErrMsgVerificationFailed  = "ownership verification failed"
	ErrMsgContractNotAccepted = "collateral contract not whitelisted"
	ErrMsgInvalidTerms        = "invalid farm terms"

	// Validation errors
	ErrMsgInvalidAmount = "invalid amount"
	ErrMsgInvalidFarmID = "invalid farm id"
	ErrMsgInvalidInput  = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Farm errors
	ErrFarmNotFound   = errors.New(ErrMsgFarmNotFound)
	ErrFarmEnded      = errors.New(ErrMsgFarmEnded)
	ErrFarmNotRunning = errors.New(ErrMsgFarmNotRunning)
	ErrFarmNotStarted = errors.New(ErrMsgFarmNotStarted)

	// Stake errors
	ErrItemNotAccepted  = errors.New(ErrMsgItemNotAccepted)
	ErrContractMismatch = errors.New(ErrMsgContractMismatch)
	ErrItemNotStaked    = errors.New(ErrMsgItemNotStaked)
	ErrRewardExhausted  = errors.New(ErrMsgRewardExhausted)

	// Position errors
	ErrPositionNotFound = errors.New(ErrMsgPositionNotFound)
	ErrFarmerNotFound   = errors.New(ErrMsgFarmerNotFound)

	// Settlement errors
	ErrNotYetEligible = errors.New(ErrMsgNotYetEligible)
	ErrNothingToClaim = errors.New(ErrMsgNothingToClaim)

	// Seed errors
	ErrSeedNotFound = errors.New(ErrMsgSeedNotFound)
	ErrSeedMismatch = errors.New(ErrMsgSeedMismatch)

	// Authorization errors
	ErrNotAuthorized = errors.New(ErrMsgNotAuthorized)
	ErrNotItemOwner  = errors.New(ErrMsgNotItemOwner)

	// Creation errors
	ErrVerificationFailed  = errors.New(ErrMsgVerificationFailed)
	ErrContractNotAccepted = errors.New(ErrMsgContractNotAccepted)
	ErrInvalidTerms        = errors.New(ErrMsgInvalidTerms)

	// Validation errors
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)
	ErrInvalidFarmID = errors.New(ErrMsgInvalidFarmID)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
