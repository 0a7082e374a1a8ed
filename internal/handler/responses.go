package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"encoding/json"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer; headers are already sent so an
	// encoding failure can only be logged.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// HTTP response for it.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Farm messages
	ErrMsgFarmNotFoundError   = "Farm not found"
	ErrMsgFarmEndedError      = "Farm has already ended"
	ErrMsgFarmNotRunningError = "Farm is not running"
	ErrMsgSeedMismatchError   = "Deposited token does not match the farm's seed"
	ErrMsgInvalidTermsError   = "Invalid farm terms"

	// Stake messages
	ErrMsgItemNotAcceptedError   = "That item is not accepted by this farm"
	ErrMsgContractMismatchError  = "Collateral contract does not match this farm"
	ErrMsgItemNotStakedError     = "That item is not staked in this farm"
	ErrMsgRewardExhaustedError   = "Reward pool is nearly exhausted; staking is closed"
	ErrMsgNotItemOwnerError      = "You do not own that item"
	ErrMsgVerificationFailedErr  = "Ownership verification failed"
	ErrMsgContractNotAcceptedErr = "Collateral contract is not whitelisted"

	// Settlement messages
	ErrMsgNotYetEligibleError   = "Session cooldown has not elapsed yet"
	ErrMsgNothingToClaimError   = "Nothing to claim"
	ErrMsgPositionNotFoundError = "No staking position in this farm"
	ErrMsgFarmerNotFoundError   = "Farmer not found"
	ErrMsgSeedNotFoundError     = "Seed not found"
	ErrMsgInvalidAmountError    = "Invalid amount"
	ErrMsgNotAuthorizedError    = "Not authorized"
)

// mapServiceErrorToUserMessage maps domain errors to user-facing HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrFarmNotFound):
		return http.StatusNotFound, ErrMsgFarmNotFoundError
	case errors.Is(err, domain.ErrFarmerNotFound):
		return http.StatusNotFound, ErrMsgFarmerNotFoundError
	case errors.Is(err, domain.ErrSeedNotFound):
		return http.StatusNotFound, ErrMsgSeedNotFoundError
	case errors.Is(err, domain.ErrPositionNotFound):
		return http.StatusNotFound, ErrMsgPositionNotFoundError
	case errors.Is(err, domain.ErrFarmEnded):
		return http.StatusConflict, ErrMsgFarmEndedError
	case errors.Is(err, domain.ErrRewardExhausted):
		return http.StatusConflict, ErrMsgRewardExhaustedError
	case errors.Is(err, domain.ErrNotYetEligible):
		return http.StatusConflict, ErrMsgNotYetEligibleError
	case errors.Is(err, domain.ErrFarmNotRunning):
		return http.StatusConflict, ErrMsgFarmNotRunningError
	case errors.Is(err, domain.ErrNothingToClaim):
		return http.StatusBadRequest, ErrMsgNothingToClaimError
	case errors.Is(err, domain.ErrSeedMismatch):
		return http.StatusBadRequest, ErrMsgSeedMismatchError
	case errors.Is(err, domain.ErrInvalidTerms):
		return http.StatusBadRequest, ErrMsgInvalidTermsError
	case errors.Is(err, domain.ErrItemNotAccepted):
		return http.StatusBadRequest, ErrMsgItemNotAcceptedError
	case errors.Is(err, domain.ErrContractMismatch):
		return http.StatusBadRequest, ErrMsgContractMismatchError
	case errors.Is(err, domain.ErrItemNotStaked):
		return http.StatusBadRequest, ErrMsgItemNotStakedError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidFarmID):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrNotItemOwner):
		return http.StatusForbidden, ErrMsgNotItemOwnerError
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, ErrMsgNotAuthorizedError
	case errors.Is(err, domain.ErrVerificationFailed):
		return http.StatusBadGateway, ErrMsgVerificationFailedErr
	case errors.Is(err, domain.ErrContractNotAccepted):
		return http.StatusBadRequest, ErrMsgContractNotAcceptedErr
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
