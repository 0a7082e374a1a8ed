package handler

import (
	"net/http"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/logger"
)

// DepositRewardRequest represents a seed-token deposit into a farm's pool.
// The funder is the account that sent the tokens; the seed id names the
// token contract the deposit arrived from.
type DepositRewardRequest struct {
	FunderID string `json:"funder_id" validate:"required,max=100"`
	FarmID   string `json:"farm_id" validate:"required,farmid"`
	SeedID   string `json:"seed_id" validate:"required,max=100"`
	Amount   string `json:"amount" validate:"required,amount"`
}

// DepositRewardResponse reports the outcome of a reward deposit
type DepositRewardResponse struct {
	FarmID  string `json:"farm_id"`
	Amount  string `json:"amount"`
	Started bool   `json:"started"`
}

// StakeRequest represents staking one collateral item into a farm.
// The contract id names the NFT contract the item arrived from.
type StakeRequest struct {
	AccountID  string `json:"account_id" validate:"required,max=100"`
	ContractID string `json:"contract_id" validate:"required,max=100"`
	FarmID     string `json:"farm_id" validate:"required,farmid"`
	ItemID     string `json:"item_id" validate:"required,max=100"`
}

// WithdrawRequest represents withdrawing one staked collateral item
type WithdrawRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	FarmID    string `json:"farm_id" validate:"required,farmid"`
	ItemID    string `json:"item_id" validate:"required,max=100"`
}

// ClaimRequest represents claiming accrued reward from a farm
type ClaimRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	FarmID    string `json:"farm_id" validate:"required,farmid"`
}

// ClaimableResponse reports the reward claimable right now
type ClaimableResponse struct {
	FarmID    string         `json:"farm_id"`
	AccountID string         `json:"account_id"`
	Claimable *domain.Amount `json:"claimable"`
}

// DepositReward handles the reward deposit endpoint
// @Summary Deposit reward tokens
// @Description Top up a farm's reward pool with seed tokens. The first deposit starts the farm.
// @Tags farm
// @Accept json
// @Produce json
// @Param request body DepositRewardRequest true "Deposit"
// @Success 200 {object} DepositRewardResponse "Deposit applied"
// @Failure 400 {object} ErrorResponse "Invalid amount or wrong seed"
// @Failure 409 {object} ErrorResponse "Farm already ended"
// @Router /farm/deposit [post]
func (h *FarmHandler) DepositReward(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req DepositRewardRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deposit reward"); err != nil {
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAmountError)
		return
	}

	log.Info("Deposit request received", "farmID", req.FarmID, "funderID", req.FunderID, "amount", req.Amount)

	started, err := h.farmingSvc.DepositReward(r.Context(), req.FunderID, req.FarmID, req.SeedID, amount)
	if err != nil {
		respondServiceError(w, r, "Deposit reward", err)
		return
	}

	log.Info("Deposit applied", "farmID", req.FarmID, "started", started)
	respondJSON(w, http.StatusOK, DepositRewardResponse{
		FarmID:  req.FarmID,
		Amount:  amount.String(),
		Started: started,
	})
}

// Stake handles the stake endpoint
// @Summary Stake a collateral item
// @Description Lock one collateral item into a farm. Reward already claimable on the position is settled first.
// @Tags stake
// @Accept json
// @Produce json
// @Param request body StakeRequest true "Stake"
// @Success 200 {object} farming.StakeResult "Item staked"
// @Failure 400 {object} ErrorResponse "Item not accepted or wrong contract"
// @Failure 403 {object} ErrorResponse "Caller does not own the item"
// @Failure 409 {object} ErrorResponse "Farm ended or pool nearly exhausted"
// @Router /farm/stake [post]
func (h *FarmHandler) Stake(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req StakeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Stake"); err != nil {
		return
	}

	log.Info("Stake request received", "accountID", req.AccountID, "farmID", req.FarmID, "itemID", req.ItemID)

	result, err := h.farmingSvc.Stake(r.Context(), req.AccountID, req.ContractID, req.FarmID, req.ItemID)
	if err != nil {
		respondServiceError(w, r, "Stake", err)
		return
	}

	log.Info("Item staked", "farmID", req.FarmID, "itemID", req.ItemID, "positionAmount", result.PositionAmount)
	respondJSON(w, http.StatusOK, result)
}

// Withdraw handles the withdraw endpoint
// @Summary Withdraw a staked item
// @Description Release one staked collateral item back to its owner, settling pending reward first. Subject to the session cooldown while the farm is running.
// @Tags stake
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Withdraw"
// @Success 200 {object} farming.WithdrawResult "Item withdrawn"
// @Failure 400 {object} ErrorResponse "Item not staked"
// @Failure 403 {object} ErrorResponse "Caller does not own the item"
// @Failure 409 {object} ErrorResponse "Session cooldown has not elapsed"
// @Router /farm/withdraw [post]
func (h *FarmHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req WithdrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
		return
	}

	log.Info("Withdraw request received", "accountID", req.AccountID, "farmID", req.FarmID, "itemID", req.ItemID)

	result, err := h.farmingSvc.Withdraw(r.Context(), req.AccountID, req.FarmID, req.ItemID)
	if err != nil {
		respondServiceError(w, r, "Withdraw", err)
		return
	}

	log.Info("Item withdrawn", "farmID", req.FarmID, "itemID", req.ItemID, "farmEnded", result.FarmEnded)
	respondJSON(w, http.StatusOK, result)
}

// Claim handles the claim endpoint
// @Summary Claim accrued reward
// @Description Settle all claimable reward on the caller's position. A claim covering the whole remaining pool ends the farm.
// @Tags claim
// @Accept json
// @Produce json
// @Param request body ClaimRequest true "Claim"
// @Success 200 {object} farming.ClaimResult "Reward settled"
// @Failure 404 {object} ErrorResponse "Farm or position not found"
// @Router /farm/claim [post]
func (h *FarmHandler) Claim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim"); err != nil {
		return
	}

	log.Info("Claim request received", "accountID", req.AccountID, "farmID", req.FarmID)

	result, err := h.farmingSvc.Claim(r.Context(), req.AccountID, req.FarmID)
	if err != nil {
		respondServiceError(w, r, "Claim", err)
		return
	}

	log.Info("Claim settled", "farmID", req.FarmID, "amount", result.Amount, "farmEnded", result.FarmEnded)
	respondJSON(w, http.StatusOK, result)
}

// GetClaimable handles the claimable preview endpoint
// @Summary Get claimable amount
// @Description Compute the reward an account could claim from a farm right now, without mutating anything
// @Tags claim
// @Produce json
// @Param account_id query string true "Account id"
// @Param farm_id query string true "Farm id (seed#index)"
// @Success 200 {object} ClaimableResponse
// @Failure 404 {object} ErrorResponse "Farm not found"
// @Router /farm/claimable [get]
func (h *FarmHandler) GetClaimable(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}
	farmID, ok := GetQueryParam(r, w, "farm_id")
	if !ok {
		return
	}

	claimable, err := h.farmingSvc.GetClaimableAmount(r.Context(), accountID, farmID)
	if err != nil {
		respondServiceError(w, r, "Get claimable", err)
		return
	}

	respondJSON(w, http.StatusOK, ClaimableResponse{
		FarmID:    farmID,
		AccountID: accountID,
		Claimable: claimable,
	})
}
