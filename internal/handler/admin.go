package handler

import (
	"net/http"

	"github.com/stakeyard/farmledger/internal/farming"
	"github.com/stakeyard/farmledger/internal/logger"
)

// WhitelistContractRequest represents the request to whitelist a collateral contract
type WhitelistContractRequest struct {
	ContractID string `json:"contract_id" validate:"required,max=100"`
}

// WhitelistStatusResponse reports whether a contract is whitelisted
type WhitelistStatusResponse struct {
	ContractID  string `json:"contract_id"`
	Whitelisted bool   `json:"whitelisted"`
}

// AdminHandler handles ledger administration requests
type AdminHandler struct {
	farmingSvc farming.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(farmingSvc farming.Service) *AdminHandler {
	return &AdminHandler{farmingSvc: farmingSvc}
}

// WhitelistContract handles the contract whitelist endpoint
// @Summary Whitelist a collateral contract
// @Description Allow an NFT contract to back new farms as collateral
// @Tags admin
// @Accept json
// @Produce json
// @Param request body WhitelistContractRequest true "Contract"
// @Success 200 {object} SuccessResponse "Contract whitelisted"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /admin/whitelist [post]
func (h *AdminHandler) WhitelistContract(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req WhitelistContractRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Whitelist contract"); err != nil {
		return
	}

	if err := h.farmingSvc.WhitelistContract(r.Context(), req.ContractID); err != nil {
		respondServiceError(w, r, "Whitelist contract", err)
		return
	}

	log.Info("Contract whitelisted", "contractID", req.ContractID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgContractWhitelisted})
}

// GetWhitelistStatus handles the whitelist status endpoint
// @Summary Check contract whitelist status
// @Tags admin
// @Produce json
// @Param contract_id query string true "Contract id"
// @Success 200 {object} WhitelistStatusResponse
// @Router /admin/whitelist [get]
func (h *AdminHandler) GetWhitelistStatus(w http.ResponseWriter, r *http.Request) {
	contractID, ok := GetQueryParam(r, w, "contract_id")
	if !ok {
		return
	}

	whitelisted, err := h.farmingSvc.IsContractWhitelisted(r.Context(), contractID)
	if err != nil {
		respondServiceError(w, r, "Whitelist status", err)
		return
	}

	respondJSON(w, http.StatusOK, WhitelistStatusResponse{
		ContractID:  contractID,
		Whitelisted: whitelisted,
	})
}
