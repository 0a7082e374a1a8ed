package handler

import (
	"net/http"
	"time"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/farming"
	"github.com/stakeyard/farmledger/internal/logger"
)

// CreateFarmRequest represents the request to create a farm
type CreateFarmRequest struct {
	OwnerID                string     `json:"owner_id" validate:"required,max=100"`
	SeedID                 string     `json:"seed_id" validate:"required,max=100,excludesall=#"`
	StartAt                *time.Time `json:"start_at,omitempty"`
	RewardPerSession       string     `json:"reward_per_session" validate:"required,amount"`
	SessionIntervalSeconds int64      `json:"session_interval_seconds" validate:"required,min=1"`
	CollateralContractID   string     `json:"collateral_contract_id" validate:"required,max=100"`
	AcceptedItems          []string   `json:"accepted_items" validate:"required,min=1,dive,required"`
}

// ListFarmsResponse pages through farms with the total count
type ListFarmsResponse struct {
	Farms  []*domain.FarmInfo `json:"farms"`
	Total  int64              `json:"total"`
	Offset int64              `json:"offset"`
	Limit  int64              `json:"limit"`
}

// FarmHandler handles farm lifecycle and query HTTP requests
type FarmHandler struct {
	farmingSvc farming.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmingSvc farming.Service) *FarmHandler {
	return &FarmHandler{farmingSvc: farmingSvc}
}

// CreateFarm handles the farm creation endpoint
// @Summary Create a farm
// @Description Create a new reward farm under a seed token. Ownership of the accepted collateral items is verified before the farm is minted.
// @Tags farm
// @Accept json
// @Produce json
// @Param request body CreateFarmRequest true "Farm terms"
// @Success 201 {object} domain.FarmInfo "Farm created"
// @Failure 400 {object} ErrorResponse "Invalid terms or contract not whitelisted"
// @Failure 502 {object} ErrorResponse "Ownership verification unavailable"
// @Router /farm [post]
func (h *FarmHandler) CreateFarm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req CreateFarmRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create farm"); err != nil {
		return
	}

	reward, err := domain.ParseAmount(req.RewardPerSession)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAmountError)
		return
	}

	params := farming.CreateFarmParams{
		SeedID:               req.SeedID,
		RewardPerSession:     reward,
		SessionInterval:      time.Duration(req.SessionIntervalSeconds) * time.Second,
		CollateralContractID: req.CollateralContractID,
		AcceptedItems:        req.AcceptedItems,
	}
	if req.StartAt != nil {
		params.StartAt = *req.StartAt
	}

	log.Info("Create farm request received", "ownerID", req.OwnerID, "seedID", req.SeedID)

	info, err := h.farmingSvc.CreateFarm(r.Context(), req.OwnerID, params)
	if err != nil {
		respondServiceError(w, r, "Create farm", err)
		return
	}

	log.Info("Farm created", "farmID", info.FarmID, "ownerID", req.OwnerID)
	respondJSON(w, http.StatusCreated, info)
}

// GetFarm handles the farm info endpoint
// @Summary Get farm info
// @Description Retrieve the full projection of one farm
// @Tags farm
// @Produce json
// @Param farm_id query string true "Farm id (seed#index)"
// @Success 200 {object} domain.FarmInfo
// @Failure 404 {object} ErrorResponse "Farm not found"
// @Router /farm [get]
func (h *FarmHandler) GetFarm(w http.ResponseWriter, r *http.Request) {
	farmID, ok := GetQueryParam(r, w, "farm_id")
	if !ok {
		return
	}

	info, err := h.farmingSvc.GetFarm(r.Context(), farmID)
	if err != nil {
		respondServiceError(w, r, "Get farm", err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// ListFarms handles the farm listing endpoint
// @Summary List farms
// @Description Page through farms in creation order
// @Tags farm
// @Produce json
// @Param offset query int false "Page offset" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} ListFarmsResponse
// @Router /farms [get]
func (h *FarmHandler) ListFarms(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := parsePageParams(r, w, DefaultListLimit, MaxListLimit)
	if !ok {
		return
	}

	farms, err := h.farmingSvc.ListFarms(r.Context(), offset, limit)
	if err != nil {
		respondServiceError(w, r, "List farms", err)
		return
	}

	total, err := h.farmingSvc.CountFarms(r.Context())
	if err != nil {
		respondServiceError(w, r, "List farms", err)
		return
	}

	respondJSON(w, http.StatusOK, ListFarmsResponse{
		Farms:  farms,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// GetFarmer handles the farmer positions endpoint
// @Summary Get farmer positions
// @Description Retrieve an account's staking positions across all farms
// @Tags farmer
// @Produce json
// @Param account_id query string true "Account id"
// @Success 200 {object} domain.FarmerInfo
// @Failure 404 {object} ErrorResponse "Farmer not found"
// @Router /farmer [get]
func (h *FarmHandler) GetFarmer(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}

	info, err := h.farmingSvc.GetFarmer(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, "Get farmer", err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// GetSeed handles the seed lookup endpoint
// @Summary Get seed
// @Description Retrieve the farm counter record for a seed token
// @Tags seed
// @Produce json
// @Param seed_id query string true "Seed id"
// @Success 200 {object} domain.Seed
// @Failure 404 {object} ErrorResponse "Seed not found"
// @Router /seed [get]
func (h *FarmHandler) GetSeed(w http.ResponseWriter, r *http.Request) {
	seedID, ok := GetQueryParam(r, w, "seed_id")
	if !ok {
		return
	}

	seed, err := h.farmingSvc.GetSeed(r.Context(), seedID)
	if err != nil {
		respondServiceError(w, r, "Get seed", err)
		return
	}

	respondJSON(w, http.StatusOK, seed)
}

// ListSeeds handles the seed listing endpoint
// @Summary List seeds
// @Description Retrieve all seed ids known to the ledger
// @Tags seed
// @Produce json
// @Success 200 {object} DataResponse
// @Router /seeds [get]
func (h *FarmHandler) ListSeeds(w http.ResponseWriter, r *http.Request) {
	seeds, err := h.farmingSvc.ListSeeds(r.Context())
	if err != nil {
		respondServiceError(w, r, "List seeds", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: seeds})
}
