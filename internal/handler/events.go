package handler

import (
	"net/http"
	"strconv"

	"github.com/stakeyard/farmledger/internal/eventlog"
)

// EventsHandler serves the persisted ledger event log
type EventsHandler struct {
	repo eventlog.Repository
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(repo eventlog.Repository) *EventsHandler {
	return &EventsHandler{repo: repo}
}

// GetEvents handles the event log query endpoint
// @Summary Query ledger events
// @Description Retrieve persisted ledger events, optionally filtered by farm, account or event type
// @Tags admin
// @Produce json
// @Param farm_id query string false "Filter by farm id"
// @Param account_id query string false "Filter by account id"
// @Param type query string false "Filter by event type"
// @Param limit query int false "Maximum events to return" default(100)
// @Success 200 {object} DataResponse
// @Router /admin/events [get]
func (h *EventsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limitStr := GetOptionalQueryParam(r, "limit", strconv.Itoa(DefaultEventLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
		return
	}
	if limit > MaxEventLimit {
		limit = MaxEventLimit
	}

	filter := eventlog.EventFilter{Limit: limit}
	if farmID := r.URL.Query().Get("farm_id"); farmID != "" {
		filter.FarmID = &farmID
	}
	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		filter.AccountID = &accountID
	}
	if eventType := r.URL.Query().Get("type"); eventType != "" {
		filter.EventType = &eventType
	}

	events, err := h.repo.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "Get events", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: events})
}
