package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/logger"
)

// HTTPDispatcher forwards intents to the asset-transfer backend over HTTP.
type HTTPDispatcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDispatcher creates a dispatcher targeting the backend at baseURL.
func NewHTTPDispatcher(baseURL string, timeout time.Duration) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPDispatcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Dispatch posts the intent to the endpoint for its kind. Token payouts and
// collateral releases travel on separate routes so the backend can apply
// different authorization to each.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, intent domain.TransferIntent) error {
	log := logger.FromContext(ctx)

	path, ok := pathForKind(intent.Kind)
	if !ok {
		return fmt.Errorf("unknown transfer kind %q", intent.Kind)
	}

	body, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encode intent %s: %w", intent.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request for intent %s: %w", intent.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		log.Error("transfer dispatch failed", "intentID", intent.ID, "kind", intent.Kind, "error", err)
		return fmt.Errorf("dispatch intent %s: %w", intent.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("dispatch intent %s: backend returned status %d", intent.ID, resp.StatusCode)
	}

	log.Info("transfer dispatched", "intentID", intent.ID, "kind", intent.Kind, "recipient", intent.Recipient)
	return nil
}

func pathForKind(kind domain.TransferKind) (string, bool) {
	switch kind {
	case domain.TransferRewardPayout:
		return TokenTransferPath, true
	case domain.TransferCollateralRelease:
		return ItemTransferPath, true
	default:
		return "", false
	}
}
