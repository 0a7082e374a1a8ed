package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/logger"
)

// OwnershipVerifier confirms that an account controls the given collateral
// items on a contract. Verification runs before any ledger mutation; a
// failure leaves the ledger untouched.
type OwnershipVerifier interface {
	VerifyOwnership(ctx context.Context, accountID, contractID string, itemIDs []string) error
}

// ownershipRequest is the payload sent to the verification endpoint.
type ownershipRequest struct {
	AccountID  string   `json:"account_id"`
	ContractID string   `json:"contract_id"`
	ItemIDs    []string `json:"item_ids"`
}

// ownershipResponse is the payload returned by the verification endpoint.
type ownershipResponse struct {
	Owned  bool   `json:"owned"`
	Reason string `json:"reason,omitempty"`
}

// HTTPVerifier checks ownership against a remote registry endpoint.
type HTTPVerifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPVerifier creates a verifier backed by the registry at baseURL.
func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// VerifyOwnership posts the ownership question to the registry. Any transport
// failure or malformed answer counts as a verification failure.
func (v *HTTPVerifier) VerifyOwnership(ctx context.Context, accountID, contractID string, itemIDs []string) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(ownershipRequest{
		AccountID:  accountID,
		ContractID: contractID,
		ItemIDs:    itemIDs,
	})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrVerificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+VerifyPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrVerificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Error("ownership verification request failed", "error", err, "contractID", contractID)
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: registry returned status %d", domain.ErrVerificationFailed, resp.StatusCode)
	}

	var answer ownershipResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&answer); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrVerificationFailed, err)
	}
	if !answer.Owned {
		if answer.Reason != "" {
			return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, answer.Reason)
		}
		return domain.ErrVerificationFailed
	}

	return nil
}

// StaticVerifier approves every ownership question. Used in development mode
// when no registry is configured.
type StaticVerifier struct{}

// VerifyOwnership always succeeds.
func (StaticVerifier) VerifyOwnership(ctx context.Context, accountID, contractID string, itemIDs []string) error {
	return nil
}
