package transfer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeyard/farmledger/internal/domain"
)

func TestHTTPDispatcherPayout(t *testing.T) {
	var gotPath string
	var got domain.TransferIntent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(srv.URL, time.Second)
	intent := domain.TransferIntent{
		ID:            "intent-1",
		Kind:          domain.TransferRewardPayout,
		FarmID:        "seed#0",
		TokenContract: "seed",
		Recipient:     "bob",
		Amount:        domain.NewAmount(42),
	}
	require.NoError(t, d.Dispatch(context.Background(), intent))

	assert.Equal(t, TokenTransferPath, gotPath)
	assert.Equal(t, "intent-1", got.ID)
	assert.Equal(t, "bob", got.Recipient)
	require.NotNil(t, got.Amount)
	assert.Equal(t, "42", got.Amount.String())
}

func TestHTTPDispatcherCollateralRelease(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(srv.URL, time.Second)
	intent := domain.TransferIntent{
		ID:            "intent-2",
		Kind:          domain.TransferCollateralRelease,
		FarmID:        "seed#0",
		TokenContract: "nft.collateral",
		Recipient:     "bob",
		ItemID:        "item-1",
	}
	require.NoError(t, d.Dispatch(context.Background(), intent))
	assert.Equal(t, ItemTransferPath, gotPath)
}

func TestHTTPDispatcherBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(srv.URL, time.Second)
	err := d.Dispatch(context.Background(), domain.TransferIntent{
		ID:   "intent-3",
		Kind: domain.TransferRewardPayout,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPDispatcherUnknownKind(t *testing.T) {
	d := NewHTTPDispatcher("http://localhost:0", time.Second)
	err := d.Dispatch(context.Background(), domain.TransferIntent{ID: "intent-4", Kind: "teleport"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transfer kind")
}
