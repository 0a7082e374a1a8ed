package verify

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

func TestHTTPVerifierOwned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, VerifyPath, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req ownershipRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.AccountID)
		assert.Equal(t, "nft.collateral", req.ContractID)
		assert.Equal(t, []string{"item-1", "item-2"}, req.ItemIDs)

		json.NewEncoder(w).Encode(ownershipResponse{Owned: true})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, time.Second)
	err := v.VerifyOwnership(context.Background(), "alice", "nft.collateral", []string{"item-1", "item-2"})
	assert.NoError(t, err)
}

func TestHTTPVerifierNotOwned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ownershipResponse{Owned: false, Reason: "item belongs to someone else"})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, time.Second)
	err := v.VerifyOwnership(context.Background(), "alice", "nft.collateral", []string{"item-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.Contains(t, err.Error(), "someone else")
}

func TestHTTPVerifierBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, time.Second)
	err := v.VerifyOwnership(context.Background(), "alice", "nft.collateral", []string{"item-1"})
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestHTTPVerifierMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, time.Second)
	err := v.VerifyOwnership(context.Background(), "alice", "nft.collateral", []string{"item-1"})
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestHTTPVerifierTransportDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := NewHTTPVerifier(srv.URL, time.Second)
	err := v.VerifyOwnership(context.Background(), "alice", "nft.collateral", []string{"item-1"})
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestStaticVerifier(t *testing.T) {
	err := StaticVerifier{}.VerifyOwnership(context.Background(), "anyone", "any.contract", nil)
	assert.NoError(t, err)
}
