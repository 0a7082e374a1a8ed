package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/farming"
	"github.com/stakeyard/farmledger/internal/handler"
)

func postJSON(t *testing.T, h http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf []byte
	var err error
	if s, ok := body.(string); ok {
		buf = []byte(s)
	} else {
		buf, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestFarmHandler_DepositReward(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockFarmingService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success Starts Farm",
			requestBody: handler.DepositRewardRequest{
				FunderID: "alice",
				FarmID:   "seed.token#0",
				SeedID:   "seed.token",
				Amount:   "1000",
			},
			setupMock: func(m *MockFarmingService) {
				m.On("DepositReward", mock.Anything, "alice", "seed.token#0", "seed.token",
					mock.MatchedBy(func(a *domain.Amount) bool { return a.String() == "1000" })).
					Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Seed",
			requestBody: handler.DepositRewardRequest{
				FunderID: "alice",
				FarmID:   "seed.token#0",
				SeedID:   "other.token",
				Amount:   "1000",
			},
			setupMock: func(m *MockFarmingService) {
				m.On("DepositReward", mock.Anything, "alice", "seed.token#0", "other.token", mock.Anything).
					Return(false, domain.ErrSeedMismatch)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "does not match",
		},
		{
			name: "Farm Ended",
			requestBody: handler.DepositRewardRequest{
				FunderID: "alice",
				FarmID:   "seed.token#0",
				SeedID:   "seed.token",
				Amount:   "1000",
			},
			setupMock: func(m *MockFarmingService) {
				m.On("DepositReward", mock.Anything, "alice", "seed.token#0", "seed.token", mock.Anything).
					Return(false, domain.ErrFarmEnded)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "ended",
		},
		{
			name: "Validation Error (Bad Farm ID)",
			requestBody: handler.DepositRewardRequest{
				FunderID: "alice",
				FarmID:   "not-a-farm-id",
				SeedID:   "seed.token",
				Amount:   "1000",
			},
			setupMock:      func(m *MockFarmingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name: "Validation Error (Negative Amount)",
			requestBody: handler.DepositRewardRequest{
				FunderID: "alice",
				FarmID:   "seed.token#0",
				SeedID:   "seed.token",
				Amount:   "-5",
			},
			setupMock:      func(m *MockFarmingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockFarmingService{}
			tt.setupMock(mockSvc)

			h := handler.NewFarmHandler(mockSvc)
			w := postJSON(t, h.DepositReward, "/farm/deposit", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), strings.ToLower(tt.expectedError))
			}
			if tt.expectedStatus == http.StatusOK {
				var resp handler.DepositRewardResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Started)
				assert.Equal(t, "1000", resp.Amount)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestFarmHandler_Stake(t *testing.T) {
	handler.InitValidator()

	validReq := handler.StakeRequest{
		AccountID:  "bob",
		ContractID: "nft.collateral",
		FarmID:     "seed.token#0",
		ItemID:     "sword",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockFarmingService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "Success",
			requestBody: validReq,
			setupMock: func(m *MockFarmingService) {
				m.On("Stake", mock.Anything, "bob", "nft.collateral", "seed.token#0", "sword").
					Return(&farming.StakeResult{
						FarmID:         "seed.token#0",
						ItemID:         "sword",
						PositionAmount: 1,
						Settled:        domain.NewAmount(0),
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Not Item Owner",
			requestBody: validReq,
			setupMock: func(m *MockFarmingService) {
				m.On("Stake", mock.Anything, "bob", "nft.collateral", "seed.token#0", "sword").
					Return(nil, domain.ErrNotItemOwner)
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "do not own",
		},
		{
			name:        "Pool Nearly Exhausted",
			requestBody: validReq,
			setupMock: func(m *MockFarmingService) {
				m.On("Stake", mock.Anything, "bob", "nft.collateral", "seed.token#0", "sword").
					Return(nil, domain.ErrRewardExhausted)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "exhausted",
		},
		{
			name:        "Item Not Accepted",
			requestBody: validReq,
			setupMock: func(m *MockFarmingService) {
				m.On("Stake", mock.Anything, "bob", "nft.collateral", "seed.token#0", "sword").
					Return(nil, domain.ErrItemNotAccepted)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "not accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockFarmingService{}
			tt.setupMock(mockSvc)

			h := handler.NewFarmHandler(mockSvc)
			w := postJSON(t, h.Stake, "/farm/stake", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), strings.ToLower(tt.expectedError))
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestFarmHandler_Withdraw(t *testing.T) {
	handler.InitValidator()

	validReq := handler.WithdrawRequest{
		AccountID: "bob",
		FarmID:    "seed.token#0",
		ItemID:    "sword",
	}

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		mockSvc.On("Withdraw", mock.Anything, "bob", "seed.token#0", "sword").
			Return(&farming.WithdrawResult{
				FarmID:         "seed.token#0",
				ItemID:         "sword",
				PositionAmount: 0,
				Settled:        domain.NewAmount(15),
			}, nil)

		h := handler.NewFarmHandler(mockSvc)
		w := postJSON(t, h.Withdraw, "/farm/withdraw", validReq)

		require.Equal(t, http.StatusOK, w.Code)
		var result farming.WithdrawResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "15", result.Settled.String())
	})

	t.Run("Cooldown Not Elapsed", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		mockSvc.On("Withdraw", mock.Anything, "bob", "seed.token#0", "sword").
			Return(nil, domain.ErrNotYetEligible)

		h := handler.NewFarmHandler(mockSvc)
		w := postJSON(t, h.Withdraw, "/farm/withdraw", validReq)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, strings.ToLower(w.Body.String()), "cooldown")
	})

	t.Run("Item Not Staked", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		mockSvc.On("Withdraw", mock.Anything, "bob", "seed.token#0", "sword").
			Return(nil, domain.ErrItemNotStaked)

		h := handler.NewFarmHandler(mockSvc)
		w := postJSON(t, h.Withdraw, "/farm/withdraw", validReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFarmHandler_Claim(t *testing.T) {
	handler.InitValidator()

	validReq := handler.ClaimRequest{AccountID: "bob", FarmID: "seed.token#0"}

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		mockSvc.On("Claim", mock.Anything, "bob", "seed.token#0").
			Return(&farming.ClaimResult{
				FarmID:    "seed.token#0",
				Amount:    domain.NewAmount(30),
				FarmEnded: false,
			}, nil)

		h := handler.NewFarmHandler(mockSvc)
		w := postJSON(t, h.Claim, "/farm/claim", validReq)

		require.Equal(t, http.StatusOK, w.Code)
		var result farming.ClaimResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "30", result.Amount.String())
		assert.False(t, result.FarmEnded)
	})

	t.Run("No Position", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		mockSvc.On("Claim", mock.Anything, "bob", "seed.token#0").
			Return(nil, domain.ErrPositionNotFound)

		h := handler.NewFarmHandler(mockSvc)
		w := postJSON(t, h.Claim, "/farm/claim", validReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFarmHandler_GetClaimable(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		mockSvc.On("GetClaimableAmount", mock.Anything, "bob", "seed.token#0").
			Return(domain.NewAmount(42), nil)

		h := handler.NewFarmHandler(mockSvc)
		req := httptest.NewRequest(http.MethodGet, "/farm/claimable?account_id=bob&farm_id=seed.token%230", nil)
		w := httptest.NewRecorder()

		h.GetClaimable(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp handler.ClaimableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "42", resp.Claimable.String())
	})

	t.Run("Missing Account", func(t *testing.T) {
		mockSvc := &MockFarmingService{}
		h := handler.NewFarmHandler(mockSvc)
		req := httptest.NewRequest(http.MethodGet, "/farm/claimable?farm_id=seed.token%230", nil)
		w := httptest.NewRecorder()

		h.GetClaimable(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
