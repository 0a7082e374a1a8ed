package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/farming"
)

// MockFarmingService implements farming.Service for handler tests
type MockFarmingService struct {
	mock.Mock
}

func (m *MockFarmingService) CreateFarm(ctx context.Context, ownerID string, params farming.CreateFarmParams) (*domain.FarmInfo, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmInfo), args.Error(1)
}

func (m *MockFarmingService) DepositReward(ctx context.Context, funderID, farmID, seedID string, amount *domain.Amount) (bool, error) {
	args := m.Called(ctx, funderID, farmID, seedID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockFarmingService) Stake(ctx context.Context, accountID, contractID, farmID, itemID string) (*farming.StakeResult, error) {
	args := m.Called(ctx, accountID, contractID, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farming.StakeResult), args.Error(1)
}

func (m *MockFarmingService) Withdraw(ctx context.Context, accountID, farmID, itemID string) (*farming.WithdrawResult, error) {
	args := m.Called(ctx, accountID, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farming.WithdrawResult), args.Error(1)
}

func (m *MockFarmingService) Claim(ctx context.Context, accountID, farmID string) (*farming.ClaimResult, error) {
	args := m.Called(ctx, accountID, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farming.ClaimResult), args.Error(1)
}

func (m *MockFarmingService) GetFarm(ctx context.Context, farmID string) (*domain.FarmInfo, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmInfo), args.Error(1)
}

func (m *MockFarmingService) ListFarms(ctx context.Context, offset, limit int64) ([]*domain.FarmInfo, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FarmInfo), args.Error(1)
}

func (m *MockFarmingService) CountFarms(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFarmingService) GetFarmer(ctx context.Context, accountID string) (*domain.FarmerInfo, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmerInfo), args.Error(1)
}

func (m *MockFarmingService) GetClaimableAmount(ctx context.Context, accountID, farmID string) (*domain.Amount, error) {
	args := m.Called(ctx, accountID, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amount), args.Error(1)
}

func (m *MockFarmingService) GetSeed(ctx context.Context, seedID string) (*domain.Seed, error) {
	args := m.Called(ctx, seedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seed), args.Error(1)
}

func (m *MockFarmingService) ListSeeds(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFarmingService) WhitelistContract(ctx context.Context, contractID string) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}

func (m *MockFarmingService) IsContractWhitelisted(ctx context.Context, contractID string) (bool, error) {
	args := m.Called(ctx, contractID)
	return args.Bool(0), args.Error(1)
}
