package farming

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/repository"
)

// memRepo is a stateful in-memory repository.Farming used by workflow tests.
// Transactions stage their writes and apply them on Commit, so an aborted
// transaction leaves the ledgers and seed counters untouched.
type memRepo struct {
	mu        sync.Mutex
	farms     map[string]*domain.Farm
	farmOrder []string
	positions map[string]*domain.StakingPosition // key: accountID + "|" + farmID
	seeds     map[string]*domain.Seed
	seedOrder []string
	whitelist map[string]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		farms:     make(map[string]*domain.Farm),
		positions: make(map[string]*domain.StakingPosition),
		seeds:     make(map[string]*domain.Seed),
		whitelist: make(map[string]bool),
	}
}

func posKey(accountID, farmID string) string {
	return accountID + "|" + farmID
}

// cloneFarm rebuilds an independent farm via the exported mutators so the
// staged copy shares no state with the stored one.
func cloneFarm(f *domain.Farm) *domain.Farm {
	accepted := make([]string, 0, len(f.AcceptedItems))
	for item := range f.AcceptedItems {
		accepted = append(accepted, item)
	}
	terms := f.Terms
	terms.RewardPerSession = f.Terms.RewardPerSession.Clone()
	c := domain.NewFarm(f.ID, f.OwnerID, terms, f.CollateralContractID, accepted)
	c.Status = f.Status
	c.AmountOfReward = f.AmountOfReward.Clone()
	c.AmountOfClaimed = f.AmountOfClaimed.Clone()
	for _, id := range f.StakedItemIDs() {
		item := f.StakedItems[id]
		c.StakeItem(id, item.OwnerID, item.StakedAt)
	}
	return c
}

func clonePosition(p *domain.StakingPosition) *domain.StakingPosition {
	cp := *p
	return &cp
}

func (r *memRepo) GetFarm(ctx context.Context, farmID string) (*domain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	farm, ok := r.farms[farmID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFarmNotFound, farmID)
	}
	return cloneFarm(farm), nil
}

func (r *memRepo) ListFarms(ctx context.Context, offset, limit int64) ([]*domain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Farm
	for i := offset; i < int64(len(r.farmOrder)) && int64(len(out)) < limit; i++ {
		out = append(out, cloneFarm(r.farms[r.farmOrder[i]]))
	}
	return out, nil
}

func (r *memRepo) CountFarms(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.farmOrder)), nil
}

func (r *memRepo) GetFarmer(ctx context.Context, accountID string) (*domain.Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	farmer := domain.NewFarmer(accountID)
	for key, pos := range r.positions {
		if key == posKey(accountID, pos.FarmID) {
			farmer.Staking[pos.FarmID] = clonePosition(pos)
		}
	}
	if len(farmer.Staking) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrFarmerNotFound, accountID)
	}
	return farmer, nil
}

func (r *memRepo) GetPosition(ctx context.Context, accountID, farmID string) (*domain.StakingPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.positions[posKey(accountID, farmID)]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", domain.ErrPositionNotFound, accountID, farmID)
	}
	return clonePosition(pos), nil
}

func (r *memRepo) GetSeed(ctx context.Context, seedID string) (*domain.Seed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seed, ok := r.seeds[seedID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeedNotFound, seedID)
	}
	cp := *seed
	return &cp, nil
}

func (r *memRepo) ListSeeds(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seedOrder...), nil
}

func (r *memRepo) IsContractWhitelisted(ctx context.Context, contractID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.whitelist[contractID], nil
}

func (r *memRepo) WhitelistContract(ctx context.Context, contractID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.whitelist[contractID] = true
	return nil
}

func (r *memRepo) BeginTx(ctx context.Context) (repository.FarmingTx, error) {
	return &memTx{
		repo:        r,
		stagedFarms: make(map[string]*domain.Farm),
		stagedPos:   make(map[string]*domain.StakingPosition),
		allocations: make(map[string]uint32),
	}, nil
}

// memTx stages writes until Commit.
type memTx struct {
	repo        *memRepo
	stagedFarms map[string]*domain.Farm
	newFarms    []string
	stagedPos   map[string]*domain.StakingPosition
	allocations map[string]uint32 // indices handed out per seed in this tx
	closed      bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	for seedID, count := range t.allocations {
		seed, ok := t.repo.seeds[seedID]
		if !ok {
			seed = domain.NewSeed(seedID)
			t.repo.seeds[seedID] = seed
			t.repo.seedOrder = append(t.repo.seedOrder, seedID)
		}
		seed.NextIndex += count
	}
	for id, farm := range t.stagedFarms {
		t.repo.farms[id] = farm
	}
	t.repo.farmOrder = append(t.repo.farmOrder, t.newFarms...)
	for key, pos := range t.stagedPos {
		t.repo.positions[key] = pos
	}
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	return nil
}

func (t *memTx) GetFarmForUpdate(ctx context.Context, farmID string) (*domain.Farm, error) {
	return t.repo.GetFarm(ctx, farmID)
}

func (t *memTx) UpdateFarm(ctx context.Context, farm *domain.Farm) error {
	t.stagedFarms[farm.ID] = cloneFarm(farm)
	return nil
}

func (t *memTx) InsertFarm(ctx context.Context, farm *domain.Farm) error {
	t.stagedFarms[farm.ID] = cloneFarm(farm)
	t.newFarms = append(t.newFarms, farm.ID)
	return nil
}

func (t *memTx) GetPositionForUpdate(ctx context.Context, accountID, farmID string) (*domain.StakingPosition, error) {
	return t.repo.GetPosition(ctx, accountID, farmID)
}

func (t *memTx) UpsertPosition(ctx context.Context, accountID string, pos *domain.StakingPosition) error {
	t.stagedPos[posKey(accountID, pos.FarmID)] = clonePosition(pos)
	return nil
}

func (t *memTx) InsertStakedItem(ctx context.Context, farmID, itemID string, item domain.StakedItem) error {
	// Staked items ride along in the staged farm written by UpdateFarm.
	return nil
}

func (t *memTx) DeleteStakedItem(ctx context.Context, farmID, itemID string) error {
	return nil
}

func (t *memTx) AllocateFarmIndex(ctx context.Context, seedID string) (uint32, error) {
	t.repo.mu.Lock()
	var base uint32
	if seed, ok := t.repo.seeds[seedID]; ok {
		base = seed.NextIndex
	}
	t.repo.mu.Unlock()

	index := base + t.allocations[seedID]
	t.allocations[seedID]++
	return index, nil
}
