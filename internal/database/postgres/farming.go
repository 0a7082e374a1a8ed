package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/repository"
)

// FarmingRepository implements the farming ledger repository for PostgreSQL.
//
// Reward amounts are stored as NUMERIC(40, 0) and scanned through text so
// they round-trip losslessly into domain.Amount.
type FarmingRepository struct {
	db *pgxpool.Pool
}

// NewFarmingRepository creates a new FarmingRepository
func NewFarmingRepository(db *pgxpool.Pool) *FarmingRepository {
	return &FarmingRepository{db: db}
}

// GetFarm loads a farm with its accepted set and staked items
func (r *FarmingRepository) GetFarm(ctx context.Context, farmID string) (*domain.Farm, error) {
	return loadFarm(ctx, r.db, farmID, false)
}

// ListFarms pages through farms in creation order
func (r *FarmingRepository) ListFarms(ctx context.Context, offset, limit int64) ([]*domain.Farm, error) {
	rows, err := r.db.Query(ctx,
		`SELECT farm_id FROM farms ORDER BY created_at, farm_id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	ids, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan farm ids: %w", err)
	}

	farms := make([]*domain.Farm, 0, len(ids))
	for _, id := range ids {
		farm, err := loadFarm(ctx, r.db, id, false)
		if err != nil {
			return nil, err
		}
		farms = append(farms, farm)
	}
	return farms, nil
}

// CountFarms returns the total number of farms
func (r *FarmingRepository) CountFarms(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM farms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count farms: %w", err)
	}
	return count, nil
}

// GetFarmer loads an account's staking positions across farms
func (r *FarmingRepository) GetFarmer(ctx context.Context, accountID string) (*domain.Farmer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT farm_id, amount, last_staked_at
		 FROM staking_positions WHERE account_id = $1 ORDER BY farm_id`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farmer: %w", err)
	}
	defer rows.Close()

	farmer := domain.NewFarmer(accountID)
	for rows.Next() {
		pos := &domain.StakingPosition{}
		if err := rows.Scan(&pos.FarmID, &pos.Amount, &pos.LastStakedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		farmer.Staking[pos.FarmID] = pos
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	if len(farmer.Staking) == 0 {
		return nil, domain.ErrFarmerNotFound
	}
	return farmer, nil
}

// GetPosition loads one account's position in one farm
func (r *FarmingRepository) GetPosition(ctx context.Context, accountID, farmID string) (*domain.StakingPosition, error) {
	return getPosition(ctx, r.db, accountID, farmID, false)
}

// GetSeed returns the counter record for a seed
func (r *FarmingRepository) GetSeed(ctx context.Context, seedID string) (*domain.Seed, error) {
	seed := &domain.Seed{}
	err := r.db.QueryRow(ctx,
		`SELECT seed_id, next_index FROM seeds WHERE seed_id = $1`, seedID).
		Scan(&seed.SeedID, &seed.NextIndex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSeedNotFound
		}
		return nil, fmt.Errorf("failed to get seed: %w", err)
	}
	return seed, nil
}

// ListSeeds returns all known seed ids in creation order
func (r *FarmingRepository) ListSeeds(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT seed_id FROM seeds ORDER BY created_at, seed_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list seeds: %w", err)
	}
	ids, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan seed ids: %w", err)
	}
	return ids, nil
}

// IsContractWhitelisted reports whether a collateral contract may back farms
func (r *FarmingRepository) IsContractWhitelisted(ctx context.Context, contractID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM collateral_whitelist WHERE contract_id = $1)`,
		contractID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check whitelist: %w", err)
	}
	return exists, nil
}

// WhitelistContract adds a collateral contract to the whitelist
func (r *FarmingRepository) WhitelistContract(ctx context.Context, contractID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO collateral_whitelist (contract_id) VALUES ($1) ON CONFLICT DO NOTHING`,
		contractID)
	if err != nil {
		return fmt.Errorf("failed to whitelist contract: %w", err)
	}
	return nil
}

// BeginTx starts a ledger transaction
func (r *FarmingRepository) BeginTx(ctx context.Context) (repository.FarmingTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &farmingTx{tx: tx}, nil
}

// farmingTx implements repository.FarmingTx over a pgx transaction.
type farmingTx struct {
	tx pgx.Tx
}

func (t *farmingTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *farmingTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetFarmForUpdate loads a farm holding a row lock until commit.
// Only the farms row is locked; accepted and staked item rows follow it.
func (t *farmingTx) GetFarmForUpdate(ctx context.Context, farmID string) (*domain.Farm, error) {
	return loadFarm(ctx, t.tx, farmID, true)
}

// UpdateFarm persists a farm's mutable fields
func (t *farmingTx) UpdateFarm(ctx context.Context, farm *domain.Farm) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE farms
		 SET status = $2,
		     start_at = $3,
		     amount_of_reward = $4::numeric,
		     amount_of_claimed = $5::numeric,
		     updated_at = NOW()
		 WHERE farm_id = $1`,
		farm.ID,
		string(farm.Status),
		nullableTime(farm.Terms.StartAt),
		farm.AmountOfReward.String(),
		farm.AmountOfClaimed.String())
	if err != nil {
		return fmt.Errorf("failed to update farm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}

// InsertFarm persists a newly created farm with its accepted item set
func (t *farmingTx) InsertFarm(ctx context.Context, farm *domain.Farm) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO farms (
		     farm_id, owner_id, seed_id, status, start_at,
		     reward_per_session, session_interval_seconds,
		     collateral_contract_id, amount_of_reward, amount_of_claimed
		 ) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9::numeric, $10::numeric)`,
		farm.ID,
		farm.OwnerID,
		farm.Terms.SeedID,
		string(farm.Status),
		nullableTime(farm.Terms.StartAt),
		farm.Terms.RewardPerSession.String(),
		int64(farm.Terms.SessionInterval/time.Second),
		farm.CollateralContractID,
		farm.AmountOfReward.String(),
		farm.AmountOfClaimed.String())
	if err != nil {
		return fmt.Errorf("failed to insert farm: %w", err)
	}

	for item := range farm.AcceptedItems {
		_, err := t.tx.Exec(ctx,
			`INSERT INTO farm_accepted_items (farm_id, item_id) VALUES ($1, $2)`,
			farm.ID, item)
		if err != nil {
			return fmt.Errorf("failed to insert accepted item: %w", err)
		}
	}
	return nil
}

// GetPositionForUpdate loads a staking position with a row lock
func (t *farmingTx) GetPositionForUpdate(ctx context.Context, accountID, farmID string) (*domain.StakingPosition, error) {
	return getPosition(ctx, t.tx, accountID, farmID, true)
}

// UpsertPosition creates or updates an account's position in a farm
func (t *farmingTx) UpsertPosition(ctx context.Context, accountID string, pos *domain.StakingPosition) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO staking_positions (account_id, farm_id, amount, last_staked_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (account_id, farm_id)
		 DO UPDATE SET amount = EXCLUDED.amount, last_staked_at = EXCLUDED.last_staked_at`,
		accountID, pos.FarmID, pos.Amount, pos.LastStakedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}
	return nil
}

// InsertStakedItem records a collateral item as staked in a farm
func (t *farmingTx) InsertStakedItem(ctx context.Context, farmID, itemID string, item domain.StakedItem) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO staked_items (farm_id, item_id, owner_id, staked_at)
		 VALUES ($1, $2, $3, $4)`,
		farmID, itemID, item.OwnerID, item.StakedAt)
	if err != nil {
		return fmt.Errorf("failed to insert staked item: %w", err)
	}
	return nil
}

// DeleteStakedItem removes a staked item record
func (t *farmingTx) DeleteStakedItem(ctx context.Context, farmID, itemID string) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM staked_items WHERE farm_id = $1 AND item_id = $2`,
		farmID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete staked item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotStaked
	}
	return nil
}

// AllocateFarmIndex returns the seed's next farm index and advances the
// counter, creating the seed lazily. The counter row stays locked until
// commit, so concurrent creations under one seed serialize here.
func (t *farmingTx) AllocateFarmIndex(ctx context.Context, seedID string) (uint32, error) {
	var next int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO seeds (seed_id, next_index) VALUES ($1, 1)
		 ON CONFLICT (seed_id)
		 DO UPDATE SET next_index = seeds.next_index + 1
		 RETURNING next_index - 1`,
		seedID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate farm index: %w", err)
	}
	return uint32(next), nil
}

// loadFarm assembles a full farm aggregate from its three tables.
func loadFarm(ctx context.Context, q queryer, farmID string, forUpdate bool) (*domain.Farm, error) {
	query := `SELECT farm_id, owner_id, seed_id, status, start_at,
	                 reward_per_session::text, session_interval_seconds,
	                 collateral_contract_id, amount_of_reward::text, amount_of_claimed::text
	          FROM farms WHERE farm_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		id, ownerID, seedID, status, contractID string
		startAt                                 *time.Time
		rewardStr, poolStr, claimedStr          string
		intervalSeconds                         int64
	)
	err := q.QueryRow(ctx, query, farmID).Scan(
		&id, &ownerID, &seedID, &status, &startAt,
		&rewardStr, &intervalSeconds, &contractID, &poolStr, &claimedStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFarmNotFound
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}

	reward, err := domain.ParseAmount(rewardStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reward per session: %w", err)
	}
	pool, err := domain.ParseAmount(poolStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reward pool: %w", err)
	}
	claimed, err := domain.ParseAmount(claimedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse claimed amount: %w", err)
	}

	terms := domain.Terms{
		SeedID:           seedID,
		RewardPerSession: reward,
		SessionInterval:  time.Duration(intervalSeconds) * time.Second,
	}
	if startAt != nil {
		terms.StartAt = startAt.UTC()
	}

	accepted, err := loadAcceptedItems(ctx, q, farmID)
	if err != nil {
		return nil, err
	}

	farm := domain.NewFarm(id, ownerID, terms, contractID, accepted)
	farm.Status = domain.Status(status)
	farm.AmountOfReward = pool
	farm.AmountOfClaimed = claimed

	if err := loadStakedItems(ctx, q, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

func loadAcceptedItems(ctx context.Context, q queryer, farmID string) ([]string, error) {
	rows, err := q.Query(ctx,
		`SELECT item_id FROM farm_accepted_items WHERE farm_id = $1 ORDER BY item_id`,
		farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accepted items: %w", err)
	}
	items, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accepted items: %w", err)
	}
	return items, nil
}

// loadStakedItems replays staked rows in staking order so the aggregate's
// projection order matches insertion order.
func loadStakedItems(ctx context.Context, q queryer, farm *domain.Farm) error {
	rows, err := q.Query(ctx,
		`SELECT item_id, owner_id, staked_at
		 FROM staked_items WHERE farm_id = $1 ORDER BY staked_at, item_id`,
		farm.ID)
	if err != nil {
		return fmt.Errorf("failed to get staked items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID, ownerID string
			stakedAt        time.Time
		)
		if err := rows.Scan(&itemID, &ownerID, &stakedAt); err != nil {
			return fmt.Errorf("failed to scan staked item: %w", err)
		}
		farm.StakeItem(itemID, ownerID, stakedAt.UTC())
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read staked items: %w", err)
	}
	return nil
}

func getPosition(ctx context.Context, q queryer, accountID, farmID string, forUpdate bool) (*domain.StakingPosition, error) {
	query := `SELECT farm_id, amount, last_staked_at
	          FROM staking_positions WHERE account_id = $1 AND farm_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	pos := &domain.StakingPosition{}
	err := q.QueryRow(ctx, query, accountID, farmID).
		Scan(&pos.FarmID, &pos.Amount, &pos.LastStakedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	pos.LastStakedAt = pos.LastStakedAt.UTC()
	return pos, nil
}
