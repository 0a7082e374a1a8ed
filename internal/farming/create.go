package farming

import (
	"context"
	"fmt"
	"strings"

	"github.com/stakeyard/farmledger/internal/domain"
	"github.com/stakeyard/farmledger/internal/event"
	"github.com/stakeyard/farmledger/internal/logger"
	"github.com/stakeyard/farmledger/internal/repository"
)

// CreateFarm mints a new farm under params.SeedID.
//
// The flow is two-phase: every check that can reject the request, including
// the external ownership verification, runs before the transaction opens.
// The seed's farm counter only advances when the transaction commits, so a
// rejected or aborted creation never burns an index and committed ids stay
// gapless per seed.
func (s *service) CreateFarm(ctx context.Context, ownerID string, params CreateFarmParams) (*domain.FarmInfo, error) {
	log := logger.FromContext(ctx)
	log.Info("CreateFarm called", "ownerID", ownerID, "seedID", params.SeedID, "contractID", params.CollateralContractID)

	if err := validateCreateParams(ownerID, params); err != nil {
		return nil, err
	}

	whitelisted, err := s.repo.IsContractWhitelisted(ctx, params.CollateralContractID)
	if err != nil {
		return nil, fmt.Errorf("failed to check collateral whitelist: %w", err)
	}
	if !whitelisted {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotAccepted, params.CollateralContractID)
	}

	if err := s.verifier.VerifyOwnership(ctx, ownerID, params.CollateralContractID, params.AcceptedItems); err != nil {
		log.Info("farm creation rejected by ownership verification", "ownerID", ownerID, "error", err)
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	index, err := tx.AllocateFarmIndex(ctx, params.SeedID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate farm index: %w", err)
	}

	farmID := domain.MakeFarmID(params.SeedID, index)
	farm := domain.NewFarm(farmID, ownerID, domain.Terms{
		SeedID:           params.SeedID,
		StartAt:          params.StartAt,
		RewardPerSession: params.RewardPerSession.Clone(),
		SessionInterval:  params.SessionInterval,
	}, params.CollateralContractID, params.AcceptedItems)

	if err := tx.InsertFarm(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to insert farm: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("farm created", "farmID", farmID, "ownerID", ownerID)
	s.publish(ctx, event.NewFarmCreatedEvent(farmID, ownerID, params.SeedID, params.CollateralContractID, len(params.AcceptedItems)))

	return farm.Info(), nil
}

func validateCreateParams(ownerID string, params CreateFarmParams) error {
	if ownerID == "" {
		return fmt.Errorf("%w: missing owner", domain.ErrInvalidInput)
	}
	if params.SeedID == "" {
		return fmt.Errorf("%w: missing seed id", domain.ErrInvalidTerms)
	}
	// "#" is the farm id separator and cannot appear in a seed id.
	if strings.Contains(params.SeedID, "#") {
		return fmt.Errorf("%w: seed id %q contains '#'", domain.ErrInvalidTerms, params.SeedID)
	}
	if params.RewardPerSession == nil || params.RewardPerSession.IsZero() {
		return fmt.Errorf("%w: reward per session must be positive", domain.ErrInvalidTerms)
	}
	if params.SessionInterval <= 0 {
		return fmt.Errorf("%w: session interval must be positive", domain.ErrInvalidTerms)
	}
	if params.CollateralContractID == "" {
		return fmt.Errorf("%w: missing collateral contract", domain.ErrInvalidTerms)
	}
	if len(params.AcceptedItems) == 0 {
		return fmt.Errorf("%w: no accepted collateral items", domain.ErrInvalidTerms)
	}
	return nil
}
