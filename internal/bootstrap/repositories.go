package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stakeyard/farmledger/internal/database/postgres"
	"github.com/stakeyard/farmledger/internal/eventlog"
	"github.com/stakeyard/farmledger/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Farming  repository.Farming
	EventLog eventlog.Repository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Farming:  postgres.NewFarmingRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
