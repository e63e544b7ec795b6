package integration

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redacok/redacok-backend/internal/adapters/repos/postgres"
)

// App holds the real repositories under test, wired to the container pool.
type App struct {
	UserRepo     *postgres.UserRepo
	KycRepo      *postgres.KycRepo
	FeeRangeRepo *postgres.FeeRangeRepo
}

func NewApp(pool *pgxpool.Pool) *App {
	return &App{
		UserRepo:     postgres.NewUserRepo(pool, nil, nil),
		KycRepo:      postgres.NewKycRepo(pool, nil, nil),
		FeeRangeRepo: postgres.NewFeeRangeRepo(pool, nil, nil),
	}
}
