package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for golang-migrate
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	redacok "github.com/redacok/redacok-backend"
	postgrespkg "github.com/redacok/redacok-backend/pkg/postgres"
	"github.com/redacok/redacok-backend/pkg/watermillx"
)

// TestSuite runs the persistence layer against a real Postgres container:
// migrations, repository SQL, and the watermill outbox schema.
type TestSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	app         *App
}

func (s *TestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("redacok_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pgPool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)

	s.T().Logf("Running migrations on database: %s", connStr)
	connStr = strings.Replace(connStr, "postgres://", "pgx://", 1)
	err = postgrespkg.Migrate(connStr, &redacok.Migrations)
	s.Require().NoError(err)

	wlogger := watermill.NewStdLogger(true, true)
	err = watermillx.InitializeEventSchema(ctx, s.pgPool, wlogger)
	s.Require().NoError(err)

	s.app = NewApp(s.pgPool)
}

func (s *TestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}

	if s.pgContainer != nil {
		err := s.pgContainer.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *TestSuite) AfterTest(suiteName, testName string) {
	_, err := s.pgPool.Exec(context.Background(),
		"TRUNCATE TABLE kyc_requests, fee_ranges, users RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
	s.T().Logf("Test data truncated after test: %s in suite: %s", testName, suiteName)
}

func (s *TestSuite) App() *App {
	return s.app
}

func AssertDataInDB[T any](s *TestSuite, query string, args []any, fn func(row pgx.Row) (T, error), assertFn func(data T)) {
	row := s.pgPool.QueryRow(context.Background(), query, args...)
	data, err := fn(row)
	s.Require().NoError(err)
	assertFn(data)
}

// AssertEvent reads the most recent outbox row of the event's type from its
// stream table and hands the decoded payload to fn.
func AssertEvent[T interface{ GetStreamName() string }](s *TestSuite, fn func(event T)) {
	var e T
	typeName := strings.TrimPrefix(fmt.Sprintf("%T", e), "*")

	query := fmt.Sprintf(
		`SELECT payload FROM %s WHERE metadata->>'name' = $1 ORDER BY "offset" DESC LIMIT 1`,
		"watermill_"+e.GetStreamName(),
	)

	row := s.pgPool.QueryRow(context.Background(), query, typeName)
	err := row.Scan(&e)
	s.Require().NoError(err, "failed to get event %s from outbox", typeName)
	fn(e)
}
