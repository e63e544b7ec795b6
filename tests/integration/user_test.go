package integration

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/tests/fixtures"
)

type UserRepoSuite struct {
	TestSuite
}

func TestUserRepoSuite(t *testing.T) {
	suite.Run(t, new(UserRepoSuite))
}

func (s *UserRepoSuite) register(email, phone string) *user.User {
	u, err := user.Register(user.RegisterArgs{
		Name:     fixtures.TestUser.Name,
		Email:    email,
		Phone:    phone,
		Password: fixtures.TestUser.Password,
	})
	s.Require().NoError(err)
	return u
}

func (s *UserRepoSuite) TestSaveUserPublishesRegistrationEvent() {
	ctx := context.Background()
	u := s.register(fixtures.TestUser.Email, "")

	s.Require().NoError(s.App().UserRepo.SaveUser(ctx, u))

	AssertDataInDB(&s.TestSuite,
		`SELECT u.name, gr.name FROM users u JOIN global_roles gr ON gr.id = u.role_id WHERE u.id = $1`,
		[]any{u.ID().UUID()},
		func(row pgx.Row) (struct{ Name, Role string }, error) {
			var data struct{ Name, Role string }
			err := row.Scan(&data.Name, &data.Role)
			return data, err
		},
		func(data struct{ Name, Role string }) {
			s.Equal(u.Name(), data.Name)
			s.Equal(role.User.String(), data.Role)
		})

	AssertEvent(&s.TestSuite, func(e user.UserRegistered) {
		s.Equal(u.ID(), e.UserID)
		s.Equal(u.Email(), e.Email)
		s.Equal(role.User, e.Role)
	})
}

func (s *UserRepoSuite) TestSaveUserDuplicateEmail() {
	ctx := context.Background()
	s.Require().NoError(s.App().UserRepo.SaveUser(ctx, s.register(fixtures.TestUser.Email, "")))

	err := s.App().UserRepo.SaveUser(ctx, s.register(fixtures.TestUser.Email, ""))
	s.Require().Error(err)
	s.True(errorx.IsDuplicateEntry(err))
}

func (s *UserRepoSuite) TestUpdateUserPublishesCurrencySet() {
	ctx := context.Background()
	u := s.register(fixtures.TestUser.Email, "")
	s.Require().NoError(s.App().UserRepo.SaveUser(ctx, u))

	err := s.App().UserRepo.UpdateUser(ctx, u.ID(), func(ctx context.Context, u *user.User) error {
		return u.SetCurrency("XAF")
	})
	s.Require().NoError(err)

	got, err := s.App().UserRepo.GetUserByID(ctx, u.ID())
	s.Require().NoError(err)
	s.Equal("XAF", got.Currency())

	AssertEvent(&s.TestSuite, func(e user.CurrencySet) {
		s.Equal(u.ID(), e.UserID)
		s.Equal("XAF", e.Currency)
	})
}

func (s *UserRepoSuite) TestPhoneOnlyRoundTrip() {
	ctx := context.Background()
	u := s.register("", fixtures.TestUser.Phone)
	s.Require().NoError(s.App().UserRepo.SaveUser(ctx, u))

	got, err := s.App().UserRepo.GetUserByPhone(ctx, fixtures.TestUser.Phone)
	s.Require().NoError(err)
	s.Equal(u.ID(), got.ID())
	s.Empty(got.Email())
}

func (s *UserRepoSuite) TestGetUserByEmailNotFound() {
	_, err := s.App().UserRepo.GetUserByEmail(context.Background(), "nobody@example.com")
	s.Require().Error(err)
	s.True(errorx.IsNotFound(err))
}
