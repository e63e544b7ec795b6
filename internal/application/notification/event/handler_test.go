package notifevent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	notifevent "github.com/redacok/redacok-backend/internal/application/notification/event"
	"github.com/redacok/redacok-backend/internal/domain/event"
	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/tests/builders"
	"github.com/redacok/redacok-backend/tests/fixtures"
	"github.com/redacok/redacok-backend/tests/mocks"
)

type handlerSuite struct {
	Handler    *notifevent.Handler
	MailSender *mocks.MailSender
	SMSSender  *mocks.SMSSender
	UserRepo   *mocks.UserRepo
}

func newHandlerSuite(t *testing.T) *handlerSuite {
	t.Helper()

	mailSender := mocks.NewMailSender()
	smsSender := mocks.NewSMSSender()
	userRepo := mocks.NewUserRepo()

	return &handlerSuite{
		Handler: notifevent.NewHandler(notifevent.HandlerArgs{
			MailSender: mailSender,
			SMSSender:  smsSender,
			UserGetter: userRepo,
		}),
		MailSender: mailSender,
		SMSSender:  smsSender,
		UserRepo:   userRepo,
	}
}

func TestHandleUserRegistered(t *testing.T) {
	t.Parallel()

	t.Run("email account gets welcome email", func(t *testing.T) {
		t.Parallel()

		s := newHandlerSuite(t)
		err := s.Handler.HandleUserRegistered(t.Context(), &user.UserRegistered{
			Header: event.NewEventHeader(),
			UserID: user.NewID(),
			Name:   fixtures.TestUser.Name,
			Email:  fixtures.TestUser.Email,
			Role:   role.User,
		})
		require.NoError(t, err)

		s.MailSender.AssertMailSent(t, fixtures.TestUser.Email, "Welcome")
		s.SMSSender.AssertNoSMSSent(t)
	})

	t.Run("phone account gets welcome sms", func(t *testing.T) {
		t.Parallel()

		s := newHandlerSuite(t)
		err := s.Handler.HandleUserRegistered(t.Context(), &user.UserRegistered{
			Header: event.NewEventHeader(),
			UserID: user.NewID(),
			Name:   fixtures.TestUser.Name,
			Phone:  fixtures.TestUser.Phone,
			Role:   role.User,
		})
		require.NoError(t, err)

		s.SMSSender.AssertSMSSent(t, fixtures.TestUser.Phone, "Welcome")
		s.MailSender.AssertNoMailSent(t)
	})

	t.Run("nil event is a no-op", func(t *testing.T) {
		t.Parallel()

		s := newHandlerSuite(t)
		require.NoError(t, s.Handler.HandleUserRegistered(t.Context(), nil))
		s.MailSender.AssertNoMailSent(t)
	})
}

func TestHandleKycApproved(t *testing.T) {
	t.Parallel()

	t.Run("notifies on every channel the applicant has", func(t *testing.T) {
		t.Parallel()

		s := newHandlerSuite(t)
		applicant := builders.NewUserBuilder().
			WithPhone(fixtures.TestUser.Phone).
			Build()
		s.UserRepo.SeedUser(t, applicant)

		err := s.Handler.HandleKycApproved(t.Context(), &kyc.KycApproved{
			Header:    event.NewEventHeader(),
			RequestID: kyc.NewID(),
			UserID:    applicant.ID(),
			NewRole:   role.Personal,
		})
		require.NoError(t, err)

		s.MailSender.AssertMailSent(t, applicant.Email(), "approved")
		s.SMSSender.AssertSMSSent(t, applicant.Phone(), "approved")
	})

	t.Run("unknown applicant fails", func(t *testing.T) {
		t.Parallel()

		s := newHandlerSuite(t)
		err := s.Handler.HandleKycApproved(t.Context(), &kyc.KycApproved{
			Header:    event.NewEventHeader(),
			RequestID: kyc.NewID(),
			UserID:    user.NewID(),
			NewRole:   role.Personal,
		})
		require.Error(t, err)
	})
}

func TestHandleKycRejected(t *testing.T) {
	t.Parallel()

	s := newHandlerSuite(t)
	applicant := builders.NewUserBuilder().Build()
	s.UserRepo.SeedUser(t, applicant)

	err := s.Handler.HandleKycRejected(t.Context(), &kyc.KycRejected{
		Header:    event.NewEventHeader(),
		RequestID: kyc.NewID(),
		UserID:    applicant.ID(),
		Reason:    "document expired",
	})
	require.NoError(t, err)

	s.MailSender.AssertMailSent(t, applicant.Email(), "rejected")
}
