package kyccmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kyccmd "github.com/redacok/redacok-backend/internal/application/kyc/cmd"
	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/tests/builders"
	"github.com/redacok/redacok-backend/tests/mocks"
)

type reviewSuite struct {
	Approve  *kyccmd.ApproveHandler
	Reject   *kyccmd.RejectHandler
	Repo     *mocks.KycRepo
	UserRepo *mocks.UserRepo
}

func newReviewSuite(t *testing.T) *reviewSuite {
	t.Helper()

	repo := mocks.NewKycRepo()
	userRepo := mocks.NewUserRepo()

	return &reviewSuite{
		Approve: kyccmd.NewApproveHandler(kyccmd.ApproveHandlerArgs{
			Repo:     repo,
			UserRepo: userRepo,
		}),
		Reject: kyccmd.NewRejectHandler(kyccmd.RejectHandlerArgs{
			Repo: repo,
		}),
		Repo:     repo,
		UserRepo: userRepo,
	}
}

func TestApproveHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("upgrades applicant to PERSONAL", func(t *testing.T) {
		t.Parallel()

		s := newReviewSuite(t)
		applicant := builders.NewUserBuilder().WithCurrency("XAF").Build()
		s.UserRepo.SeedUser(t, applicant)
		req := builders.NewKycRequestBuilder().WithUserID(applicant.ID()).Build()
		s.Repo.SeedRequest(t, req)
		reviewer := user.NewID()

		err := s.Approve.Handle(t.Context(), &kyccmd.Approve{
			RequestID:  req.ID(),
			ReviewerID: reviewer,
		})
		require.NoError(t, err)

		stored, err := s.Repo.GetRequestByID(t.Context(), req.ID())
		require.NoError(t, err)
		assert.Equal(t, kyc.StatusApproved, stored.Status())
		assert.Equal(t, reviewer, stored.ReviewerID())

		updated, err := s.UserRepo.GetUserByID(t.Context(), applicant.ID())
		require.NoError(t, err)
		assert.Equal(t, role.Personal, updated.Role())
	})

	t.Run("business document upgrades to BUSINESS", func(t *testing.T) {
		t.Parallel()

		s := newReviewSuite(t)
		applicant := builders.NewUserBuilder().WithCurrency("XAF").Build()
		s.UserRepo.SeedUser(t, applicant)
		req := builders.NewKycRequestBuilder().
			WithUserID(applicant.ID()).
			WithDocumentType(kyc.DocumentBusinessReg).
			Build()
		s.Repo.SeedRequest(t, req)

		err := s.Approve.Handle(t.Context(), &kyccmd.Approve{
			RequestID:  req.ID(),
			ReviewerID: user.NewID(),
		})
		require.NoError(t, err)

		updated, err := s.UserRepo.GetUserByID(t.Context(), applicant.ID())
		require.NoError(t, err)
		assert.Equal(t, role.Business, updated.Role())
	})

	t.Run("already reviewed", func(t *testing.T) {
		t.Parallel()

		s := newReviewSuite(t)
		req := builders.NewKycRequestBuilder().
			Reviewed(user.NewID(), kyc.StatusApproved, "").
			Build()
		s.Repo.SeedRequest(t, req)

		err := s.Approve.Handle(t.Context(), &kyccmd.Approve{
			RequestID:  req.ID(),
			ReviewerID: user.NewID(),
		})
		require.ErrorIs(t, err, kyccmd.ErrAlreadyReviewed)
	})

	t.Run("unknown request", func(t *testing.T) {
		t.Parallel()

		s := newReviewSuite(t)
		err := s.Approve.Handle(t.Context(), &kyccmd.Approve{
			RequestID:  kyc.NewID(),
			ReviewerID: user.NewID(),
		})
		require.Error(t, err)
	})
}

func TestRejectHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("rejects with reason", func(t *testing.T) {
		t.Parallel()

		s := newReviewSuite(t)
		req := builders.NewKycRequestBuilder().Build()
		s.Repo.SeedRequest(t, req)

		err := s.Reject.Handle(t.Context(), &kyccmd.Reject{
			RequestID:  req.ID(),
			ReviewerID: user.NewID(),
			Reason:     "document expired",
		})
		require.NoError(t, err)

		stored, err := s.Repo.GetRequestByID(t.Context(), req.ID())
		require.NoError(t, err)
		assert.Equal(t, kyc.StatusRejected, stored.Status())
		assert.Equal(t, "document expired", stored.RejectionReason())
	})

	t.Run("already reviewed", func(t *testing.T) {
		t.Parallel()

		s := newReviewSuite(t)
		req := builders.NewKycRequestBuilder().
			Reviewed(user.NewID(), kyc.StatusRejected, "old reason").
			Build()
		s.Repo.SeedRequest(t, req)

		err := s.Reject.Handle(t.Context(), &kyccmd.Reject{
			RequestID:  req.ID(),
			ReviewerID: user.NewID(),
			Reason:     "new reason",
		})
		require.ErrorIs(t, err, kyccmd.ErrAlreadyReviewed)
	})
}
