package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/tests/fixtures"
)

type KycRepoSuite struct {
	TestSuite
}

func TestKycRepoSuite(t *testing.T) {
	suite.Run(t, new(KycRepoSuite))
}

func (s *KycRepoSuite) saveUser(name, email string) *user.User {
	u, err := user.Register(user.RegisterArgs{
		Name:     name,
		Email:    email,
		Password: fixtures.TestUser.Password,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.App().UserRepo.SaveUser(context.Background(), u))
	return u
}

func (s *KycRepoSuite) submit(applicant *user.User) *kyc.Request {
	req, err := kyc.Submit(kyc.SubmitArgs{
		UserID:         applicant.ID(),
		DocumentType:   kyc.DocumentNationalID,
		DocumentNumber: "CM-1234567",
		DocumentKeys:   []string{"kyc/" + applicant.ID().String() + "/front.jpg"},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.App().KycRepo.SaveRequest(context.Background(), req))
	return req
}

func (s *KycRepoSuite) TestSaveRequestPublishesSubmittedEvent() {
	applicant := s.saveUser(fixtures.TestUser.Name, fixtures.TestUser.Email)
	req := s.submit(applicant)

	got, err := s.App().KycRepo.GetPendingRequestByUserID(context.Background(), applicant.ID())
	s.Require().NoError(err)
	s.Equal(req.ID(), got.ID())
	s.Equal(kyc.StatusPending, got.Status())

	AssertEvent(&s.TestSuite, func(e kyc.KycSubmitted) {
		s.Equal(req.ID(), e.RequestID)
		s.Equal(applicant.ID(), e.UserID)
		s.Equal(kyc.DocumentNationalID, e.DocumentType)
	})
}

func (s *KycRepoSuite) TestApprovePublishesApprovedEvent() {
	applicant := s.saveUser(fixtures.TestUser.Name, fixtures.TestUser.Email)
	reviewer := s.saveUser(fixtures.TestAdmin.Name, fixtures.TestAdmin.Email)
	req := s.submit(applicant)

	err := s.App().KycRepo.UpdateRequest(context.Background(), req.ID(),
		func(ctx context.Context, r *kyc.Request) error {
			return r.Approve(reviewer.ID())
		})
	s.Require().NoError(err)

	got, err := s.App().KycRepo.GetRequestByID(context.Background(), req.ID())
	s.Require().NoError(err)
	s.Equal(kyc.StatusApproved, got.Status())

	AssertEvent(&s.TestSuite, func(e kyc.KycApproved) {
		s.Equal(req.ID(), e.RequestID)
		s.Equal(applicant.ID(), e.UserID)
		s.Equal(reviewer.ID(), e.ReviewerID)
		s.Equal(role.Personal, e.NewRole)
	})

	_, err = s.App().KycRepo.GetPendingRequestByUserID(context.Background(), applicant.ID())
	s.True(errorx.IsNotFound(err), "approved request must leave the pending set")
}
