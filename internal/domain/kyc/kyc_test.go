package kyc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

func validSubmitArgs() SubmitArgs {
	return SubmitArgs{
		UserID:         user.NewID(),
		DocumentType:   DocumentNationalID,
		DocumentNumber: "CM-1234567",
		DocumentKeys:   []string{"kyc/abc/front.jpg", "kyc/abc/back.jpg"},
	}
}

func pendingRequest(t *testing.T) *Request {
	t.Helper()
	r, err := Submit(validSubmitArgs())
	require.NoError(t, err)
	r.MarkEventsAsCommitted()
	return r
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		args := validSubmitArgs()
		r, err := Submit(args)
		require.NoError(t, err)

		assert.False(t, r.ID().IsZero())
		assert.Equal(t, args.UserID, r.UserID())
		assert.Equal(t, StatusPending, r.Status())
		assert.Equal(t, args.DocumentKeys, r.DocumentKeys())
		assert.True(t, r.ReviewerID().IsZero())

		events := r.GetUncommittedEvents()
		require.Len(t, events, 1)
		submitted, ok := events[0].(*KycSubmitted)
		require.True(t, ok, "expected *KycSubmitted, got %T", events[0])
		assert.Equal(t, r.ID(), submitted.RequestID)
		assert.Equal(t, args.UserID, submitted.UserID)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			mutate func(*SubmitArgs)
		}{
			{"unknown document type", func(a *SubmitArgs) { a.DocumentType = "DRIVERS_LICENSE" }},
			{"empty document number", func(a *SubmitArgs) { a.DocumentNumber = "" }},
			{"document number too short", func(a *SubmitArgs) { a.DocumentNumber = "123" }},
			{"no scans", func(a *SubmitArgs) { a.DocumentKeys = nil }},
			{"too many scans", func(a *SubmitArgs) {
				a.DocumentKeys = []string{"a", "b", "c", "d", "e"}
			}},
			{"zero applicant", func(a *SubmitArgs) { a.UserID = user.ID{} }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				args := validSubmitArgs()
				tt.mutate(&args)
				_, err := Submit(args)
				assert.Error(t, err)
			})
		}
	})
}

func TestDocumentType_TargetRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, role.Personal, DocumentNationalID.TargetRole())
	assert.Equal(t, role.Personal, DocumentPassport.TargetRole())
	assert.Equal(t, role.Business, DocumentBusinessReg.TargetRole())
}

func TestRequest_Approve(t *testing.T) {
	t.Parallel()

	t.Run("pending request", func(t *testing.T) {
		t.Parallel()

		r := pendingRequest(t)
		reviewer := user.NewID()

		require.NoError(t, r.Approve(reviewer))
		assert.Equal(t, StatusApproved, r.Status())
		assert.Equal(t, reviewer, r.ReviewerID())

		events := r.GetUncommittedEvents()
		require.Len(t, events, 1)
		approved, ok := events[0].(*KycApproved)
		require.True(t, ok)
		assert.Equal(t, r.UserID(), approved.UserID)
		assert.Equal(t, role.Personal, approved.NewRole)
	})

	t.Run("business document upgrades to BUSINESS", func(t *testing.T) {
		t.Parallel()

		args := validSubmitArgs()
		args.DocumentType = DocumentBusinessReg
		r, err := Submit(args)
		require.NoError(t, err)
		r.MarkEventsAsCommitted()

		require.NoError(t, r.Approve(user.NewID()))
		approved := r.GetUncommittedEvents()[0].(*KycApproved)
		assert.Equal(t, role.Business, approved.NewRole)
	})

	t.Run("already reviewed", func(t *testing.T) {
		t.Parallel()

		r := pendingRequest(t)
		require.NoError(t, r.Approve(user.NewID()))
		r.MarkEventsAsCommitted()

		require.ErrorIs(t, r.Approve(user.NewID()), ErrAlreadyReviewed)
		require.ErrorIs(t, r.Reject(user.NewID(), "late"), ErrAlreadyReviewed)
		assert.Empty(t, r.GetUncommittedEvents())
	})

	t.Run("zero reviewer", func(t *testing.T) {
		t.Parallel()

		r := pendingRequest(t)
		require.ErrorIs(t, r.Approve(user.ID{}), ErrMissingReviewer)
		assert.Equal(t, StatusPending, r.Status())
	})
}

func TestRequest_Reject(t *testing.T) {
	t.Parallel()

	t.Run("pending request", func(t *testing.T) {
		t.Parallel()

		r := pendingRequest(t)
		reviewer := user.NewID()

		require.NoError(t, r.Reject(reviewer, "document unreadable"))
		assert.Equal(t, StatusRejected, r.Status())
		assert.Equal(t, "document unreadable", r.RejectionReason())

		events := r.GetUncommittedEvents()
		require.Len(t, events, 1)
		rejected, ok := events[0].(*KycRejected)
		require.True(t, ok)
		assert.Equal(t, "document unreadable", rejected.Reason)
	})

	t.Run("reason required", func(t *testing.T) {
		t.Parallel()

		r := pendingRequest(t)
		require.Error(t, r.Reject(user.NewID(), ""))
		assert.Equal(t, StatusPending, r.Status())
		assert.Empty(t, r.GetUncommittedEvents())
	})
}
