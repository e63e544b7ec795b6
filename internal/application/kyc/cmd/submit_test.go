package kyccmd_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kyccmd "github.com/redacok/redacok-backend/internal/application/kyc/cmd"
	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/tests/builders"
	"github.com/redacok/redacok-backend/tests/mocks"
)

type submitSuite struct {
	Handler *kyccmd.SubmitHandler
	Repo    *mocks.KycRepo
	Storage *mocks.FileStorage
}

func newSubmitSuite(t *testing.T) *submitSuite {
	t.Helper()

	repo := mocks.NewKycRepo()
	storage := mocks.NewFileStorage()

	return &submitSuite{
		Handler: kyccmd.NewSubmitHandler(kyccmd.SubmitHandlerArgs{
			Repo:    repo,
			Storage: storage,
		}),
		Repo:    repo,
		Storage: storage,
	}
}

func scan(content string) kyccmd.ScanFile {
	return kyccmd.ScanFile{
		File:        strings.NewReader(content),
		Size:        int64(len(content)),
		ContentType: "image/jpeg",
		Filename:    "front.jpg",
	}
}

func TestSubmitHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		s := newSubmitSuite(t)
		userID := user.NewID()

		req, err := s.Handler.Handle(t.Context(), &kyccmd.Submit{
			UserID:         userID,
			DocumentType:   kyc.DocumentNationalID,
			DocumentNumber: "CM-1234567",
			Scans:          []kyccmd.ScanFile{scan("front"), scan("back")},
		})
		require.NoError(t, err)
		require.NotNil(t, req)

		assert.Equal(t, kyc.StatusPending, req.Status())
		assert.Len(t, req.DocumentKeys(), 2)
		for _, key := range req.DocumentKeys() {
			s.Storage.AssertFileExists(t, key)
		}

		stored, err := s.Repo.GetPendingRequestByUserID(t.Context(), userID)
		require.NoError(t, err)
		assert.Equal(t, req.ID(), stored.ID())
	})

	t.Run("pending request already exists", func(t *testing.T) {
		t.Parallel()

		s := newSubmitSuite(t)
		userID := user.NewID()
		s.Repo.SeedRequest(t, builders.NewKycRequestBuilder().WithUserID(userID).Build())

		_, err := s.Handler.Handle(t.Context(), &kyccmd.Submit{
			UserID:         userID,
			DocumentType:   kyc.DocumentPassport,
			DocumentNumber: "P-7654321",
			Scans:          []kyccmd.ScanFile{scan("front")},
		})
		require.ErrorIs(t, err, kyccmd.ErrPendingExists)
		assert.Zero(t, s.Storage.FileCount(), "no scans should be uploaded")
	})

	t.Run("resubmission allowed after rejection", func(t *testing.T) {
		t.Parallel()

		s := newSubmitSuite(t)
		userID := user.NewID()
		s.Repo.SeedRequest(t, builders.NewKycRequestBuilder().
			WithUserID(userID).
			Reviewed(user.NewID(), kyc.StatusRejected, "blurry scan").
			Build())

		req, err := s.Handler.Handle(t.Context(), &kyccmd.Submit{
			UserID:         userID,
			DocumentType:   kyc.DocumentNationalID,
			DocumentNumber: "CM-1234567",
			Scans:          []kyccmd.ScanFile{scan("front")},
		})
		require.NoError(t, err)
		assert.Equal(t, kyc.StatusPending, req.Status())
	})

	t.Run("rejects unsupported content type", func(t *testing.T) {
		t.Parallel()

		s := newSubmitSuite(t)
		bad := scan("data")
		bad.ContentType = "image/gif"

		_, err := s.Handler.Handle(t.Context(), &kyccmd.Submit{
			UserID:         user.NewID(),
			DocumentType:   kyc.DocumentNationalID,
			DocumentNumber: "CM-1234567",
			Scans:          []kyccmd.ScanFile{bad},
		})
		require.Error(t, err)
		assert.Zero(t, s.Storage.FileCount())
	})

	t.Run("rejects oversized scan", func(t *testing.T) {
		t.Parallel()

		s := newSubmitSuite(t)
		big := scan("data")
		big.Size = kyccmd.MaxScanSize + 1

		_, err := s.Handler.Handle(t.Context(), &kyccmd.Submit{
			UserID:         user.NewID(),
			DocumentType:   kyc.DocumentNationalID,
			DocumentNumber: "CM-1234567",
			Scans:          []kyccmd.ScanFile{big},
		})
		require.Error(t, err)
	})

	t.Run("cleans up uploads when domain validation fails", func(t *testing.T) {
		t.Parallel()

		s := newSubmitSuite(t)
		_, err := s.Handler.Handle(t.Context(), &kyccmd.Submit{
			UserID:         user.NewID(),
			DocumentType:   kyc.DocumentNationalID,
			DocumentNumber: "x", // too short
			Scans:          []kyccmd.ScanFile{scan("front")},
		})
		require.Error(t, err)
		assert.Zero(t, s.Storage.FileCount(), "uploaded scans should be removed")
	})
}
