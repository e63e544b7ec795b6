package builders

import (
	"time"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
)

type KycRequestBuilder struct {
	id              kyc.ID
	userID          user.ID
	documentType    kyc.DocumentType
	documentNumber  string
	documentKeys    []string
	status          kyc.Status
	reviewerID      user.ID
	rejectionReason string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewKycRequestBuilder() *KycRequestBuilder {
	now := time.Now()
	return &KycRequestBuilder{
		id:             kyc.NewID(),
		userID:         user.NewID(),
		documentType:   kyc.DocumentNationalID,
		documentNumber: "CM-1234567",
		documentKeys:   []string{"kyc/test/front.jpg"},
		status:         kyc.StatusPending,
		createdAt:      now,
		updatedAt:      now,
	}
}

func (b *KycRequestBuilder) WithID(id kyc.ID) *KycRequestBuilder {
	b.id = id
	return b
}

func (b *KycRequestBuilder) WithUserID(id user.ID) *KycRequestBuilder {
	b.userID = id
	return b
}

func (b *KycRequestBuilder) WithDocumentType(dt kyc.DocumentType) *KycRequestBuilder {
	b.documentType = dt
	return b
}

func (b *KycRequestBuilder) WithStatus(s kyc.Status) *KycRequestBuilder {
	b.status = s
	return b
}

func (b *KycRequestBuilder) Reviewed(reviewer user.ID, status kyc.Status, reason string) *KycRequestBuilder {
	b.reviewerID = reviewer
	b.status = status
	b.rejectionReason = reason
	return b
}

func (b *KycRequestBuilder) Build() *kyc.Request {
	return kyc.Rehydrate(kyc.RehydrateArgs{
		ID:              b.id,
		UserID:          b.userID,
		DocumentType:    b.documentType,
		DocumentNumber:  b.documentNumber,
		DocumentKeys:    b.documentKeys,
		Status:          b.status,
		ReviewerID:      b.reviewerID,
		RejectionReason: b.rejectionReason,
		CreatedAt:       b.createdAt,
		UpdatedAt:       b.updatedAt,
	})
}
