package kyc

import (
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"github.com/redacok/redacok-backend/internal/domain/event"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(id), nil
}

func (id ID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ID(parsed)
	return nil
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DocumentType identifies the kind of identity document a request carries.
type DocumentType string

const (
	DocumentNationalID  DocumentType = "NATIONAL_ID"
	DocumentPassport    DocumentType = "PASSPORT"
	DocumentBusinessReg DocumentType = "BUSINESS_REGISTRATION"
)

func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentNationalID, DocumentPassport, DocumentBusinessReg:
		return true
	}
	return false
}

// TargetRole is the role an applicant is upgraded to when a request with this
// document type is approved.
func (d DocumentType) TargetRole() role.Role {
	if d == DocumentBusinessReg {
		return role.Business
	}
	return role.Personal
}

const (
	MinDocumentNumberLen = 4
	MaxDocumentNumberLen = 64
	MaxDocumentScans     = 4
)

// Request is the KYC review aggregate. Scans are stored in object storage and
// referenced here by key only.
type Request struct {
	event.Recorder
	id              ID
	userID          user.ID
	documentType    DocumentType
	documentNumber  string
	documentKeys    []string
	status          Status
	reviewerID      user.ID
	rejectionReason string
	createdAt       time.Time
	updatedAt       time.Time
}

type SubmitArgs struct {
	UserID         user.ID
	DocumentType   DocumentType
	DocumentNumber string
	DocumentKeys   []string
}

// Submit creates a PENDING request and records KycSubmitted. The application
// layer is responsible for rejecting a second submission while one is pending.
func Submit(args SubmitArgs) (*Request, error) {
	err := validation.Errors{
		"document_type":   validation.Validate(string(args.DocumentType), validation.Required),
		"document_number": validation.Validate(args.DocumentNumber, validation.Required, validation.RuneLength(MinDocumentNumberLen, MaxDocumentNumberLen)),
		"documents":       validation.Validate(args.DocumentKeys, validation.Required, validation.Length(1, MaxDocumentScans)),
	}.Filter()
	if err != nil {
		return nil, err
	}
	if !args.DocumentType.IsValid() {
		return nil, ErrInvalidDocumentType
	}
	if args.UserID.IsZero() {
		return nil, ErrMissingApplicant
	}

	now := time.Now().UTC()
	r := &Request{
		id:             NewID(),
		userID:         args.UserID,
		documentType:   args.DocumentType,
		documentNumber: args.DocumentNumber,
		documentKeys:   args.DocumentKeys,
		status:         StatusPending,
		createdAt:      now,
		updatedAt:      now,
	}

	r.AddEvent(&KycSubmitted{
		Header:       event.NewEventHeader(),
		RequestID:    r.id,
		UserID:       r.userID,
		DocumentType: r.documentType,
	})

	return r, nil
}

type RehydrateArgs struct {
	ID              ID
	UserID          user.ID
	DocumentType    DocumentType
	DocumentNumber  string
	DocumentKeys    []string
	Status          Status
	ReviewerID      user.ID
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Rehydrate(p RehydrateArgs) *Request {
	return &Request{
		id:              p.ID,
		userID:          p.UserID,
		documentType:    p.DocumentType,
		documentNumber:  p.DocumentNumber,
		documentKeys:    p.DocumentKeys,
		status:          p.Status,
		reviewerID:      p.ReviewerID,
		rejectionReason: p.RejectionReason,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

// Approve marks a pending request approved and records KycApproved carrying
// the role the applicant must be upgraded to.
func (r *Request) Approve(reviewer user.ID) error {
	if r.status != StatusPending {
		return ErrAlreadyReviewed
	}
	if reviewer.IsZero() {
		return ErrMissingReviewer
	}

	r.status = StatusApproved
	r.reviewerID = reviewer
	r.updatedAt = time.Now().UTC()

	r.AddEvent(&KycApproved{
		Header:     event.NewEventHeader(),
		RequestID:  r.id,
		UserID:     r.userID,
		ReviewerID: reviewer,
		NewRole:    r.documentType.TargetRole(),
	})

	return nil
}

// Reject marks a pending request rejected with a reason and records
// KycRejected.
func (r *Request) Reject(reviewer user.ID, reason string) error {
	if r.status != StatusPending {
		return ErrAlreadyReviewed
	}
	if reviewer.IsZero() {
		return ErrMissingReviewer
	}
	if err := validation.Validate(reason, validation.Required, validation.RuneLength(1, 500)); err != nil {
		return err
	}

	r.status = StatusRejected
	r.reviewerID = reviewer
	r.rejectionReason = reason
	r.updatedAt = time.Now().UTC()

	r.AddEvent(&KycRejected{
		Header:     event.NewEventHeader(),
		RequestID:  r.id,
		UserID:     r.userID,
		ReviewerID: reviewer,
		Reason:     reason,
	})

	return nil
}

func (r *Request) ID() ID {
	if r == nil {
		return ID{}
	}
	return r.id
}

func (r *Request) UserID() user.ID {
	if r == nil {
		return user.ID{}
	}
	return r.userID
}

func (r *Request) DocumentType() DocumentType {
	if r == nil {
		return ""
	}
	return r.documentType
}

func (r *Request) DocumentNumber() string {
	if r == nil {
		return ""
	}
	return r.documentNumber
}

func (r *Request) DocumentKeys() []string {
	if r == nil {
		return nil
	}
	return r.documentKeys
}

func (r *Request) Status() Status {
	if r == nil {
		return ""
	}
	return r.status
}

func (r *Request) ReviewerID() user.ID {
	if r == nil {
		return user.ID{}
	}
	return r.reviewerID
}

func (r *Request) RejectionReason() string {
	if r == nil {
		return ""
	}
	return r.rejectionReason
}

func (r *Request) CreatedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.createdAt
}

func (r *Request) UpdatedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.updatedAt
}
