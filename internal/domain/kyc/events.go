package kyc

import (
	"github.com/redacok/redacok-backend/internal/domain/event"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

const EventStreamName = "events_kyc"

type KycSubmitted struct {
	event.Header
	event.Otel
	RequestID    ID           `json:"request_id"`
	UserID       user.ID      `json:"user_id"`
	DocumentType DocumentType `json:"document_type"`
}

func (e KycSubmitted) GetStreamName() string {
	return EventStreamName
}

type KycApproved struct {
	event.Header
	event.Otel
	RequestID  ID        `json:"request_id"`
	UserID     user.ID   `json:"user_id"`
	ReviewerID user.ID   `json:"reviewer_id"`
	NewRole    role.Role `json:"new_role"`
}

func (e KycApproved) GetStreamName() string {
	return EventStreamName
}

type KycRejected struct {
	event.Header
	event.Otel
	RequestID  ID      `json:"request_id"`
	UserID     user.ID `json:"user_id"`
	ReviewerID user.ID `json:"reviewer_id"`
	Reason     string  `json:"reason"`
}

func (e KycRejected) GetStreamName() string {
	return EventStreamName
}
