package user

import (
	"github.com/redacok/redacok-backend/internal/domain/event"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

const EventStreamName = "events_user"

type UserRegistered struct {
	event.Header
	event.Otel
	UserID ID        `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email,omitempty"`
	Phone  string    `json:"phone,omitempty"`
	Role   role.Role `json:"role"`
}

func (e UserRegistered) GetStreamName() string {
	return EventStreamName
}

type CurrencySet struct {
	event.Header
	event.Otel
	UserID   ID     `json:"user_id"`
	Currency string `json:"currency"`
}

func (e CurrencySet) GetStreamName() string {
	return EventStreamName
}

type RoleChanged struct {
	event.Header
	event.Otel
	UserID    ID        `json:"user_id"`
	OldRole   role.Role `json:"old_role"`
	NewRole   role.Role `json:"new_role"`
	ChangedBy ID        `json:"changed_by"`
}

func (e RoleChanged) GetStreamName() string {
	return EventStreamName
}
