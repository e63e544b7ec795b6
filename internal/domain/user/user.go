package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/redacok/redacok-backend/internal/domain/event"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/pkg/validationx"
)

const PasswordCostFactor = 12 // default is 10, kept higher deliberately

// DefaultCurrency is assigned when settings are first materialized for a
// profile that never picked one.
const DefaultCurrency = "XAF"

const (
	MaxNameLen = 150
	MinNameLen = 2
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID(uuid.Nil), fmt.Errorf("failed to parse user id: %w", err)
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

// User is the account aggregate. A user signs in with either an email or a
// phone number; currency is empty until onboarding completes.
type User struct {
	event.Recorder
	id            ID
	name          string
	email         string
	phone         string
	role          role.Role
	currency      string
	passHash      []byte
	emailVerified bool
	phoneVerified bool
	createdAt     time.Time
	updatedAt     time.Time
}

type RegisterArgs struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates a new USER-role account from a registration request and
// records the UserRegistered event.
func Register(args RegisterArgs) (*User, error) {
	err := validation.Errors{
		"name":     validation.Validate(args.Name, validationx.NameRules...),
		"password": validation.Validate(args.Password, validationx.PasswordRules...),
	}.Filter()
	if err != nil {
		return nil, err
	}
	if args.Email == "" && args.Phone == "" {
		return nil, ErrNoContact
	}
	if args.Email != "" {
		if err := validation.Validate(args.Email, validationx.EmailRules...); err != nil {
			return nil, err
		}
	}
	if args.Phone != "" {
		if err := validation.Validate(args.Phone, validationx.PhoneRules...); err != nil {
			return nil, err
		}
	}

	passhash, err := NewPasswordHash(args.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &User{
		id:        NewID(),
		name:      args.Name,
		email:     args.Email,
		phone:     args.Phone,
		role:      role.User,
		passHash:  passhash,
		createdAt: now,
		updatedAt: now,
	}

	e := &UserRegistered{
		Header: event.NewEventHeader(),
		UserID: u.id,
		Name:   u.name,
		Email:  u.email,
		Phone:  u.phone,
		Role:   u.role,
	}
	u.AddEvent(e)

	return u, nil
}

type CreateInitialAdminArgs struct {
	Name     string
	Email    string
	Password string
}

// CreateInitialAdmin builds the bootstrap ADMIN account. It records no events
// so seeding does not trigger notifications.
func CreateInitialAdmin(args CreateInitialAdminArgs) (*User, error) {
	err := validation.Errors{
		"name":     validation.Validate(args.Name, validationx.NameRules...),
		"email":    validation.Validate(args.Email, validationx.EmailRules...),
		"password": validation.Validate(args.Password, validationx.PasswordRules...),
	}.Filter()
	if err != nil {
		return nil, err
	}

	passhash, err := NewPasswordHash(args.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:            NewID(),
		name:          args.Name,
		email:         args.Email,
		role:          role.Admin,
		passHash:      passhash,
		emailVerified: true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type RehydrateArgs struct {
	ID            ID
	Name          string
	Email         string
	Phone         string
	Role          role.Role
	Currency      string
	PassHash      []byte
	EmailVerified bool
	PhoneVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Rehydrate(p RehydrateArgs) *User {
	return &User{
		id:            p.ID,
		name:          p.Name,
		email:         p.Email,
		phone:         p.Phone,
		role:          p.Role,
		currency:      p.Currency,
		passHash:      p.PassHash,
		emailVerified: p.EmailVerified,
		phoneVerified: p.PhoneVerified,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

func (u *User) SetName(name string) error {
	if u == nil {
		return errors.New("user is nil")
	}
	err := validation.Validate(name, validation.Required, validation.Length(MinNameLen, MaxNameLen))
	if err != nil {
		return err
	}

	u.name = name
	u.updatedAt = time.Now().UTC()
	return nil
}

// SetCurrency completes (or changes) the currency setting and records the
// CurrencySet event. The code must already be sanitized to upper case.
func (u *User) SetCurrency(code string) error {
	if u == nil {
		return errors.New("user is nil")
	}
	err := validation.Validate(code, validationx.CurrencyRules...)
	if err != nil {
		return err
	}

	if u.currency == code {
		return nil
	}

	u.currency = code
	u.updatedAt = time.Now().UTC()
	u.AddEvent(&CurrencySet{
		Header:   event.NewEventHeader(),
		UserID:   u.id,
		Currency: code,
	})
	return nil
}

// ChangeRole upgrades or downgrades the account and records RoleChanged.
// Changing to the current role is a no-op.
func (u *User) ChangeRole(newRole role.Role, changedBy ID) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if !role.IsValid(newRole) {
		return ErrInvalidRole
	}
	if u.role == newRole {
		return nil
	}

	old := u.role
	u.role = newRole
	u.updatedAt = time.Now().UTC()
	u.AddEvent(&RoleChanged{
		Header:    event.NewEventHeader(),
		UserID:    u.id,
		OldRole:   old,
		NewRole:   newRole,
		ChangedBy: changedBy,
	})
	return nil
}

func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(u.passHash, []byte(password))
}

// HasCompleteProfile reports whether onboarding finished: a profile without a
// currency is still in the wizard.
func (u *User) HasCompleteProfile() bool {
	return u != nil && u.currency != ""
}

func (u *User) ID() ID {
	if u == nil {
		return ID(uuid.Nil)
	}

	return u.id
}

func (u *User) Name() string {
	if u == nil {
		return ""
	}

	return u.name
}

func (u *User) Email() string {
	if u == nil {
		return ""
	}

	return u.email
}

func (u *User) Phone() string {
	if u == nil {
		return ""
	}

	return u.phone
}

func (u *User) Role() role.Role {
	if u == nil {
		return ""
	}

	return u.role
}

func (u *User) Currency() string {
	if u == nil {
		return ""
	}

	return u.currency
}

func (u *User) PassHash() []byte {
	if u == nil {
		return nil
	}

	return u.passHash
}

func (u *User) EmailVerified() bool {
	return u != nil && u.emailVerified
}

func (u *User) PhoneVerified() bool {
	return u != nil && u.phoneVerified
}

func (u *User) CreatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}

	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}

	return u.updatedAt
}

func NewPasswordHash(password string) ([]byte, error) {
	passhash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCostFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password hash from password: %w", err)
	}
	return passhash, nil
}
