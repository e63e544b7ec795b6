package builders

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/tests/fixtures"
)

// TestPasswordCost keeps bcrypt cheap in tests.
const TestPasswordCost = 4

type UserBuilder struct {
	id        user.ID
	name      string
	email     string
	phone     string
	role      role.Role
	currency  string
	passHash  []byte
	createdAt time.Time
	updatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	hash, _ := bcrypt.GenerateFromPassword([]byte(fixtures.TestUser.Password), TestPasswordCost)
	now := time.Now()

	return &UserBuilder{
		id:        user.NewID(),
		name:      fixtures.TestUser.Name,
		email:     fixtures.TestUser.Email,
		role:      role.User,
		passHash:  hash,
		createdAt: now,
		updatedAt: now,
	}
}

func (b *UserBuilder) WithID(id user.ID) *UserBuilder {
	b.id = id
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.phone = phone
	return b
}

// PhoneOnly drops the email so the account authenticates by phone.
func (b *UserBuilder) PhoneOnly(phone string) *UserBuilder {
	b.email = ""
	b.phone = phone
	return b
}

func (b *UserBuilder) WithRole(r role.Role) *UserBuilder {
	b.role = r
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.role = role.Admin
	return b
}

func (b *UserBuilder) WithCurrency(currency string) *UserBuilder {
	b.currency = currency
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), TestPasswordCost)
	if err != nil {
		panic("failed to generate password hash: " + err.Error())
	}
	b.passHash = hash
	return b
}

func (b *UserBuilder) Build() *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:        b.id,
		Name:      b.name,
		Email:     b.email,
		Phone:     b.phone,
		Role:      b.role,
		Currency:  b.currency,
		PassHash:  b.passHash,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	})
}
