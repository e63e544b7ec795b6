package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

type UserDTO struct {
	ID            uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	RoleID        int
	Currency      *string
	Passhash      []byte
	EmailVerified bool
	PhoneVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type GlobalRoleDTO struct {
	ID   int
	Name string
}

func DomainToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:            u.ID().UUID(),
		Name:          u.Name(),
		Email:         nullable(u.Email()),
		Phone:         nullable(u.Phone()),
		Currency:      nullable(u.Currency()),
		Passhash:      u.PassHash(),
		EmailVerified: u.EmailVerified(),
		PhoneVerified: u.PhoneVerified(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

func UserToDomain(dto UserDTO, roleDTO GlobalRoleDTO) *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:            user.ID(dto.ID),
		Name:          dto.Name,
		Email:         deref(dto.Email),
		Phone:         deref(dto.Phone),
		Role:          role.Role(roleDTO.Name),
		Currency:      deref(dto.Currency),
		PassHash:      dto.Passhash,
		EmailVerified: dto.EmailVerified,
		PhoneVerified: dto.PhoneVerified,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}

type KycRequestDTO struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	DocumentType    string
	DocumentNumber  string
	DocumentKeys    []string
	Status          string
	ReviewerID      *uuid.UUID
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func DomainToKycRequestDTO(r *kyc.Request) KycRequestDTO {
	dto := KycRequestDTO{
		ID:              r.ID().UUID(),
		UserID:          r.UserID().UUID(),
		DocumentType:    string(r.DocumentType()),
		DocumentNumber:  r.DocumentNumber(),
		DocumentKeys:    r.DocumentKeys(),
		Status:          string(r.Status()),
		RejectionReason: nullable(r.RejectionReason()),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
	if !r.ReviewerID().IsZero() {
		id := r.ReviewerID().UUID()
		dto.ReviewerID = &id
	}
	return dto
}

func KycRequestToDomain(dto KycRequestDTO) *kyc.Request {
	var reviewerID user.ID
	if dto.ReviewerID != nil {
		reviewerID = user.ID(*dto.ReviewerID)
	}
	return kyc.Rehydrate(kyc.RehydrateArgs{
		ID:              kyc.ID(dto.ID),
		UserID:          user.ID(dto.UserID),
		DocumentType:    kyc.DocumentType(dto.DocumentType),
		DocumentNumber:  dto.DocumentNumber,
		DocumentKeys:    dto.DocumentKeys,
		Status:          kyc.Status(dto.Status),
		ReviewerID:      reviewerID,
		RejectionReason: deref(dto.RejectionReason),
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

type FeeRangeDTO struct {
	ID            uuid.UUID
	MinAmount     float64
	MaxAmount     float64
	FeePercentage float64
	FixedFee      float64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func DomainToFeeRangeDTO(r *fee.Range) FeeRangeDTO {
	return FeeRangeDTO{
		ID:            r.ID().UUID(),
		MinAmount:     r.MinAmount(),
		MaxAmount:     r.MaxAmount(),
		FeePercentage: r.FeePercentage(),
		FixedFee:      r.FixedFee(),
		IsActive:      r.IsActive(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

func FeeRangeToDomain(dto FeeRangeDTO) *fee.Range {
	return fee.Rehydrate(fee.RehydrateArgs{
		ID:            fee.ID(dto.ID),
		MinAmount:     dto.MinAmount,
		MaxAmount:     dto.MaxAmount,
		FeePercentage: dto.FeePercentage,
		FixedFee:      dto.FixedFee,
		IsActive:      dto.IsActive,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
