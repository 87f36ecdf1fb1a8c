// Package identityrepo persists identities, the credential store, with GORM.
package identityrepo

import (
	"time"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// IdentityDTO is the identities table. Email carries the unique index that
// backs case-insensitive uniqueness; values are lowercased before they get here.
type IdentityDTO struct {
	ID                  string          `gorm:"type:varchar(36);primaryKey"`
	FirstName           string          `gorm:"size:100;not null"`
	LastName            string          `gorm:"size:100;not null"`
	Email               string          `gorm:"size:254;not null;uniqueIndex"`
	PasswordDigest      string          `gorm:"size:100;not null"`
	Role                string          `gorm:"size:16;not null;index"`
	Phone               string          `gorm:"size:32;not null"`
	IsVerified          bool            `gorm:"not null"`
	IsActive            bool            `gorm:"not null"`
	RatingAverage       decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	RatingCount         int             `gorm:"not null"`
	CompletedTransports int             `gorm:"not null"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (IdentityDTO) TableName() string {
	return "identities"
}

func fromDomain(i *identity.Identity) IdentityDTO {
	return IdentityDTO{
		ID:                  i.ID().String(),
		FirstName:           i.FirstName(),
		LastName:            i.LastName(),
		Email:               i.Email().String(),
		PasswordDigest:      string(i.Digest()),
		Role:                i.Role().String(),
		Phone:               i.Phone(),
		IsVerified:          i.IsVerified(),
		IsActive:            i.IsActive(),
		RatingAverage:       i.Rating().Average,
		RatingCount:         i.Rating().Count,
		CompletedTransports: i.CompletedTransports(),
		CreatedAt:           i.CreatedAt().UTC(),
		UpdatedAt:           i.UpdatedAt().UTC(),
	}
}

func toDomain(dto IdentityDTO) (*identity.Identity, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	return identity.Restore(identity.RestoreParams{
		ID:                  id,
		FirstName:           dto.FirstName,
		LastName:            dto.LastName,
		Email:               email,
		Digest:              identity.PasswordDigest(dto.PasswordDigest),
		Role:                identity.Role(dto.Role),
		Phone:               dto.Phone,
		Verified:            dto.IsVerified,
		Active:              dto.IsActive,
		Rating:              identity.Rating{Average: dto.RatingAverage, Count: dto.RatingCount},
		CompletedTransports: dto.CompletedTransports,
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
	})
}
