package identityrepo

import (
	"context"
	"errors"
	"fmt"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormIdentityRepository struct {
	db *gorm.DB
}

func NewGormIdentityRepository(db *gorm.DB) *GormIdentityRepository {
	return &GormIdentityRepository{db: db}
}

// Add checks the email up front and relies on the unique index for races.
// The DB must be opened with TranslateError so index violations arrive as
// gorm.ErrDuplicatedKey.
func (r *GormIdentityRepository) Add(ctx context.Context, aggregate *identity.Identity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	var count int64
	if err := r.db.WithContext(ctx).Model(&IdentityDTO{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return duplicateEmail(dto.Email)
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateEmail(dto.Email)
		}
		return err
	}
	return nil
}

// Update writes the mutable profile columns. Role, email, rating and the
// completed transports counter are left alone.
func (r *GormIdentityRepository) Update(ctx context.Context, aggregate *identity.Identity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&IdentityDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"first_name":      dto.FirstName,
		"last_name":       dto.LastName,
		"phone":           dto.Phone,
		"password_digest": dto.PasswordDigest,
		"is_verified":     dto.IsVerified,
		"is_active":       dto.IsActive,
		"updated_at":      dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("identity", dto.ID)
	}
	return nil
}

func (r *GormIdentityRepository) Get(ctx context.Context, id kernel.UUID) (*identity.Identity, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto IdentityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("identity", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormIdentityRepository) FindByEmail(ctx context.Context, email kernel.Email) (*identity.Identity, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dto IdentityDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("identity", email.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementCompletedTransports is a single UPDATE with an expression, never a
// read-modify-write.
func (r *GormIdentityRepository) IncrementCompletedTransports(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&IdentityDTO{}).
		Where("id = ?", id.String()).
		UpdateColumn("completed_transports", gorm.Expr("completed_transports + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("identity", id.String())
	}
	return nil
}

func duplicateEmail(email string) error {
	return fmt.Errorf("email %s: %w", email, errs.ErrDuplicateIdentity)
}
