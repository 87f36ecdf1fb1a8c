package requestrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormRequestRepository struct {
	db *gorm.DB
}

func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transport request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update is a compare-and-swap on status. Only the lifecycle columns change;
// cargo and locations are fixed at creation.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.TransportRequest, expected request.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":     dto.Status,
			"ratable":    dto.Ratable,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		if lockConflict(result.Error) {
			return fmt.Errorf("transport request %s is being changed concurrently: %w", dto.ID, errs.ErrInvalidTransition)
		}
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("transport request", dto.ID)
	}
	return fmt.Errorf("transport request %s is no longer %s: %w", dto.ID, expected, errs.ErrInvalidTransition)
}

// sqliteBusy is the primary result code SQLite returns when another
// connection holds the write lock or committed past this snapshot.
const sqliteBusy = 5

// lockConflict reports whether err means a concurrent transaction won the
// write. SQLite surfaces that as SQLITE_BUSY rather than a zero-row update.
func lockConflict(err error) bool {
	var coded interface{ Code() int }
	if errors.As(err, &coded) && coded.Code()&0xff == sqliteBusy {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
