package queries

import (
	"context"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"

	"gorm.io/gorm"
)

type ListIdentitiesQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListIdentitiesQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListIdentitiesQueryHandler {
	return ListIdentitiesQueryHandler{db: db, policy: policy}
}

func (h ListIdentitiesQueryHandler) Handle(ctx context.Context, query ListIdentitiesQuery) ([]identity.Summary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Require(query.Actor(), services.ActionListIdentities, services.Resource{}); err != nil {
		return nil, err
	}

	return listIdentities(ctx, h.db, query.Role(), query.Active(), 0)
}

// listIdentities never selects the password digest.
func listIdentities(ctx context.Context, db *gorm.DB, role identity.Role, active *bool, limit int) ([]identity.Summary, error) {
	stmt := db.WithContext(ctx).
		Table("identities").
		Select(`id, first_name, last_name, email, role, phone, is_verified, is_active,
			rating_average, rating_count, completed_transports, created_at`)
	if role != "" {
		stmt = stmt.Where("role = ?", role.String())
	}
	if active != nil {
		stmt = stmt.Where("is_active = ?", *active)
	}
	stmt = stmt.Order("created_at DESC, id")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	rows, err := stmt.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	identities := make([]identity.Summary, 0)
	for rows.Next() {
		var summary identity.Summary
		var id, roleName string

		err = rows.Scan(
			&id,
			&summary.FirstName,
			&summary.LastName,
			&summary.Email,
			&roleName,
			&summary.Phone,
			&summary.IsVerified,
			&summary.IsActive,
			&summary.Rating.Average,
			&summary.Rating.Count,
			&summary.CompletedTransports,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		summary.Role = identity.Role(roleName)
		summary.CreatedAt = summary.CreatedAt.UTC()
		identities = append(identities, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return identities, nil
}
