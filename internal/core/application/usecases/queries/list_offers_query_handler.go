package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/services"

	"gorm.io/gorm"
)

type ListOffersQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListOffersQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListOffersQueryHandler {
	return ListOffersQueryHandler{db: db, policy: policy}
}

func (h ListOffersQueryHandler) Handle(ctx context.Context, query ListOffersQuery) ([]ListOffersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Require(query.Actor(), services.ActionListOffers, services.Resource{}); err != nil {
		return nil, err
	}

	return listOffers(ctx, h.db, 0)
}

// listOffers reads offers newest first. limit <= 0 means all.
func listOffers(ctx context.Context, db *gorm.DB, limit int) ([]ListOffersQueryResponse, error) {
	stmt := `
		SELECT
			o.id,
			o.driver_id,
			COALESCE(i.first_name, ''),
			COALESCE(i.last_name, ''),
			COALESCE(i.email, ''),
			o.start_location,
			o.end_location,
			o.departure_at,
			o.max_weight_kg,
			o.available_space_m3,
			o.price_per_kg,
			o.cargo_types,
			o.status,
			o.created_at,
			(SELECT COUNT(*) FROM transport_requests r WHERE r.offer_id = o.id)
		FROM offers o
		LEFT JOIN identities i ON i.id = o.driver_id
		ORDER BY o.created_at DESC, o.id`
	var args []any
	if limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]ListOffersQueryResponse, 0)
	for rows.Next() {
		var item ListOffersQueryResponse
		var id, driverID, status string
		var cargoTypes sql.NullString

		err = rows.Scan(
			&id,
			&driverID,
			&item.Driver.FirstName,
			&item.Driver.LastName,
			&item.Driver.Email,
			&item.Route.From,
			&item.Route.To,
			&item.Route.DepartureAt,
			&item.Capacity.MaxWeightKg,
			&item.Capacity.AvailableSpaceM3,
			&item.Capacity.PricePerKg,
			&cargoTypes,
			&status,
			&item.CreatedAt,
			&item.RequestCount,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		if item.Driver.ID, err = kernel.UUIDFromString(driverID); err != nil {
			return nil, err
		}
		item.Capacity.CargoTypes = []string{}
		if cargoTypes.Valid && cargoTypes.String != "" {
			if err = json.Unmarshal([]byte(cargoTypes.String), &item.Capacity.CargoTypes); err != nil {
				return nil, fmt.Errorf("decode cargo types of offer %s: %w", id, err)
			}
		}
		item.Status = offer.Status(status)
		item.Route.DepartureAt = item.Route.DepartureAt.UTC()
		item.CreatedAt = item.CreatedAt.UTC()
		offers = append(offers, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
