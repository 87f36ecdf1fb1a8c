package queries

import (
	"context"
	"math"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"

	"gorm.io/gorm"
)

type GetStatisticsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewGetStatisticsQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{db: db, policy: policy}
}

// Handle reads every figure inside one read-only snapshot so the counts agree.
func (h GetStatisticsQueryHandler) Handle(ctx context.Context, query GetStatisticsQuery) (GetStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatisticsQueryResponse{}, err
	}
	if err := h.policy.Require(query.Actor(), services.ActionViewStatistics, services.Resource{}); err != nil {
		return GetStatisticsQueryResponse{}, err
	}

	var stats GetStatisticsQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if stats.Identities, err = identityStatistics(tx); err != nil {
			return err
		}
		if stats.Offers, err = offerStatistics(tx); err != nil {
			return err
		}
		if stats.Requests, err = requestStatistics(tx); err != nil {
			return err
		}
		if stats.RecentIdentities, err = listIdentities(ctx, tx, "", nil, RecentActivityLimit); err != nil {
			return err
		}
		stats.RecentOffers, err = listOffers(ctx, tx, RecentActivityLimit)
		return err
	})
	if err != nil {
		return GetStatisticsQueryResponse{}, err
	}

	return stats, nil
}

func identityStatistics(db *gorm.DB) (IdentityStatistics, error) {
	rows, err := db.Raw(`
		SELECT role, is_active, COUNT(*)
		FROM identities
		GROUP BY role, is_active
	`).Rows()
	if err != nil {
		return IdentityStatistics{}, err
	}
	defer rows.Close()

	var stats IdentityStatistics
	for rows.Next() {
		var role string
		var active bool
		var count int
		if err = rows.Scan(&role, &active, &count); err != nil {
			return IdentityStatistics{}, err
		}

		stats.Total += count
		if active {
			stats.Active += count
		}
		switch identity.Role(role) {
		case identity.RoleDriver:
			stats.Drivers += count
		case identity.RoleSender:
			stats.Senders += count
		case identity.RoleAdmin:
			stats.Admins += count
		}
	}

	return stats, rows.Err()
}

func offerStatistics(db *gorm.DB) (OfferStatistics, error) {
	counts, err := countByStatus(db, "offers")
	if err != nil {
		return OfferStatistics{}, err
	}

	var stats OfferStatistics
	for status, count := range counts {
		stats.Total += count
		if offer.Status(status) == offer.StatusActive {
			stats.Active += count
		}
	}
	return stats, nil
}

func requestStatistics(db *gorm.DB) (RequestStatistics, error) {
	counts, err := countByStatus(db, "transport_requests")
	if err != nil {
		return RequestStatistics{}, err
	}

	stats := RequestStatistics{ByStatus: make(map[request.Status]int, len(request.AllStatuses()))}
	for _, status := range request.AllStatuses() {
		stats.ByStatus[status] = counts[status.String()]
	}

	accepted := 0
	for status, count := range stats.ByStatus {
		stats.Total += count
		switch status {
		case request.StatusAccepted, request.StatusInTransit, request.StatusDelivered:
			accepted += count
		}
	}
	stats.Pending = stats.ByStatus[request.StatusPending]
	stats.Completed = stats.ByStatus[request.StatusDelivered]
	if stats.Total > 0 {
		stats.AcceptanceRate = int(math.Round(float64(accepted) * 100 / float64(stats.Total)))
	}

	return stats, nil
}

// countByStatus is only ever called with the fixed table names above.
func countByStatus(db *gorm.DB, table string) (map[string]int, error) {
	rows, err := db.Table(table).Select("status, COUNT(*)").Group("status").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
