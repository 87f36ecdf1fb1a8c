// Package requestrepo persists transport requests with GORM.
package requestrepo

import (
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"

	"github.com/shopspring/decimal"
)

type RequestDTO struct {
	ID               string          `gorm:"type:varchar(36);primaryKey"`
	OfferID          string          `gorm:"type:varchar(36);not null;index"`
	SenderID         string          `gorm:"type:varchar(36);not null;index"`
	DriverID         string          `gorm:"type:varchar(36);not null;index"`
	Cargo            CargoDTO        `gorm:"embedded;embeddedPrefix:cargo_"`
	PickupLocation   string          `gorm:"not null"`
	DeliveryLocation string          `gorm:"not null"`
	EstimatedPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes            string
	Status           string    `gorm:"size:16;not null;index"`
	Ratable          bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (RequestDTO) TableName() string {
	return "transport_requests"
}

type CargoDTO struct {
	Type        string          `gorm:"size:64;not null"`
	WeightKg    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Length      decimal.Decimal `gorm:"type:numeric(8,2)"`
	Width       decimal.Decimal `gorm:"type:numeric(8,2)"`
	Height      decimal.Decimal `gorm:"type:numeric(8,2)"`
	Description string
}

func fromDomain(r *request.TransportRequest) RequestDTO {
	details := r.Details()
	return RequestDTO{
		ID:       r.ID().String(),
		OfferID:  r.OfferID().String(),
		SenderID: r.SenderID().String(),
		DriverID: r.DriverID().String(),
		Cargo: CargoDTO{
			Type:        details.Cargo.Type,
			WeightKg:    details.Cargo.WeightKg,
			Length:      details.Cargo.Dimensions.Length,
			Width:       details.Cargo.Dimensions.Width,
			Height:      details.Cargo.Dimensions.Height,
			Description: details.Cargo.Description,
		},
		PickupLocation:   details.PickupLocation,
		DeliveryLocation: details.DeliveryLocation,
		EstimatedPrice:   details.EstimatedPrice,
		Notes:            details.Notes,
		Status:           r.Status().String(),
		Ratable:          r.IsRatable(),
		CreatedAt:        r.CreatedAt().UTC(),
		UpdatedAt:        r.UpdatedAt().UTC(),
	}
}

func toDomain(dto RequestDTO) (*request.TransportRequest, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []string{dto.ID, dto.OfferID, dto.SenderID, dto.DriverID} {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return request.Restore(request.RestoreParams{
		ID:       ids[0],
		OfferID:  ids[1],
		SenderID: ids[2],
		DriverID: ids[3],
		Details: request.Details{
			Cargo: request.Cargo{
				Type:     dto.Cargo.Type,
				WeightKg: dto.Cargo.WeightKg,
				Dimensions: request.Dimensions{
					Length: dto.Cargo.Length,
					Width:  dto.Cargo.Width,
					Height: dto.Cargo.Height,
				},
				Description: dto.Cargo.Description,
			},
			PickupLocation:   dto.PickupLocation,
			DeliveryLocation: dto.DeliveryLocation,
			EstimatedPrice:   dto.EstimatedPrice,
			Notes:            dto.Notes,
		},
		Status:    request.Status(dto.Status),
		Ratable:   dto.Ratable,
		CreatedAt: dto.CreatedAt.UTC(),
		UpdatedAt: dto.UpdatedAt.UTC(),
	})
}
