// Package offerrepo persists transport offers with GORM.
package offerrepo

import (
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"

	"github.com/shopspring/decimal"
)

type OfferDTO struct {
	ID               string          `gorm:"type:varchar(36);primaryKey"`
	DriverID         string          `gorm:"type:varchar(36);not null;index"`
	StartLocation    string          `gorm:"not null"`
	EndLocation      string          `gorm:"not null"`
	DepartureAt      time.Time       `gorm:"not null"`
	MaxWeightKg      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AvailableSpaceM3 decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PricePerKg       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CargoTypes       []string        `gorm:"type:text;serializer:json"`
	Status           string          `gorm:"size:16;not null;index"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (OfferDTO) TableName() string {
	return "offers"
}

func fromDomain(o *offer.Offer) OfferDTO {
	route, capacity := o.Route(), o.Capacity()
	return OfferDTO{
		ID:               o.ID().String(),
		DriverID:         o.DriverID().String(),
		StartLocation:    route.From,
		EndLocation:      route.To,
		DepartureAt:      route.DepartureAt.UTC(),
		MaxWeightKg:      capacity.MaxWeightKg,
		AvailableSpaceM3: capacity.AvailableSpaceM3,
		PricePerKg:       capacity.PricePerKg,
		CargoTypes:       capacity.CargoTypes,
		Status:           string(o.Status()),
		CreatedAt:        o.CreatedAt().UTC(),
		UpdatedAt:        o.UpdatedAt().UTC(),
	}
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromString(dto.DriverID)
	if err != nil {
		return nil, err
	}

	return offer.Restore(offer.RestoreParams{
		ID:       id,
		DriverID: driverID,
		Route: offer.Route{
			From:        dto.StartLocation,
			To:          dto.EndLocation,
			DepartureAt: dto.DepartureAt.UTC(),
		},
		Capacity: offer.Capacity{
			MaxWeightKg:      dto.MaxWeightKg,
			AvailableSpaceM3: dto.AvailableSpaceM3,
			PricePerKg:       dto.PricePerKg,
			CargoTypes:       dto.CargoTypes,
		},
		Status:    offer.Status(dto.Status),
		CreatedAt: dto.CreatedAt.UTC(),
		UpdatedAt: dto.UpdatedAt.UTC(),
	})
}
