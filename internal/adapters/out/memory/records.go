package memory

import (
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/core/domain/model/request"
)

func identityRecord(i *identity.Identity) identity.RestoreParams {
	return identity.RestoreParams{
		ID:                  i.ID(),
		FirstName:           i.FirstName(),
		LastName:            i.LastName(),
		Email:               i.Email(),
		Digest:              i.Digest(),
		Role:                i.Role(),
		Phone:               i.Phone(),
		Verified:            i.IsVerified(),
		Active:              i.IsActive(),
		Rating:              i.Rating(),
		CompletedTransports: i.CompletedTransports(),
		CreatedAt:           i.CreatedAt(),
		UpdatedAt:           i.UpdatedAt(),
	}
}

func offerRecord(o *offer.Offer) offer.RestoreParams {
	return offer.RestoreParams{
		ID:        o.ID(),
		DriverID:  o.DriverID(),
		Route:     o.Route(),
		Capacity:  o.Capacity(),
		Status:    o.Status(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func restoreOffer(p offer.RestoreParams) (*offer.Offer, error) {
	p.Capacity.CargoTypes = append([]string(nil), p.Capacity.CargoTypes...)
	return offer.Restore(p)
}

func requestRecord(r *request.TransportRequest) request.RestoreParams {
	return request.RestoreParams{
		ID:        r.ID(),
		OfferID:   r.OfferID(),
		SenderID:  r.SenderID(),
		DriverID:  r.DriverID(),
		Details:   r.Details(),
		Status:    r.Status(),
		Ratable:   r.IsRatable(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func messageRecord(m *outbox.Message) outbox.RestoreParams {
	return outbox.RestoreParams{
		ID:          m.ID(),
		EventType:   m.EventType(),
		AggregateID: m.AggregateID(),
		Payload:     append([]byte(nil), m.Payload()...),
		Status:      m.Status(),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt(),
		PublishedAt: m.PublishedAt(),
	}
}

func restoreMessage(p outbox.RestoreParams) (*outbox.Message, error) {
	p.Payload = append([]byte(nil), p.Payload...)
	return outbox.Restore(p)
}
