package request

import (
	"time"

	"transportconnect/internal/core/domain/model/kernel"
)

const StatusChangedEventType = "transport_request.status_changed"

// StatusChanged is emitted for every applied transition.
type StatusChanged struct {
	RequestID  kernel.UUID `json:"requestId"`
	OfferID    kernel.UUID `json:"offerId"`
	DriverID   kernel.UUID `json:"driverId"`
	SenderID   kernel.UUID `json:"senderId"`
	From       Status      `json:"oldStatus"`
	To         Status      `json:"newStatus"`
	ActorID    kernel.UUID `json:"actorId"`
	OccurredAt time.Time   `json:"occurredAt"`
}
