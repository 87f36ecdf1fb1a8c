package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrTransportRequestIsNotConstructed = errors.New("TransportRequest must be created via NewTransportRequest or Restore")
	ErrOfferNotAcceptingRequests        = errs.NewValueIsInvalidErrorWithCause("offer", errors.New("offer is not accepting requests"))
)

// Details are the sender-supplied parts of a request.
type Details struct {
	Cargo            Cargo
	PickupLocation   string
	DeliveryLocation string
	EstimatedPrice   decimal.Decimal
	Notes            string
}

// TransportRequest is the aggregate root for one sender/driver transaction.
// driverID is the offer owner captured at creation, so ownership checks never
// need the offer itself.
type TransportRequest struct {
	id        kernel.UUID
	offerID   kernel.UUID
	senderID  kernel.UUID
	driverID  kernel.UUID
	details   Details
	status    Status
	ratable   bool
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTransportRequest creates a pending request from senderID against o.
func NewTransportRequest(id kernel.UUID, o *offer.Offer, senderID kernel.UUID, details Details, now time.Time) (*TransportRequest, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.AcceptsRequests() {
		return nil, ErrOfferNotAcceptingRequests
	}

	details.PickupLocation = strings.TrimSpace(details.PickupLocation)
	details.DeliveryLocation = strings.TrimSpace(details.DeliveryLocation)

	var errList []error
	errList = append(errList, id.Validate(), senderID.Validate(), details.Cargo.validate())
	if details.PickupLocation == "" {
		errList = append(errList, errs.NewValueIsRequiredError("pickup location"))
	}
	if details.DeliveryLocation == "" {
		errList = append(errList, errs.NewValueIsRequiredError("delivery location"))
	}
	if details.EstimatedPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("estimated price", fmt.Errorf("%s is negative", details.EstimatedPrice)))
	}
	if o.IsOwnedBy(senderID) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("sender", errors.New("offer owner cannot request their own offer")))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &TransportRequest{
		id:            id,
		offerID:       o.ID(),
		senderID:      senderID,
		driverID:      o.DriverID(),
		details:       details,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreParams is the persisted state of a request.
type RestoreParams struct {
	ID        kernel.UUID
	OfferID   kernel.UUID
	SenderID  kernel.UUID
	DriverID  kernel.UUID
	Details   Details
	Status    Status
	Ratable   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Restore(p RestoreParams) (*TransportRequest, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OfferID.Validate(),
		p.SenderID.Validate(),
		p.DriverID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	return &TransportRequest{
		id:            p.ID,
		offerID:       p.OfferID,
		senderID:      p.SenderID,
		driverID:      p.DriverID,
		details:       p.Details,
		status:        p.Status,
		ratable:       p.Ratable,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (r *TransportRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrTransportRequestIsNotConstructed
	}
	return nil
}

func (r *TransportRequest) ID() kernel.UUID {
	return r.id
}

func (r *TransportRequest) OfferID() kernel.UUID {
	return r.offerID
}

func (r *TransportRequest) SenderID() kernel.UUID {
	return r.senderID
}

func (r *TransportRequest) DriverID() kernel.UUID {
	return r.driverID
}

func (r *TransportRequest) Details() Details {
	return r.details
}

func (r *TransportRequest) Status() Status {
	return r.status
}

// IsRatable reports whether the transaction reached delivery and can be rated.
func (r *TransportRequest) IsRatable() bool {
	return r.ratable
}

func (r *TransportRequest) CreatedAt() time.Time {
	return r.createdAt
}

func (r *TransportRequest) UpdatedAt() time.Time {
	return r.updatedAt
}

// PartyOf returns which side of the request actorID is on.
func (r *TransportRequest) PartyOf(actorID kernel.UUID) Party {
	switch {
	case r.driverID.IsEqual(actorID):
		return PartyOfferDriver
	case r.senderID.IsEqual(actorID):
		return PartyRequestingSender
	}
	return PartyNone
}

// Transition moves the request to target on behalf of actorID.
//
// Submitting the current status is a successful no-op: changed is false, no
// event is produced and updatedAt is untouched. Reaching delivered marks the
// request ratable.
func (r *TransportRequest) Transition(actorID kernel.UUID, target Status, now time.Time) (StatusChanged, bool, error) {
	if err := target.Validate(); err != nil {
		return StatusChanged{}, false, err
	}

	party := r.PartyOf(actorID)
	if party == PartyNone {
		return StatusChanged{}, false, fmt.Errorf("%w: actor is not a party to request %s", errs.ErrForbidden, r.id)
	}

	if target == r.status {
		return StatusChanged{}, false, nil
	}

	if err := CheckTransition(r.status, target, party); err != nil {
		return StatusChanged{}, false, err
	}

	event := StatusChanged{
		RequestID:  r.id,
		OfferID:    r.offerID,
		DriverID:   r.driverID,
		SenderID:   r.senderID,
		From:       r.status,
		To:         target,
		ActorID:    actorID,
		OccurredAt: now,
	}

	r.status = target
	r.updatedAt = now
	if target == StatusDelivered {
		r.ratable = true
	}

	return event, true, nil
}
