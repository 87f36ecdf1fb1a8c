package offer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer or Restore")

// Status of an offer. Only active offers accept new requests.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("offer status", fmt.Errorf("%q is not a valid offer status", string(s)))
}

// Route is the journey an offer covers.
type Route struct {
	From        string
	To          string
	DepartureAt time.Time
}

// Capacity describes what the vehicle can carry. Prices are descriptive only.
type Capacity struct {
	MaxWeightKg      decimal.Decimal
	AvailableSpaceM3 decimal.Decimal
	PricePerKg       decimal.Decimal
	CargoTypes       []string
}

type Offer struct {
	id        kernel.UUID
	driverID  kernel.UUID
	route     Route
	capacity  Capacity
	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOffer publishes an active offer owned by driverID.
func NewOffer(id, driverID kernel.UUID, route Route, capacity Capacity, now time.Time) (*Offer, error) {
	o := &Offer{
		status:        StatusActive,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		driverID.Validate(),
		o.setRoute(route),
		o.setCapacity(capacity),
	); err != nil {
		return nil, err
	}
	o.id, o.driverID = id, driverID

	return o, nil
}

// RestoreParams is the persisted state of an offer.
type RestoreParams struct {
	ID        kernel.UUID
	DriverID  kernel.UUID
	Route     Route
	Capacity  Capacity
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Restore(p RestoreParams) (*Offer, error) {
	if err := errors.Join(p.ID.Validate(), p.DriverID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	return &Offer{
		id:            p.ID,
		driverID:      p.DriverID,
		route:         p.Route,
		capacity:      p.Capacity,
		status:        p.Status,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

func (o *Offer) ID() kernel.UUID {
	return o.id
}

func (o *Offer) DriverID() kernel.UUID {
	return o.driverID
}

func (o *Offer) Route() Route {
	return o.route
}

func (o *Offer) Capacity() Capacity {
	c := o.capacity
	c.CargoTypes = append([]string(nil), o.capacity.CargoTypes...)
	return c
}

func (o *Offer) Status() Status {
	return o.status
}

func (o *Offer) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Offer) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether driverID published this offer.
func (o *Offer) IsOwnedBy(driverID kernel.UUID) bool {
	return o.driverID.IsEqual(driverID)
}

// AcceptsRequests reports whether senders may still attach requests.
func (o *Offer) AcceptsRequests() bool {
	return o.status == StatusActive
}

func (o *Offer) setRoute(r Route) error {
	r.From, r.To = strings.TrimSpace(r.From), strings.TrimSpace(r.To)
	var errList []error
	if r.From == "" {
		errList = append(errList, errs.NewValueIsRequiredError("start location"))
	}
	if r.To == "" {
		errList = append(errList, errs.NewValueIsRequiredError("end location"))
	}
	if r.DepartureAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("departure date"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.route = r
	return nil
}

func (o *Offer) setCapacity(c Capacity) error {
	var errList []error
	if !c.MaxWeightKg.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("max weight", fmt.Errorf("%s is not greater than 0", c.MaxWeightKg)))
	}
	if c.AvailableSpaceM3.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("available space", fmt.Errorf("%s is negative", c.AvailableSpaceM3)))
	}
	if c.PricePerKg.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price per kg", fmt.Errorf("%s is negative", c.PricePerKg)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	types := make([]string, 0, len(c.CargoTypes))
	for _, t := range c.CargoTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	c.CargoTypes = types
	o.capacity = c
	return nil
}
