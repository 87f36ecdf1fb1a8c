package http

import (
	"fmt"
	"strings"
	"time"

	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/application/usecases/queries"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateOfferRequest struct {
	StartLocation  string          `json:"startLocation" validate:"required"`
	EndLocation    string          `json:"endLocation" validate:"required"`
	DepartureDate  string          `json:"departureDate" validate:"required"`
	MaxWeight      decimal.Decimal `json:"maxWeight"`
	AvailableSpace decimal.Decimal `json:"availableSpace"`
	PricePerKg     decimal.Decimal `json:"pricePerKg"`
	CargoTypes     []string        `json:"cargoTypes" validate:"omitempty,dive,required"`
}

type DimensionsPayload struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

type CargoPayload struct {
	Type        string            `json:"type" validate:"required"`
	Weight      decimal.Decimal   `json:"weight"`
	Dimensions  DimensionsPayload `json:"dimensions"`
	Description string            `json:"description"`
}

type CreateRequestRequest struct {
	OfferID          string          `json:"offerId" validate:"required"`
	Cargo            CargoPayload    `json:"cargo"`
	PickupLocation   string          `json:"pickupLocation" validate:"required"`
	DeliveryLocation string          `json:"deliveryLocation" validate:"required"`
	EstimatedPrice   decimal.Decimal `json:"estimatedPrice"`
	Notes            string          `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetActiveRequest uses a pointer so a missing flag is a validation error
// rather than a silent deactivation.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type UserResponse struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	Phone               string    `json:"phone"`
	IsVerified          bool      `json:"isVerified"`
	IsActive            bool      `json:"isActive"`
	Rating              float64   `json:"rating"`
	RatingCount         int       `json:"ratingCount"`
	CompletedTransports int       `json:"completedTransports"`
	CreatedAt           time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

type UsersEnvelope struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}

type DriverResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type OfferResponse struct {
	ID             string          `json:"id"`
	Driver         *DriverResponse `json:"driver,omitempty"`
	DriverID       string          `json:"driverId"`
	StartLocation  string          `json:"startLocation"`
	EndLocation    string          `json:"endLocation"`
	DepartureDate  time.Time       `json:"departureDate"`
	MaxWeight      float64         `json:"maxWeight"`
	AvailableSpace float64         `json:"availableSpace"`
	PricePerKg     float64         `json:"pricePerKg"`
	CargoTypes     []string        `json:"cargoTypes"`
	Status         string          `json:"status"`
	RequestCount   *int            `json:"requestCount,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type OfferEnvelope struct {
	Success bool          `json:"success"`
	Offer   OfferResponse `json:"offer"`
}

type OffersEnvelope struct {
	Success bool            `json:"success"`
	Offers  []OfferResponse `json:"offers"`
}

type DimensionsResponse struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type CargoResponse struct {
	Type        string             `json:"type"`
	Weight      float64            `json:"weight"`
	Dimensions  DimensionsResponse `json:"dimensions"`
	Description string             `json:"description"`
}

type RequestResponse struct {
	ID               string        `json:"id"`
	OfferID          string        `json:"offerId"`
	SenderID         string        `json:"senderId"`
	DriverID         string        `json:"driverId"`
	Status           string        `json:"status"`
	IsRatable        bool          `json:"isRatable"`
	Cargo            CargoResponse `json:"cargo"`
	PickupLocation   string        `json:"pickupLocation"`
	DeliveryLocation string        `json:"deliveryLocation"`
	EstimatedPrice   float64       `json:"estimatedPrice"`
	Notes            string        `json:"notes"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type RequestEnvelope struct {
	Success bool            `json:"success"`
	Request RequestResponse `json:"request"`
}

type UserStats struct {
	Total   int `json:"total"`
	Drivers int `json:"drivers"`
	Senders int `json:"senders"`
	Admins  int `json:"admins"`
	Active  int `json:"active"`
}

type OfferStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type RequestStats struct {
	Total          int            `json:"total"`
	Pending        int            `json:"pending"`
	Completed      int            `json:"completed"`
	AcceptanceRate int            `json:"acceptanceRate"`
	ByStatus       map[string]int `json:"byStatus"`
}

type RecentActivity struct {
	Users  []UserResponse  `json:"users"`
	Offers []OfferResponse `json:"offers"`
}

type DashboardStats struct {
	Users          UserStats      `json:"users"`
	Offers         OfferStats     `json:"offers"`
	Requests       RequestStats   `json:"requests"`
	RecentActivity RecentActivity `json:"recentActivity"`
}

type DashboardEnvelope struct {
	Success bool           `json:"success"`
	Stats   DashboardStats `json:"stats"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

var departureLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDeparture accepts a full timestamp or the date-only values HTML date
// inputs send. Date-only values are midnight UTC.
func parseDeparture(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range departureLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause("departureDate", fmt.Errorf("%q is not a date", s))
}

func (r CreateOfferRequest) toDomain() (offer.Route, offer.Capacity, error) {
	departure, err := parseDeparture(r.DepartureDate)
	if err != nil {
		return offer.Route{}, offer.Capacity{}, err
	}
	route := offer.Route{From: r.StartLocation, To: r.EndLocation, DepartureAt: departure}
	capacity := offer.Capacity{
		MaxWeightKg:      r.MaxWeight,
		AvailableSpaceM3: r.AvailableSpace,
		PricePerKg:       r.PricePerKg,
		CargoTypes:       r.CargoTypes,
	}
	return route, capacity, nil
}

func (r CreateRequestRequest) toDomain() request.Details {
	return request.Details{
		Cargo: request.Cargo{
			Type:     r.Cargo.Type,
			WeightKg: r.Cargo.Weight,
			Dimensions: request.Dimensions{
				Length: r.Cargo.Dimensions.Length,
				Width:  r.Cargo.Dimensions.Width,
				Height: r.Cargo.Dimensions.Height,
			},
			Description: r.Cargo.Description,
		},
		PickupLocation:   r.PickupLocation,
		DeliveryLocation: r.DeliveryLocation,
		EstimatedPrice:   r.EstimatedPrice,
		Notes:            r.Notes,
	}
}

func toUserResponse(s identity.Summary) UserResponse {
	return UserResponse{
		ID:                  s.ID.String(),
		FirstName:           s.FirstName,
		LastName:            s.LastName,
		Email:               s.Email,
		Role:                s.Role.String(),
		Phone:               s.Phone,
		IsVerified:          s.IsVerified,
		IsActive:            s.IsActive,
		Rating:              s.Rating.Average.InexactFloat64(),
		RatingCount:         s.Rating.Count,
		CompletedTransports: s.CompletedTransports,
		CreatedAt:           s.CreatedAt,
	}
}

func toUserResponses(summaries []identity.Summary) []UserResponse {
	out := make([]UserResponse, len(summaries))
	for i, s := range summaries {
		out[i] = toUserResponse(s)
	}
	return out
}

func toAuthResponse(result commands.AuthResult) AuthResponse {
	return AuthResponse{
		Success:   true,
		Token:     result.Token.Value,
		ExpiresAt: result.Token.ExpiresAt,
		User:      toUserResponse(result.Identity),
	}
}

func toOfferResponse(o *offer.Offer) OfferResponse {
	route, capacity := o.Route(), o.Capacity()
	return OfferResponse{
		ID:             o.ID().String(),
		DriverID:       o.DriverID().String(),
		StartLocation:  route.From,
		EndLocation:    route.To,
		DepartureDate:  route.DepartureAt,
		MaxWeight:      capacity.MaxWeightKg.InexactFloat64(),
		AvailableSpace: capacity.AvailableSpaceM3.InexactFloat64(),
		PricePerKg:     capacity.PricePerKg.InexactFloat64(),
		CargoTypes:     nonNil(capacity.CargoTypes),
		Status:         string(o.Status()),
		CreatedAt:      o.CreatedAt(),
	}
}

func toListedOfferResponse(o queries.ListOffersQueryResponse) OfferResponse {
	count := o.RequestCount
	return OfferResponse{
		ID: o.ID.String(),
		Driver: &DriverResponse{
			ID:        o.Driver.ID.String(),
			FirstName: o.Driver.FirstName,
			LastName:  o.Driver.LastName,
			Email:     o.Driver.Email,
		},
		DriverID:       o.Driver.ID.String(),
		StartLocation:  o.Route.From,
		EndLocation:    o.Route.To,
		DepartureDate:  o.Route.DepartureAt,
		MaxWeight:      o.Capacity.MaxWeightKg.InexactFloat64(),
		AvailableSpace: o.Capacity.AvailableSpaceM3.InexactFloat64(),
		PricePerKg:     o.Capacity.PricePerKg.InexactFloat64(),
		CargoTypes:     nonNil(o.Capacity.CargoTypes),
		Status:         string(o.Status),
		RequestCount:   &count,
		CreatedAt:      o.CreatedAt,
	}
}

func toListedOfferResponses(offers []queries.ListOffersQueryResponse) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i, o := range offers {
		out[i] = toListedOfferResponse(o)
	}
	return out
}

func toRequestResponse(r *request.TransportRequest) RequestResponse {
	details := r.Details()
	return RequestResponse{
		ID:        r.ID().String(),
		OfferID:   r.OfferID().String(),
		SenderID:  r.SenderID().String(),
		DriverID:  r.DriverID().String(),
		Status:    r.Status().String(),
		IsRatable: r.IsRatable(),
		Cargo: CargoResponse{
			Type:   details.Cargo.Type,
			Weight: details.Cargo.WeightKg.InexactFloat64(),
			Dimensions: DimensionsResponse{
				Length: details.Cargo.Dimensions.Length.InexactFloat64(),
				Width:  details.Cargo.Dimensions.Width.InexactFloat64(),
				Height: details.Cargo.Dimensions.Height.InexactFloat64(),
			},
			Description: details.Cargo.Description,
		},
		PickupLocation:   details.PickupLocation,
		DeliveryLocation: details.DeliveryLocation,
		EstimatedPrice:   details.EstimatedPrice.InexactFloat64(),
		Notes:            details.Notes,
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func toDashboardStats(s queries.GetStatisticsQueryResponse) DashboardStats {
	byStatus := make(map[string]int, len(s.Requests.ByStatus))
	for status, n := range s.Requests.ByStatus {
		byStatus[status.String()] = n
	}
	return DashboardStats{
		Users: UserStats{
			Total:   s.Identities.Total,
			Drivers: s.Identities.Drivers,
			Senders: s.Identities.Senders,
			Admins:  s.Identities.Admins,
			Active:  s.Identities.Active,
		},
		Offers: OfferStats{Total: s.Offers.Total, Active: s.Offers.Active},
		Requests: RequestStats{
			Total:          s.Requests.Total,
			Pending:        s.Requests.Pending,
			Completed:      s.Requests.Completed,
			AcceptanceRate: s.Requests.AcceptanceRate,
			ByStatus:       byStatus,
		},
		RecentActivity: RecentActivity{
			Users:  toUserResponses(s.RecentIdentities),
			Offers: toListedOfferResponses(s.RecentOffers),
		},
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
