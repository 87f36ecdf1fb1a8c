package request

import (
	"fmt"
	"strings"

	"transportconnect/internal/pkg/errs"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusAccepted, StatusRejected, StatusInTransit, StatusDelivered, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusInTransit, StatusDelivered, StatusCancelled:
		return nil
	}
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid request status", string(s)))
}

// IsTerminal reports whether no edge leaves s.
func (s Status) IsTerminal() bool {
	return len(NextStatuses(s)) == 0
}

func (s Status) String() string {
	return string(s)
}
