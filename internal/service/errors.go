package service

import (
	"errors"
	"fmt"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

var (
	// ErrStorageFull is returned when every provisioned slot in the
	// target zone is occupied. It is never masked by generating a
	// synthetic slot code.
	ErrStorageFull = errors.New("no free storage slot in zone")
	// ErrParcelNotFound is returned when a parcel or tracking ID is unknown.
	ErrParcelNotFound = errors.New("parcel not found")
	// ErrDuplicateTracking is returned when a tracking ID is already
	// registered at the hub.
	ErrDuplicateTracking = errors.New("tracking ID already registered at this hub")
	// ErrHubMismatch is returned when a user acts on a parcel or hub
	// outside their assignment.
	ErrHubMismatch = errors.New("resource belongs to a different hub")
	// ErrNotParcelOwner is returned when a recipient accesses a parcel
	// registered to someone else.
	ErrNotParcelOwner = errors.New("parcel belongs to a different recipient")
)

// InvalidStatusError reports a lifecycle transition that is not permitted
// from the parcel's current status.
type InvalidStatusError struct {
	Current model.ParcelStatus
	Target  model.ParcelStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("parcel cannot move to %s: current status is %s", e.Target, e.Current)
}

// InsufficientPaymentError reports a tendered amount below the fee.
type InsufficientPaymentError struct {
	Required float64
	Received float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: required RM%.2f, received RM%.2f", e.Required, e.Received)
}

// Shortfall is the missing amount, rounded to 2 decimal places.
func (e *InsufficientPaymentError) Shortfall() float64 {
	return roundMoney(e.Required - e.Received)
}
