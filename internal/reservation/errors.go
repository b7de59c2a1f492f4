package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrForbidden            = errors.New("not allowed to change this reservation")
	ErrDuplicateReservation = errors.New("requester already holds a reservation for this window")
	ErrApprovalStale        = errors.New("slot definition changed since validation")
	ErrSlotUnavailable      = errors.New("slot unavailable")
	// ErrSlotDefinitionNotFoundOnConfirm means the slot the reservation was
	// taken from is gone, usually consumed by another confirmation.
	ErrSlotDefinitionNotFoundOnConfirm = errors.New("slot definition not found on confirm")
	ErrStatusConflict                  = fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
)
