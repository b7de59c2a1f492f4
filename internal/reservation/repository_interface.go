package reservation

import "context"

type Repository interface {
	// CreateIfAvailable persists a.Reservation only if the approved slot is
	// unchanged and no confirmed reservation overlaps its window.
	CreateIfAvailable(ctx context.Context, a Approval) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, f Filter) ([]Reservation, error)
	// TransitionStatus moves id from one status to another if it is still in from.
	TransitionStatus(ctx context.Context, id string, from, to Status) (*Reservation, error)
	// Confirm moves a pending reservation to confirmed and consumes its slot
	// definition in the same unit of work.
	Confirm(ctx context.Context, id string) (*ConfirmOutcome, error)
	Delete(ctx context.Context, id string) error
}
