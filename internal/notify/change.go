package notify

import "context"

// Collection names match the document store the scheduling core interoperates with.
const (
	CollectionTimeSlots    = "timeSlots"
	CollectionReservations = "reservations"
)

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change describes one write to a collection. FacilityID is always set so
// subscribers can scope derived views; Date is empty for recurring slots.
type Change struct {
	Collection string `json:"collection"`
	Op         Op     `json:"op"`
	ID         string `json:"id"`
	FacilityID string `json:"facilityId"`
	Date       string `json:"date,omitempty"`
	Origin     string `json:"origin,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, c Change)
}

// Discard is a Publisher that drops every change.
type Discard struct{}

func (Discard) Publish(context.Context, Change) {}
