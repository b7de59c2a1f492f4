package reservation

import (
	"fmt"
	"time"

	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

// Status is the reservation lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// transitions is the only place the lifecycle table lives.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Blocks reports whether a reservation in this state occupies its window.
func (s Status) Blocks() bool {
	return s == StatusConfirmed
}

type Reservation struct {
	ID               string    `db:"id" json:"id"`
	RequesterID      string    `db:"user_id" json:"userId"`
	FacilityID       string    `db:"field_id" json:"fieldId"`
	SlotDefinitionID string    `db:"slot_definition_id" json:"slotDefinitionId,omitempty"`
	Date             string    `db:"date" json:"date"`
	StartTime        string    `db:"start_time" json:"startTime"`
	EndTime          string    `db:"end_time" json:"endTime"`
	TotalPrice       float64   `db:"total_price" json:"totalPrice"`
	Status           Status    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

func (r Reservation) Window() slot.Window {
	return slot.Window{Start: r.StartTime, End: r.EndTime}
}

// SlotMatch describes the slot definitions this reservation was taken from.
func (r Reservation) SlotMatch() slot.Match {
	return slot.Match{FacilityID: r.FacilityID, Date: r.Date, Window: r.Window()}
}

type Filter struct {
	RequesterID string
	FacilityID  string
	Date        string
	Status      Status
}

func (f Filter) Match(r Reservation) bool {
	return (f.RequesterID == "" || r.RequesterID == f.RequesterID) &&
		(f.FacilityID == "" || r.FacilityID == f.FacilityID) &&
		(f.Date == "" || r.Date == f.Date) &&
		(f.Status == "" || r.Status == f.Status)
}

// Token records what the booking validator observed when it approved a reservation.
type Token struct {
	ID               string    `json:"id"`
	SlotDefinitionID string    `json:"slotDefinitionId"`
	SlotVersion      int       `json:"slotVersion"`
	IssuedAt         time.Time `json:"issuedAt"`
}

// Approval is a validated, not yet persisted reservation.
type Approval struct {
	Reservation Reservation `json:"reservation"`
	Token       Token       `json:"token"`
}

// ConfirmOutcome reports the slot side effect of a confirmation.
type ConfirmOutcome struct {
	Reservation   Reservation
	DeletedSlotID string
	// Matches counts slot definitions found by field matching. Only set for
	// reservations that carry no slot definition id.
	Matches int
	Legacy  bool
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}
