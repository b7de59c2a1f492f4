package availability

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

var tracer = otel.Tracer("github.com/CamiloTriana75/ProyectoElden/internal/availability")

type SlotAvailability struct {
	slot.SlotDefinition
	IsAvailable bool `json:"isAvailable"`
}

// Diagnostics separates "no slots configured" from "all slots taken".
type Diagnostics struct {
	FacilityID string `json:"facilityId"`
	Date       string `json:"date"`
	Configured int    `json:"configured"`
	Available  int    `json:"available"`
	Reserved   int    `json:"reserved"`
}

// Source resolves availability for a facility on a date.
type Source interface {
	Resolve(ctx context.Context, facilityID, date string) ([]SlotAvailability, error)
}

type FacilityLookup interface {
	GetFacilityByID(ctx context.Context, id string) (*facility.Facility, error)
}

type SlotLister interface {
	List(ctx context.Context, f slot.Filter) ([]slot.SlotDefinition, error)
}

type ReservationLister interface {
	List(ctx context.Context, f reservation.Filter) ([]reservation.Reservation, error)
}

// Resolver computes availability directly from the stores.
type Resolver struct {
	facilities   FacilityLookup
	slots        SlotLister
	reservations ReservationLister
}

func NewResolver(facilities FacilityLookup, slots SlotLister, reservations ReservationLister) *Resolver {
	return &Resolver{
		facilities:   facilities,
		slots:        slots,
		reservations: reservations,
	}
}

// Resolve returns every active slot definition that applies to date, each
// marked unavailable when a confirmed reservation overlaps it.
func (r *Resolver) Resolve(ctx context.Context, facilityID, date string) ([]SlotAvailability, error) {
	ctx, span := tracer.Start(ctx, "availability.Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("facility.id", facilityID), attribute.String("date", date))

	if !slot.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if _, err := r.facilities.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, err
	}

	defs, err := r.slots.List(ctx, slot.Filter{FacilityID: facilityID, Date: date, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return []SlotAvailability{}, nil
	}

	confirmed, err := r.reservations.List(ctx, reservation.Filter{
		FacilityID: facilityID,
		Date:       date,
		Status:     reservation.StatusConfirmed,
	})
	if err != nil {
		return nil, err
	}

	out := make([]SlotAvailability, 0, len(defs))
	for _, d := range defs {
		out = append(out, SlotAvailability{
			SlotDefinition: d,
			IsAvailable:    !blocked(d.Window(), confirmed),
		})
	}
	span.SetAttributes(attribute.Int("slots", len(out)))
	return out, nil
}

func (r *Resolver) Diagnose(ctx context.Context, facilityID, date string) (*Diagnostics, error) {
	slots, err := r.Resolve(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}

	d := &Diagnostics{FacilityID: facilityID, Date: date, Configured: len(slots)}
	for _, s := range slots {
		if s.IsAvailable {
			d.Available++
		} else {
			d.Reserved++
		}
	}
	return d, nil
}

func blocked(w slot.Window, confirmed []reservation.Reservation) bool {
	for _, res := range confirmed {
		if res.Status.Blocks() && w.Overlaps(res.Window()) {
			return true
		}
	}
	return false
}
