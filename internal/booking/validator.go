package booking

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/CamiloTriana75/ProyectoElden/internal/availability"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

var (
	ErrMissingData          = errors.New("missing required booking data")
	ErrSlotUnavailable      = reservation.ErrSlotUnavailable
	ErrOutsideBusinessHours = errors.New("start time outside business hours")
)

var tracer = otel.Tracer("github.com/CamiloTriana75/ProyectoElden/internal/booking")

// BusinessHours bounds the start hour of a booking. Both ends are inclusive,
// so with Close 22 a 22:30 start is accepted and 23:00 is not.
type BusinessHours struct {
	Open  int
	Close int
}

func (b BusinessHours) Contains(hour int) bool {
	return hour >= b.Open && hour <= b.Close
}

// Validator runs the pre-commit checks for a booking attempt. It never writes.
type Validator struct {
	source   availability.Source
	hours    BusinessHours
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator must be given an uncached Source so every check sees live data.
func NewValidator(source availability.Source, hours BusinessHours) *Validator {
	return &Validator{
		source:   source,
		hours:    hours,
		validate: newValidate(),
		now:      time.Now,
	}
}

// Validate checks required data, then live availability, then business hours,
// and stops at the first failure.
func (v *Validator) Validate(ctx context.Context, req Request) (*reservation.Approval, error) {
	ctx, span := tracer.Start(ctx, "booking.Validate")
	defer span.End()
	span.SetAttributes(attribute.String("facility.id", req.FacilityID), attribute.String("date", req.Date))

	a, err := v.validateRequest(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return a, err
}

func (v *Validator) validateRequest(ctx context.Context, req Request) (*reservation.Approval, error) {
	if err := v.checkRequired(req); err != nil {
		return nil, err
	}

	items, err := v.source.Resolve(ctx, req.FacilityID, req.Date)
	if err != nil {
		return nil, err
	}
	target, ok := findTarget(items, req)
	if !ok || !target.IsAvailable {
		return nil, ErrSlotUnavailable
	}

	hour, err := target.Window().StartHour()
	if err != nil || !v.hours.Contains(hour) {
		return nil, ErrOutsideBusinessHours
	}

	now := v.now().UTC()
	return &reservation.Approval{
		Reservation: reservation.Reservation{
			ID:               uuid.NewString(),
			RequesterID:      req.RequesterID,
			FacilityID:       req.FacilityID,
			SlotDefinitionID: target.ID,
			Date:             req.Date,
			StartTime:        target.StartTime,
			EndTime:          target.EndTime,
			TotalPrice:       target.Price,
			Status:           reservation.StatusPending,
			CreatedAt:        now,
		},
		Token: reservation.Token{
			ID:               uuid.NewString(),
			SlotDefinitionID: target.ID,
			SlotVersion:      target.Version,
			IssuedAt:         now,
		},
	}, nil
}

func (v *Validator) checkRequired(req Request) error {
	if err := checkStruct(v.validate, req); err != nil {
		return err
	}
	if req.SlotID != "" {
		return nil
	}

	switch {
	case req.StartTime == "":
		return &MissingDataError{Fields: []FieldError{{Field: "startTime", Tag: "required", Message: "startTime is required"}}}
	case req.EndTime == "":
		return &MissingDataError{Fields: []FieldError{{Field: "endTime", Tag: "required", Message: "endTime is required"}}}
	case req.StartTime >= req.EndTime:
		return &MissingDataError{Fields: []FieldError{{Field: "endTime", Tag: "window", Message: "endTime must be after startTime"}}}
	}
	return nil
}

// findTarget selects the slot by id, or else by exact window.
func findTarget(items []availability.SlotAvailability, req Request) (availability.SlotAvailability, bool) {
	want := slot.Window{Start: req.StartTime, End: req.EndTime}
	for _, it := range items {
		if req.SlotID != "" {
			if it.ID == req.SlotID {
				return it, true
			}
			continue
		}
		if it.Window() == want && it.IsAvailable {
			return it, true
		}
	}

	// Report an exact-window match that exists but is taken as unavailable.
	if req.SlotID == "" {
		for _, it := range items {
			if it.Window() == want {
				return it, true
			}
		}
	}
	return availability.SlotAvailability{}, false
}
