package booking

import (
	"context"
	"errors"

	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
	"github.com/CamiloTriana75/ProyectoElden/internal/metrics"
	"github.com/CamiloTriana75/ProyectoElden/internal/notify"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
)

// Committer performs the conditional reservation write.
type Committer interface {
	CreateIfAvailable(ctx context.Context, a reservation.Approval) (*reservation.Reservation, error)
}

type Service interface {
	CreateReservation(ctx context.Context, req Request) (*reservation.Reservation, error)
}

type service struct {
	validator *Validator
	committer Committer
	publisher notify.Publisher
}

func NewService(validator *Validator, committer Committer, publisher notify.Publisher) Service {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &service{
		validator: validator,
		committer: committer,
		publisher: publisher,
	}
}

func (s *service) CreateReservation(ctx context.Context, req Request) (*reservation.Reservation, error) {
	approval, err := s.validator.Validate(ctx, req)
	if err != nil {
		s.reject(req, err)
		return nil, err
	}

	res, err := s.committer.CreateIfAvailable(ctx, *approval)
	if err != nil {
		s.reject(req, err)
		return nil, err
	}

	metrics.RecordReservationCreated()
	logger.Info("reservation created",
		"reservation_id", res.ID, "requester_id", res.RequesterID, "facility_id", res.FacilityID,
		"date", res.Date, "start_time", res.StartTime, "end_time", res.EndTime)

	s.publisher.Publish(ctx, notify.Change{
		Collection: notify.CollectionReservations,
		Op:         notify.OpCreated,
		ID:         res.ID,
		FacilityID: res.FacilityID,
		Date:       res.Date,
	})
	return res, nil
}

func (s *service) reject(req Request, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		return
	}
	metrics.RecordRejection(reason)
	logger.Debug("booking rejected", "facility_id", req.FacilityID, "date", req.Date, "reason", reason)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingData):
		return "missing_data"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, ErrOutsideBusinessHours):
		return "outside_business_hours"
	case errors.Is(err, reservation.ErrDuplicateReservation):
		return "duplicate"
	case errors.Is(err, reservation.ErrApprovalStale):
		return "approval_stale"
	case errors.Is(err, facility.ErrFacilityNotFound):
		return "facility_not_found"
	}
	return ""
}
