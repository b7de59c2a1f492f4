package slot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/notify"
)

// FacilityLookup is the part of the facility service slots depend on.
type FacilityLookup interface {
	GetFacilityByID(ctx context.Context, id string) (*facility.Facility, error)
}

type Service interface {
	CreateSlot(ctx context.Context, facilityID string, req CreateSlotRequest) (*SlotDefinition, error)
	GetSlot(ctx context.Context, id string) (*SlotDefinition, error)
	ListSlots(ctx context.Context, f Filter) ([]SlotDefinition, error)
	UpdateSlot(ctx context.Context, id string, p Patch) (*SlotDefinition, error)
	DeleteSlot(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	facilities FacilityLookup
	publisher  notify.Publisher
}

func NewService(repo Repository, facilities FacilityLookup, publisher notify.Publisher) Service {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &service{
		repo:       repo,
		facilities: facilities,
		publisher:  publisher,
	}
}

func (s *service) CreateSlot(ctx context.Context, facilityID string, req CreateSlotRequest) (*SlotDefinition, error) {
	if _, err := s.facilities.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, err
	}

	def := SlotDefinition{
		ID:         uuid.NewString(),
		FacilityID: facilityID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Price:      req.Price,
		DayOfWeek:  req.DayOfWeek,
		AllDays:    req.AllDays,
		Date:       req.Date,
		IsActive:   true,
	}
	if req.IsActive != nil {
		def.IsActive = *req.IsActive
	}
	if def.AllDays && def.DayOfWeek == "" {
		def.DayOfWeek = DayAll
	}
	if err := validate(def); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, def); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &def)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, notify.OpCreated, *created)
	return created, nil
}

func (s *service) GetSlot(ctx context.Context, id string) (*SlotDefinition, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSlots(ctx context.Context, f Filter) ([]SlotDefinition, error) {
	return s.repo.List(ctx, f)
}

func (s *service) UpdateSlot(ctx context.Context, id string, p Patch) (*SlotDefinition, error) {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := p.Apply(*cur)
	if err := validate(next); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, next); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, notify.OpUpdated, *updated)
	return updated, nil
}

func (s *service) DeleteSlot(ctx context.Context, id string) error {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, notify.OpDeleted, *cur)
	return nil
}

func (s *service) checkDuplicate(ctx context.Context, def SlotDefinition) error {
	if !def.IsActive {
		return nil
	}

	existing, err := s.repo.List(ctx, Filter{FacilityID: def.FacilityID, ActiveOnly: true})
	if err != nil {
		return err
	}
	for _, o := range existing {
		if o.ID != def.ID && o.Window() == def.Window() && o.SameApplicability(def) {
			return ErrSlotDuplicate
		}
	}
	return nil
}

func (s *service) publish(ctx context.Context, op notify.Op, def SlotDefinition) {
	s.publisher.Publish(ctx, notify.Change{
		Collection: notify.CollectionTimeSlots,
		Op:         op,
		ID:         def.ID,
		FacilityID: def.FacilityID,
		Date:       def.Date,
	})
}

func validate(def SlotDefinition) error {
	if !ValidClock(def.StartTime) || !ValidClock(def.EndTime) {
		return fmt.Errorf("%w: times must be HH:MM", ErrSlotInvalid)
	}
	if def.StartTime >= def.EndTime {
		return fmt.Errorf("%w: start time must be before end time", ErrSlotInvalid)
	}
	if def.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrSlotInvalid)
	}
	if def.AllDays == (def.Date != "") {
		return fmt.Errorf("%w: set exactly one of allDays or date", ErrSlotInvalid)
	}
	if def.Date != "" && !ValidDate(def.Date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrSlotInvalid)
	}
	if def.DayOfWeek != "" && def.DayOfWeek != DayAll && !validWeekday(def.DayOfWeek) {
		return fmt.Errorf("%w: unknown day of week %q", ErrSlotInvalid, def.DayOfWeek)
	}
	return nil
}

func validWeekday(d string) bool {
	switch strings.ToLower(d) {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
