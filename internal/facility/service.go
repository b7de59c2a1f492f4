package facility

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrFacilityNotFound = errors.New("facility not found")

type Service interface {
	CreateFacility(ctx context.Context, req CreateFacilityRequest) (*Facility, error)
	GetAllFacilities(ctx context.Context) ([]Facility, error)
	GetFacilityByID(ctx context.Context, id string) (*Facility, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateFacility(ctx context.Context, req CreateFacilityRequest) (*Facility, error) {
	return s.repo.Create(ctx, &Facility{
		ID:           uuid.NewString(),
		Name:         req.Name,
		SportID:      req.SportID,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
	})
}

func (s *service) GetAllFacilities(ctx context.Context) ([]Facility, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetFacilityByID(ctx context.Context, id string) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}
