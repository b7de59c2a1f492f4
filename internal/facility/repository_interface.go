package facility

import "context"

type Repository interface {
	Create(ctx context.Context, f *Facility) (*Facility, error)
	GetAll(ctx context.Context) ([]Facility, error)
	GetByID(ctx context.Context, id string) (*Facility, error)
}
