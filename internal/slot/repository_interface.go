package slot

import "context"

type Repository interface {
	Create(ctx context.Context, s *SlotDefinition) (*SlotDefinition, error)
	GetByID(ctx context.Context, id string) (*SlotDefinition, error)
	List(ctx context.Context, f Filter) ([]SlotDefinition, error)
	// Update writes s if its stored version still equals s.Version and bumps the version.
	Update(ctx context.Context, s *SlotDefinition) (*SlotDefinition, error)
	Delete(ctx context.Context, id string) error
}
