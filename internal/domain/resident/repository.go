package resident

import "context"

type Repository interface {
	Create(ctx context.Context, resident *Resident) error
	// FindByID returns nil (not an error) when the resident does not exist.
	FindByID(ctx context.Context, id uint) (*Resident, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*Resident, error)
	// FindActiveIDsByScope resolves an audience: every resident with an
	// active membership in the given organizational scope, deduplicated.
	FindActiveIDsByScope(ctx context.Context, scopeID uint) ([]uint, error)
}
