package ports

import (
	"context"

	"github.com/aretw0/logicx/pkg/domain"
)

// ProjectStore defines the interface for keeping named project snapshots.
// Implementations must isolate stored snapshots from later mutation of the
// project passed to Save, and from mutation of projects returned by Load.
type ProjectStore interface {
	// Save persists the project under name, replacing any previous snapshot.
	Save(ctx context.Context, name string, p *domain.Project) error

	// Load retrieves the snapshot stored under name.
	// Returns domain.ErrProjectNotFound if there is none.
	Load(ctx context.Context, name string) (*domain.Project, error)

	// Delete removes the snapshot. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
