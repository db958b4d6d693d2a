package availability

import "context"

// Repository is the override store. There is at most one override per
// DateKey; writes are last-write-wins.
type Repository interface {
	// Get returns ErrNotFound when the date has no override.
	Get(ctx context.Context, key DateKey) (*Override, error)

	// GetByID returns ErrNotFound when no override has that id.
	GetByID(ctx context.Context, id string) (*Override, error)

	// List returns overrides in [from, to] ascending by date. Nil bounds
	// are open.
	List(ctx context.Context, from, to *DateKey) ([]Override, error)

	// Upsert replaces the whole content of the override for key, creating
	// it when absent. Writing identical content is a no-op.
	Upsert(ctx context.Context, key DateKey, in OverrideInput) (*Override, error)

	Delete(ctx context.Context, key DateKey) (bool, error)

	DeleteByID(ctx context.Context, id string) (bool, error)

	// DeleteBefore removes every override dated strictly before key.
	DeleteBefore(ctx context.Context, key DateKey) (int64, error)
}
