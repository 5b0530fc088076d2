package orders

import "context"

// Store is the persistence primitive the lifecycle engine depends on.
// Both operations treat the order collection as one snapshot: SaveAll fully
// replaces prior content, and callers own the load-mutate-save cycle.
type Store interface {
	LoadAll(ctx context.Context) ([]Order, error)
	SaveAll(ctx context.Context, list []Order) error
}
