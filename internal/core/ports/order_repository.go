package ports

import (
	"context"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All reads are tenant-scoped; an order belonging to another tenant is
// indistinguishable from a missing one.
type OrderRepository interface {
	// GetWithItems retrieves an order with its product lines and stored
	// collection plan. Returns errs.ObjectNotFoundError if no order with
	// the given id exists for the tenant.
	GetWithItems(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetByIDsWithItems retrieves the given orders with their product
	// lines and stored collection plans. Unknown identifiers are skipped;
	// the result preserves the input order of the identifiers that were
	// found.
	GetByIDsWithItems(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error)

	// UpdateCollectionPlan persists the order's current plan snapshot.
	// Only the serialized plan column is written.
	UpdateCollectionPlan(ctx context.Context, aggregate *order.Order) error
}
