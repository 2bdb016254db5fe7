package ports

import (
	"context"

	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"
)

// DepotRepository defines the read contract for depots and their stock.
type DepotRepository interface {
	// GetByIDs retrieves depots by their identifiers, tenant-scoped.
	// Unknown identifiers are skipped.
	GetByIDs(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*depot.Depot, error)

	// FindAvailableStock returns positive-quantity stock entries for the
	// given products across the tenant's depots. Entries without a depot
	// reference or with non-positive quantity are never returned.
	FindAvailableStock(ctx context.Context, tenantID kernel.UUID, productIDs []kernel.UUID) ([]depot.StockLevel, error)
}
