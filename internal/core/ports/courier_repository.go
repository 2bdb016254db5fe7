// Package ports defines the contracts between the application core and its
// infrastructure adapters: repositories, the transactional unit of work, and
// the external route estimator. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"

	"smartdelivery/internal/core/domain/model/courier"
	"smartdelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the read contract for couriers eligible for
// recommendation.
type CourierRepository interface {
	// GetActiveWithPosition retrieves the tenant's active couriers that
	// have a known position, together with their active-order counts.
	// Results are ordered by name, then id, so that recommendation ties
	// resolve deterministically.
	GetActiveWithPosition(ctx context.Context, tenantID kernel.UUID) ([]*courier.Courier, error)
}
