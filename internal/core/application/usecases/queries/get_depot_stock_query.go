package queries

import (
	"errors"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/guard"
)

var ErrGetDepotStockQueryIsNotConstructed = errors.New(
	"GetDepotStockQuery must be created via NewGetDepotStockQuery constructor",
)

// GetDepotStockQuery retrieves the tenant's available stock grouped by depot.
type GetDepotStockQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDepotStockQuery creates a validated query.
func NewGetDepotStockQuery(tenantID kernel.UUID) (GetDepotStockQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetDepotStockQuery{}, err
	}

	return GetDepotStockQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDepotStockQuery) Validate() error {
	return q.guard.Validate(ErrGetDepotStockQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the request.
func (q GetDepotStockQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// DepotStockResponse is one positive stock entry in the read model.
type DepotStockResponse struct {
	DepotID     kernel.UUID
	DepotName   string
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
}
