package queries

import (
	"errors"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/guard"
)

var ErrGetMapDataQueryIsNotConstructed = errors.New(
	"GetMapDataQuery must be created via NewGetMapDataQuery constructor",
)

// GetMapDataQuery retrieves the tenant's located depots and couriers for
// map display.
type GetMapDataQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMapDataQuery creates a validated query.
func NewGetMapDataQuery(tenantID kernel.UUID) (GetMapDataQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetMapDataQuery{}, err
	}

	return GetMapDataQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMapDataQuery) Validate() error {
	return q.guard.Validate(ErrGetMapDataQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the request.
func (q GetMapDataQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// MapPointResponse is one located entity on the map.
type MapPointResponse struct {
	ID       kernel.UUID
	Name     string
	Location kernel.GeoPoint
}

// MapDataResponse groups the map read model by entity kind.
type MapDataResponse struct {
	Depots   []MapPointResponse
	Couriers []MapPointResponse
}
