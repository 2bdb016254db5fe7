package queries

import (
	"context"

	"smartdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMapDataQueryHandler reads located depots and couriers directly from the
// database for map display. Entities without coordinates are excluded.
type GetMapDataQueryHandler struct {
	db *gorm.DB
}

// NewGetMapDataQueryHandler creates a handler for map data queries.
// Requires a GORM database connection for query execution.
func NewGetMapDataQueryHandler(db *gorm.DB) GetMapDataQueryHandler {
	return GetMapDataQueryHandler{db: db}
}

// Handle returns the tenant's located depots and couriers sorted by name.
func (h GetMapDataQueryHandler) Handle(
	ctx context.Context,
	query GetMapDataQuery,
) (MapDataResponse, error) {
	if err := query.Validate(); err != nil {
		return MapDataResponse{}, err
	}

	depots, err := h.mapPoints(ctx, `
		SELECT id, name, latitude, longitude
		FROM depots
		WHERE tenant_id = ?
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		ORDER BY name
	`, query.TenantID())
	if err != nil {
		return MapDataResponse{}, err
	}

	couriers, err := h.mapPoints(ctx, `
		SELECT id, name, latitude, longitude
		FROM couriers
		WHERE tenant_id = ?
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		ORDER BY name
	`, query.TenantID())
	if err != nil {
		return MapDataResponse{}, err
	}

	return MapDataResponse{Depots: depots, Couriers: couriers}, nil
}

func (h *GetMapDataQueryHandler) mapPoints(
	ctx context.Context,
	sql string,
	tenantID kernel.UUID,
) ([]MapPointResponse, error) {
	points := make([]MapPointResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, tenantID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point MapPointResponse
		var id uuid.UUID
		var lat, lon float64

		if err = rows.Scan(&id, &point.Name, &lat, &lon); err != nil {
			return nil, err
		}

		if point.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if point.Location, err = kernel.NewGeoPoint(lat, lon); err != nil {
			return nil, err
		}

		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
