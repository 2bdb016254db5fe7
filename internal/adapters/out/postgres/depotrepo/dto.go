// Package depotrepo provides data transfer objects and mapping functions for
// depot, product, and stock persistence. Depots and stock are read-only
// inputs to the planner, so the repository exposes no write operations.
package depotrepo

import (
	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DepotDTO represents the database structure for depots. Coordinates are
// nullable: a depot without a registered position still holds stock.
type DepotDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Latitude  *float64
	Longitude *float64
}

// TableName specifies the database table name for depots.
func (DepotDTO) TableName() string {
	return "depots"
}

// ProductDTO represents the database structure for products.
type ProductDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	Name     string
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// StockLevelDTO represents one product's availability at one depot. The
// depot reference is nullable; such rows are invisible to the planner.
type StockLevelDTO struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	ProductID uuid.UUID  `gorm:"type:uuid;index"`
	DepotID   *uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
}

// TableName specifies the database table name for stock levels.
func (StockLevelDTO) TableName() string {
	return "stock_levels"
}

// toDomain converts a depot DTO to the domain entity.
func toDomain(dto DepotDTO) (*depot.Depot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return depot.NewDepot(id, tenantID, dto.Name, location)
}
