package courierrepo

import (
	"context"

	"smartdelivery/internal/core/domain/model/courier"
	"smartdelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// GetActiveWithPosition retrieves the tenant's active couriers that have a
// known position. Ordered by name then id so recommendation ties resolve
// deterministically.
func (r *GormCourierRepository) GetActiveWithPosition(
	ctx context.Context,
	tenantID kernel.UUID,
) ([]*courier.Courier, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active AND latitude IS NOT NULL AND longitude IS NOT NULL",
			tenantID.Bytes()).
		Order("name, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
