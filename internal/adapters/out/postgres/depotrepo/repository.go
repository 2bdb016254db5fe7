package depotrepo

import (
	"context"

	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDepotRepository implements ports.DepotRepository using GORM.
type GormDepotRepository struct {
	db *gorm.DB
}

// NewGormDepotRepository creates a new GORM depot repository.
func NewGormDepotRepository(db *gorm.DB) *GormDepotRepository {
	return &GormDepotRepository{db: db}
}

// GetByIDs retrieves depots by identifier, tenant-scoped. Unknown
// identifiers are skipped.
func (r *GormDepotRepository) GetByIDs(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) ([]*depot.Depot, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []DepotDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "id IN ? AND tenant_id = ?", raw, tenantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	depots := make([]*depot.Depot, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		depots = append(depots, d)
	}

	return depots, nil
}

// FindAvailableStock returns positive-quantity stock entries for the given
// products across the tenant's depots. Rows without a depot reference never
// appear. Results are ordered by row id so candidate enumeration is
// deterministic.
func (r *GormDepotRepository) FindAvailableStock(
	ctx context.Context,
	tenantID kernel.UUID,
	productIDs []kernel.UUID,
) ([]depot.StockLevel, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.product_id,
			p.name,
			s.depot_id,
			s.quantity
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		JOIN depots d ON d.id = s.depot_id
		WHERE d.tenant_id = ?
		  AND s.quantity > 0
		  AND s.product_id IN ?
		ORDER BY s.id
	`, tenantID.Bytes(), raw).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]depot.StockLevel, 0)
	for rows.Next() {
		var productID, depotID uuid.UUID
		var productName string
		var quantity int

		if err = rows.Scan(&productID, &productName, &depotID, &quantity); err != nil {
			return nil, err
		}

		pid, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		did, idErr := kernel.UUIDFromBytes(depotID[:])
		if idErr != nil {
			return nil, idErr
		}

		entry, entryErr := depot.NewStockLevel(pid, productName, did, quantity)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
