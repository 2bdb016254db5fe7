package queries

import (
	"context"

	"smartdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDepotStockQueryHandler reads available stock directly from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDepotStockQueryHandler struct {
	db *gorm.DB
}

// NewGetDepotStockQueryHandler creates a handler for depot stock queries.
// Requires a GORM database connection for query execution.
func NewGetDepotStockQueryHandler(db *gorm.DB) GetDepotStockQueryHandler {
	return GetDepotStockQueryHandler{db: db}
}

// Handle returns the tenant's positive stock entries ordered by depot and
// product name. Entries without a depot reference never appear.
func (h GetDepotStockQueryHandler) Handle(
	ctx context.Context,
	query GetDepotStockQuery,
) ([]DepotStockResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]DepotStockResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			p.id,
			p.name,
			s.quantity
		FROM stock_levels s
		JOIN depots d ON d.id = s.depot_id
		JOIN products p ON p.id = s.product_id
		WHERE d.tenant_id = ?
		  AND s.quantity > 0
		ORDER BY d.name, p.name
	`, query.TenantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry DepotStockResponse
		var depotID, productID uuid.UUID

		err = rows.Scan(
			&depotID,
			&entry.DepotName,
			&productID,
			&entry.ProductName,
			&entry.Quantity,
		)
		if err != nil {
			return nil, err
		}

		if entry.DepotID, err = kernel.UUIDFromBytes(depotID[:]); err != nil {
			return nil, err
		}
		if entry.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
