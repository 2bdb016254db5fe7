// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Plan kind column values.
const (
	planKindAbsent = "absent"
	planKindManual = "manual"
	planKindAuto   = "auto"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The collection plan is stored as a JSON snapshot next to an explicit kind
// column; a legacy row with a non-empty plan and no kind is read as manual.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;index"`
	DeliveryLatitude  *float64
	DeliveryLongitude *float64
	PlanKind          string         `gorm:"type:varchar(10);default:absent"`
	CollectionPlan    string         `gorm:"type:text"`
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one product line of an order.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	dto := OrderDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: aggregate.TenantID().Bytes(),
		PlanKind: planKindAbsent,
	}

	if delivery := aggregate.Delivery(); delivery != nil {
		lat, lon := delivery.Lat(), delivery.Lon()
		dto.DeliveryLatitude = &lat
		dto.DeliveryLongitude = &lon
	}

	switch aggregate.Plan().Kind() {
	case order.PlanManual:
		dto.PlanKind = planKindManual
	case order.PlanAuto:
		dto.PlanKind = planKindAuto
	case order.PlanAbsent:
	}
	if !aggregate.Plan().IsAbsent() {
		snapshot, err := order.EncodePlanSnapshot(aggregate.Plan().Steps())
		if err != nil {
			return OrderDTO{}, err
		}
		dto.CollectionPlan = snapshot
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}

	return dto, nil
}

// toDomain converts a database DTO to an order aggregate. An unparsable plan
// snapshot degrades to an absent plan so the order routes to regeneration
// instead of failing the read.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var delivery *kernel.GeoPoint
	if dto.DeliveryLatitude != nil && dto.DeliveryLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DeliveryLatitude, *dto.DeliveryLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		delivery = &point
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.NewOrder(id, tenantID, items, delivery, planFromDTO(dto))
}

func planFromDTO(dto OrderDTO) order.Plan {
	if dto.CollectionPlan == "" {
		return order.AbsentPlan()
	}

	steps, err := order.DecodePlanSnapshot(dto.CollectionPlan)
	if err != nil || len(steps) == 0 {
		return order.AbsentPlan()
	}

	switch dto.PlanKind {
	case planKindAuto:
		return order.AutoPlan(steps)
	default:
		// legacy rows carry a plan without a kind; a stored plan not marked
		// auto is authoritative
		return order.ManualPlan(steps)
	}
}
