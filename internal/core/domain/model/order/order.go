package order

import (
	"errors"
	"fmt"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder factory method.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Item is one product line of an order: a product reference and a positive
// quantity to deliver.
type Item struct {
	productID kernel.UUID
	quantity  int
}

// NewItem creates a validated order item.
func NewItem(productID kernel.UUID, quantity int) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{productID: productID, quantity: quantity}, nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Order represents a customer order awaiting collection planning. It is the
// aggregate root for everything the optimizer reads and writes per order.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and tenant identifier
//   - Items, when present, each reference a product with positive quantity
//   - The collection plan is an explicit variant: absent, manual, or auto
//   - A manual plan is authoritative and is never replaced by the optimizer
//   - Can only be created through the NewOrder constructor
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tenantID scopes the order to a single tenant
	tenantID kernel.UUID

	// items are the product lines to be collected
	items []Item

	// delivery is the drop-off point (nil if unknown)
	delivery *kernel.GeoPoint

	// plan is the current collection plan variant
	plan Plan

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order with validation. The delivery point may be nil
// when the drop-off coordinates are not yet known; such orders are excluded
// from distance-based decisions. The plan expresses the order's current
// collection-plan state and defaults to AbsentPlan() for fresh orders.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	items []Item,
	delivery *kernel.GeoPoint,
	plan Plan,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setItems(items),
		o.setDelivery(delivery),
	); err != nil {
		return nil, err
	}

	o.plan = plan
	return o, nil
}

// Validate ensures the Order was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the identifier of the tenant owning the order.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// Items returns the order's product lines.
func (o *Order) Items() []Item {
	return o.items
}

// Delivery returns the drop-off point, or nil if unknown.
func (o *Order) Delivery() *kernel.GeoPoint {
	return o.delivery
}

// Plan returns the order's current collection plan variant.
func (o *Order) Plan() Plan {
	return o.plan
}

// AttachAutoPlan stores an optimizer-generated plan on the order. A manual
// plan is authoritative and cannot be replaced; attempting to do so is a
// business rule violation.
func (o *Order) AttachAutoPlan(steps []CollectionStep) error {
	if o.plan.IsManual() {
		return errs.NewValueIsInvalidErrorWithCause("collectionPlan",
			errors.New("manual plan cannot be replaced by an auto-generated one"))
	}

	o.plan = AutoPlan(steps)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	for _, item := range items {
		if err := item.productID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item quantity %d is not greater than 0", item.quantity))
		}
	}
	o.items = items
	return nil
}

func (o *Order) setDelivery(delivery *kernel.GeoPoint) error {
	if delivery == nil {
		return nil
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}
