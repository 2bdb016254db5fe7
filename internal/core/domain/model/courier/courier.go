package courier

import (
	"errors"
	"fmt"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/errs"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier eligible for recommendation.
//
// Business rules:
//   - Must have a valid UUID, tenant, and non-empty name
//   - Position is optional: a courier without a known position cannot be
//     scored against a route and is skipped by the recommender
//   - ActiveOrders counts deliveries currently assigned to the courier and
//     is never negative
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// tenantID scopes the courier to a single tenant
	tenantID kernel.UUID
	// name is the courier's display name
	name string
	// position is the courier's last known location (nil if unknown)
	position *kernel.GeoPoint
	// activeOrders is the number of deliveries currently in progress
	activeOrders int
	// isConstructed guards against direct struct instantiation
	isConstructed bool
}

// NewCourier creates a validated Courier.
func NewCourier(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	position *kernel.GeoPoint,
	activeOrders int,
) (*Courier, error) {
	c := &Courier{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setName(name),
		c.setPosition(position),
		c.setActiveOrders(activeOrders),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier was created through NewCourier.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// TenantID returns the identifier of the tenant the courier works for.
func (c *Courier) TenantID() kernel.UUID {
	return c.tenantID
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Position returns the courier's last known location, or nil if unknown.
func (c *Courier) Position() *kernel.GeoPoint {
	return c.position
}

// ActiveOrders returns the number of deliveries currently assigned.
func (c *Courier) ActiveOrders() int {
	return c.activeOrders
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPosition(position *kernel.GeoPoint) error {
	if position == nil {
		return nil
	}
	if err := position.Validate(); err != nil {
		return err
	}
	c.position = position
	return nil
}

func (c *Courier) setActiveOrders(activeOrders int) error {
	if activeOrders < 0 {
		return errs.NewValueIsInvalidErrorWithCause("activeOrders",
			fmt.Errorf("%d is negative", activeOrders))
	}
	c.activeOrders = activeOrders
	return nil
}
