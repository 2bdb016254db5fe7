package commands

import (
	"errors"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/guard"
)

var ErrGenerateCollectionPlanCommandIsNotConstructed = errors.New(
	"GenerateCollectionPlanCommand must be created via NewGenerateCollectionPlanCommand constructor",
)

// GenerateCollectionPlanCommand requests a collection plan for a single
// order. The start position is the courier's current location and is
// optional; without it depot combinations are tie-broken by size only and
// steps keep their allocation order.
type GenerateCollectionPlanCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	orderID  kernel.UUID
	start    *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewGenerateCollectionPlanCommand creates a validated command.
func NewGenerateCollectionPlanCommand(
	tenantID kernel.UUID,
	orderID kernel.UUID,
	start *kernel.GeoPoint,
) (GenerateCollectionPlanCommand, error) {
	cmd := GenerateCollectionPlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setStart(start),
	); err != nil {
		return GenerateCollectionPlanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateCollectionPlanCommand) Validate() error {
	return c.guard.Validate(ErrGenerateCollectionPlanCommandIsNotConstructed)
}

// TenantID returns the tenant scope of the request.
func (c GenerateCollectionPlanCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderID returns the order to plan for.
func (c GenerateCollectionPlanCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Start returns the courier's position, or nil if unknown.
func (c GenerateCollectionPlanCommand) Start() *kernel.GeoPoint {
	return c.start
}

func (c *GenerateCollectionPlanCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *GenerateCollectionPlanCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *GenerateCollectionPlanCommand) setStart(start *kernel.GeoPoint) error {
	if start == nil {
		return nil
	}
	if err := start.Validate(); err != nil {
		return err
	}
	c.start = start
	return nil
}
