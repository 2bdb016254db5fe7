package commands

import (
	"errors"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/guard"
)

var (
	ErrGenerateBatchPlanCommandIsNotConstructed = errors.New(
		"GenerateBatchPlanCommand must be created via NewGenerateBatchPlanCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// GenerateBatchPlanCommand requests one merged collection plan covering a
// batch of orders. Manual plans among the batch are preserved verbatim;
// plans are generated only for the remaining orders. The optional start
// position anchors route-cost tie-breaking and sequencing.
type GenerateBatchPlanCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	orderIDs []kernel.UUID
	start    *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewGenerateBatchPlanCommand creates a validated command.
func NewGenerateBatchPlanCommand(
	tenantID kernel.UUID,
	orderIDs []kernel.UUID,
	start *kernel.GeoPoint,
) (GenerateBatchPlanCommand, error) {
	cmd := GenerateBatchPlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderIDs(orderIDs),
		cmd.setStart(start),
	); err != nil {
		return GenerateBatchPlanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateBatchPlanCommand) Validate() error {
	return c.guard.Validate(ErrGenerateBatchPlanCommandIsNotConstructed)
}

// TenantID returns the tenant scope of the request.
func (c GenerateBatchPlanCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderIDs returns the orders to plan for, in request order.
func (c GenerateBatchPlanCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// Start returns the courier's position, or nil if unknown.
func (c GenerateBatchPlanCommand) Start() *kernel.GeoPoint {
	return c.start
}

func (c *GenerateBatchPlanCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *GenerateBatchPlanCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = orderIDs
	return nil
}

func (c *GenerateBatchPlanCommand) setStart(start *kernel.GeoPoint) error {
	if start == nil {
		return nil
	}
	if err := start.Validate(); err != nil {
		return err
	}
	c.start = start
	return nil
}
