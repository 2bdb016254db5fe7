package depot

import (
	"errors"
	"fmt"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/errs"
)

// Domain errors for depot operations.
var (
	// ErrNameIsRequired is returned when attempting to create a depot without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDepotIsNotConstructed is returned when using an improperly initialized Depot.
	ErrDepotIsNotConstructed = errors.New("Depot must be created via NewDepot constructor")
)

// Depot represents a stock-holding location goods are collected from.
//
// Business rules:
//   - Must have a valid UUID, tenant, and non-empty name
//   - Coordinates are optional: a depot without a known position still holds
//     stock but is excluded from distance-based decisions
type Depot struct {
	// id uniquely identifies the depot
	id kernel.UUID
	// tenantID scopes the depot to a single tenant
	tenantID kernel.UUID
	// name is the human-readable depot name
	name string
	// location is the depot's position (nil if unknown)
	location *kernel.GeoPoint
	// isConstructed guards against direct struct instantiation
	isConstructed bool
}

// NewDepot creates a validated Depot. The location may be nil when the
// depot's coordinates are not registered.
func NewDepot(id kernel.UUID, tenantID kernel.UUID, name string, location *kernel.GeoPoint) (*Depot, error) {
	d := &Depot{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setName(name),
		d.setLocation(location),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Depot was created through NewDepot.
func (d *Depot) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDepotIsNotConstructed
	}
	return nil
}

// IsEqual compares two depots by their unique identifiers.
func (d *Depot) IsEqual(other *Depot) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the depot's unique identifier.
func (d *Depot) ID() kernel.UUID {
	return d.id
}

// TenantID returns the identifier of the tenant owning the depot.
func (d *Depot) TenantID() kernel.UUID {
	return d.tenantID
}

// Name returns the depot's human-readable name.
func (d *Depot) Name() string {
	return d.name
}

// Location returns the depot's position, or nil if unknown.
func (d *Depot) Location() *kernel.GeoPoint {
	return d.location
}

func (d *Depot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Depot) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	d.tenantID = tenantID
	return nil
}

func (d *Depot) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Depot) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

// StockLevel reports the quantity of one product available at one depot.
// Entries with non-positive quantity are invisible to the optimizer and must
// be filtered out before reaching it.
type StockLevel struct {
	productID   kernel.UUID
	productName string
	depotID     kernel.UUID
	quantity    int
}

// NewStockLevel creates a validated stock entry. Quantity must be positive;
// zero or negative availability carries no information for planning.
func NewStockLevel(productID kernel.UUID, productName string, depotID kernel.UUID, quantity int) (StockLevel, error) {
	if err := productID.Validate(); err != nil {
		return StockLevel{}, errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	if err := depotID.Validate(); err != nil {
		return StockLevel{}, errs.NewValueIsRequiredErrorWithCause("depotId", err)
	}
	if quantity <= 0 {
		return StockLevel{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return StockLevel{
		productID:   productID,
		productName: productName,
		depotID:     depotID,
		quantity:    quantity,
	}, nil
}

// ProductID returns the stocked product's identifier.
func (s StockLevel) ProductID() kernel.UUID {
	return s.productID
}

// ProductName returns the stocked product's display name.
func (s StockLevel) ProductName() string {
	return s.productName
}

// DepotID returns the identifier of the depot holding the stock.
func (s StockLevel) DepotID() kernel.UUID {
	return s.depotID
}

// Quantity returns the available quantity. Always positive.
func (s StockLevel) Quantity() int {
	return s.quantity
}
