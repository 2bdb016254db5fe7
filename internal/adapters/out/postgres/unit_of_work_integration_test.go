package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "smartdelivery/internal/adapters/out/postgres"
	"smartdelivery/internal/adapters/out/postgres/orderrepo"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based unit of work with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	tenantID  kernel.UUID
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items CASCADE").Error
	suite.Require().NoError(err)

	suite.tenantID = kernel.NewUUID()
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DepotRepository())
	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommittedPlanUpdate_IsVisible() {
	ctx := context.Background()
	orderID := suite.seedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate, err := uow.OrderRepository().GetWithItems(ctx, suite.tenantID, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachAutoPlan(suite.planSteps(orderID)))
	suite.Require().NoError(uow.OrderRepository().UpdateCollectionPlan(ctx, aggregate))

	suite.Require().NoError(uow.Commit(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().
		GetWithItems(ctx, suite.tenantID, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.PlanAuto, reloaded.Plan().Kind())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RolledBackPlanUpdate_IsDiscarded() {
	ctx := context.Background()
	orderID := suite.seedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate, err := uow.OrderRepository().GetWithItems(ctx, suite.tenantID, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachAutoPlan(suite.planSteps(orderID)))
	suite.Require().NoError(uow.OrderRepository().UpdateCollectionPlan(ctx, aggregate))

	suite.Require().NoError(uow.Rollback(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().
		GetWithItems(ctx, suite.tenantID, orderID)
	suite.Require().NoError(err)
	suite.True(reloaded.Plan().IsAbsent())
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder() kernel.UUID {
	orderID := kernel.NewUUID()
	lat, lon := 34.80, 10.85

	err := suite.db.Create(&orderrepo.OrderDTO{
		ID:                orderID.Bytes(),
		TenantID:          suite.tenantID.Bytes(),
		DeliveryLatitude:  &lat,
		DeliveryLongitude: &lon,
		PlanKind:          "absent",
	}).Error
	suite.Require().NoError(err)

	return orderID
}

func (suite *UnitOfWorkIntegrationTestSuite) planSteps(orderID kernel.UUID) []order.CollectionStep {
	location, err := kernel.NewGeoPoint(34.75, 10.80)
	suite.Require().NoError(err)

	return []order.CollectionStep{{
		DepotID:   kernel.NewUUID(),
		DepotName: "Central Hub",
		Location:  &location,
		OrderIDs:  []kernel.UUID{orderID},
	}}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
