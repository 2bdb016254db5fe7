package cmd

import (
	"context"
	"log/slog"

	"smartdelivery/internal/adapters/out/osrm"
	"smartdelivery/internal/adapters/out/postgres"
	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/application/usecases/queries"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	osrmClient *osrm.Client
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		osrmClient: osrm.NewClient(config.OsrmBaseURL, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateGenerateCollectionPlanCommandHandler() commands.GenerateCollectionPlanCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateCollectionPlanCommandHandler(f, c.osrmClient, c.logger)
}

func (c *CompositionRoot) CreateGenerateBatchPlanCommandHandler() commands.GenerateBatchPlanCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateBatchPlanCommandHandler(f, c.osrmClient, c.logger)
}

func (c *CompositionRoot) CreateRecommendCouriersQueryHandler() queries.RecommendCouriersQueryHandler {
	return queries.NewRecommendCouriersQueryHandler(
		&c.uowFactory,
		c.CreateCollectionPlanProvider(),
		c.osrmClient,
		c.config.OrderPenaltyMinutes,
	)
}

func (c *CompositionRoot) CreateGetDepotStockQueryHandler() queries.GetDepotStockQueryHandler {
	return queries.NewGetDepotStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMapDataQueryHandler() queries.GetMapDataQueryHandler {
	return queries.NewGetMapDataQueryHandler(c.gormDB)
}

// CreateCollectionPlanProvider adapts the single-order planning command to
// the recommendation query's plan source. Recommendation has no courier
// start position yet, so plans are generated without one.
func (c *CompositionRoot) CreateCollectionPlanProvider() queries.CollectionPlanProvider {
	handler := c.CreateGenerateCollectionPlanCommandHandler()
	return &planProviderAdapter{handler: handler}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.osrmClient, c.logger)
}

type planProviderAdapter struct {
	handler commands.GenerateCollectionPlanCommandHandler
}

func (p *planProviderAdapter) PlanForOrder(
	ctx context.Context,
	tenantID, orderID kernel.UUID,
) ([]order.CollectionStep, error) {
	cmd, err := commands.NewGenerateCollectionPlanCommand(tenantID, orderID, nil)
	if err != nil {
		return nil, err
	}

	result, err := p.handler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return result.Steps, nil
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}
