// Package http is the inbound HTTP adapter. It translates the REST surface
// into application commands and queries; all business decisions stay behind
// the handlers it calls. Every business route is tenant-scoped through the
// tenantId query parameter (or the X-Tenant-ID header).
package http

import (
	"errors"
	"net/http"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/application/usecases/queries"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	generatePlanHandler      commands.GenerateCollectionPlanCommandHandler
	generateBatchPlanHandler commands.GenerateBatchPlanCommandHandler

	// Query handlers
	recommendCouriersHandler queries.RecommendCouriersQueryHandler
	getDepotStockHandler     queries.GetDepotStockQueryHandler
	getMapDataHandler        queries.GetMapDataQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	generatePlanHandler commands.GenerateCollectionPlanCommandHandler,
	generateBatchPlanHandler commands.GenerateBatchPlanCommandHandler,
	recommendCouriersHandler queries.RecommendCouriersQueryHandler,
	getDepotStockHandler queries.GetDepotStockQueryHandler,
	getMapDataHandler queries.GetMapDataQueryHandler,
) *Server {
	return &Server{
		generatePlanHandler:      generatePlanHandler,
		generateBatchPlanHandler: generateBatchPlanHandler,
		recommendCouriersHandler: recommendCouriersHandler,
		getDepotStockHandler:     getDepotStockHandler,
		getMapDataHandler:        getMapDataHandler,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders/:orderId/collection-plan", s.GenerateCollectionPlan)
	api.POST("/collection-plans", s.GenerateBatchPlan)
	api.GET("/orders/:orderId/courier-recommendations", s.RecommendCouriers)
	api.GET("/depot-stock", s.GetDepotStock)
	api.GET("/map-data", s.GetMapData)
}

// Error is the JSON error envelope for all failure responses.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StartPosition is an optional courier start location in request bodies.
type StartPosition struct {
	Latitude  *float64 `json:"startLatitude"`
	Longitude *float64 `json:"startLongitude"`
}

// BatchPlanRequest is the body of POST /api/v1/collection-plans.
type BatchPlanRequest struct {
	OrderIDs []string `json:"orderIds"`
	StartPosition
}

// StepItem is one product allocation inside a collection step.
type StepItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	OrderID     string `json:"orderId,omitempty"`
}

// CollectionStep is one depot visit in a plan response.
type CollectionStep struct {
	DepotID   string     `json:"depotId"`
	DepotName string     `json:"depotName"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Items     []StepItem `json:"items"`
	OrderIDs  []string   `json:"orderIds"`
	Step      int        `json:"step"`
}

// CollectionPlan is the response of the single-order planning endpoint.
type CollectionPlan struct {
	OrderID     string           `json:"orderId"`
	TotalDepots int              `json:"totalDepots"`
	ManualPlan  bool             `json:"manualPlan"`
	Steps       []CollectionStep `json:"steps"`
}

// BatchPlan is the response of the batch planning endpoint.
type BatchPlan struct {
	TotalDepots int              `json:"totalDepots"`
	TotalOrders int              `json:"totalOrders"`
	ManualCount int              `json:"manualCount"`
	AutoCount   int              `json:"autoCount"`
	Steps       []CollectionStep `json:"steps"`
}

// CourierRecommendation is one ranked courier in the recommendation response.
type CourierRecommendation struct {
	CourierID        string  `json:"courierId"`
	CourierName      string  `json:"courierName"`
	DistanceKm       float64 `json:"distanceKm"`
	EstimatedMinutes float64 `json:"estimatedMinutes"`
	ActiveOrders     int     `json:"activeOrders"`
	Score            float64 `json:"score"`
	Rank             int     `json:"rank"`
	Recommended      bool    `json:"recommended"`
}

// DepotStockEntry is one positive stock row in the stock response.
type DepotStockEntry struct {
	DepotID     string `json:"depotId"`
	DepotName   string `json:"depotName"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// MapPoint is one located entity in the map response.
type MapPoint struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapData groups the map response by entity kind.
type MapData struct {
	Depots   []MapPoint `json:"depots"`
	Couriers []MapPoint `json:"couriers"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GenerateCollectionPlan handles POST /api/v1/orders/:orderId/collection-plan.
func (s *Server) GenerateCollectionPlan(ctx echo.Context) error {
	tenantID, err := tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing tenantId")
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body StartPosition
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	start, err := startPoint(body)
	if err != nil {
		return badRequest(ctx, "Invalid start position: "+err.Error())
	}

	cmd, err := commands.NewGenerateCollectionPlanCommand(tenantID, orderID, start)
	if err != nil {
		return badRequest(ctx, "Invalid plan request: "+err.Error())
	}

	result, err := s.generatePlanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err, "Failed to generate collection plan")
	}

	return ctx.JSON(http.StatusOK, CollectionPlan{
		OrderID:     result.OrderID.String(),
		TotalDepots: result.TotalDepots,
		ManualPlan:  result.ManualPlan,
		Steps:       stepsResponse(result.Steps),
	})
}

// GenerateBatchPlan handles POST /api/v1/collection-plans.
func (s *Server) GenerateBatchPlan(ctx echo.Context) error {
	tenantID, err := tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing tenantId")
	}

	var body BatchPlanRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	start, err := startPoint(body.StartPosition)
	if err != nil {
		return badRequest(ctx, "Invalid start position: "+err.Error())
	}

	cmd, err := commands.NewGenerateBatchPlanCommand(tenantID, orderIDs, start)
	if err != nil {
		return badRequest(ctx, "Invalid batch plan request: "+err.Error())
	}

	result, err := s.generateBatchPlanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err, "Failed to generate batch plan")
	}

	return ctx.JSON(http.StatusOK, BatchPlan{
		TotalDepots: result.TotalDepots,
		TotalOrders: result.TotalOrders,
		ManualCount: result.ManualCount,
		AutoCount:   result.AutoCount,
		Steps:       stepsResponse(result.MergedSteps),
	})
}

// RecommendCouriers handles GET /api/v1/orders/:orderId/courier-recommendations.
func (s *Server) RecommendCouriers(ctx echo.Context) error {
	tenantID, err := tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing tenantId")
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewRecommendCouriersQuery(tenantID, orderID)
	if err != nil {
		return badRequest(ctx, "Invalid recommendation request: "+err.Error())
	}

	recommendations, err := s.recommendCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err, "Failed to recommend couriers")
	}

	response := make([]CourierRecommendation, len(recommendations))
	for i, rec := range recommendations {
		response[i] = CourierRecommendation{
			CourierID:        rec.CourierID.String(),
			CourierName:      rec.CourierName,
			DistanceKm:       rec.DistanceKm,
			EstimatedMinutes: rec.EstimatedMinutes,
			ActiveOrders:     rec.ActiveOrders,
			Score:            rec.Score,
			Rank:             rec.Rank,
			Recommended:      rec.Recommended,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDepotStock handles GET /api/v1/depot-stock.
func (s *Server) GetDepotStock(ctx echo.Context) error {
	tenantID, err := tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing tenantId")
	}

	query, err := queries.NewGetDepotStockQuery(tenantID)
	if err != nil {
		return badRequest(ctx, "Invalid stock request: "+err.Error())
	}

	entries, err := s.getDepotStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err, "Failed to retrieve depot stock")
	}

	response := make([]DepotStockEntry, len(entries))
	for i, entry := range entries {
		response[i] = DepotStockEntry{
			DepotID:     entry.DepotID.String(),
			DepotName:   entry.DepotName,
			ProductID:   entry.ProductID.String(),
			ProductName: entry.ProductName,
			Quantity:    entry.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMapData handles GET /api/v1/map-data.
func (s *Server) GetMapData(ctx echo.Context) error {
	tenantID, err := tenantID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing tenantId")
	}

	query, err := queries.NewGetMapDataQuery(tenantID)
	if err != nil {
		return badRequest(ctx, "Invalid map request: "+err.Error())
	}

	data, err := s.getMapDataHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err, "Failed to retrieve map data")
	}

	return ctx.JSON(http.StatusOK, MapData{
		Depots:   mapPoints(data.Depots),
		Couriers: mapPoints(data.Couriers),
	})
}

// tenantID extracts the tenant scope from the query string or the
// X-Tenant-ID header.
func tenantID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.QueryParam("tenantId")
	if raw == "" {
		raw = ctx.Request().Header.Get("X-Tenant-ID")
	}
	return kernel.UUIDFromString(raw)
}

func startPoint(body StartPosition) (*kernel.GeoPoint, error) {
	if body.Latitude == nil || body.Longitude == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func stepsResponse(steps []order.CollectionStep) []CollectionStep {
	response := make([]CollectionStep, len(steps))
	for i, step := range steps {
		items := make([]StepItem, len(step.Items))
		for j, item := range step.Items {
			items[j] = StepItem{
				ProductID:   item.ProductID.String(),
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
			}
			if !item.OrderID.IsZero() {
				items[j].OrderID = item.OrderID.String()
			}
		}

		orderIDs := make([]string, len(step.OrderIDs))
		for j, id := range step.OrderIDs {
			orderIDs[j] = id.String()
		}

		response[i] = CollectionStep{
			DepotID:   step.DepotID.String(),
			DepotName: step.DepotName,
			Items:     items,
			OrderIDs:  orderIDs,
			Step:      step.Index,
		}
		if step.Location != nil {
			lat, lon := step.Location.Lat(), step.Location.Lon()
			response[i].Latitude = &lat
			response[i].Longitude = &lon
		}
	}
	return response
}

func mapPoints(points []queries.MapPointResponse) []MapPoint {
	response := make([]MapPoint, len(points))
	for i, point := range points {
		response[i] = MapPoint{
			ID:        point.ID.String(),
			Name:      point.Name,
			Latitude:  point.Location.Lat(),
			Longitude: point.Location.Lon(),
		}
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// failure maps application errors to HTTP statuses: missing aggregates to
// 404, validation failures to 400, everything else to 500.
func failure(ctx echo.Context, err error, message string) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: notFound.Error(),
		})
	}

	var invalid *errs.ValueIsInvalidError
	var outOfRange *errs.ValueIsOutOfRangeError
	var required *errs.ValueIsRequiredError
	if errors.As(err, &invalid) || errors.As(err, &outOfRange) || errors.As(err, &required) {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
