package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/listeners"
	"garment-oms/internal/repositories"
	"garment-oms/internal/services"
	"garment-oms/internal/timeline"
	"garment-oms/pkg/config"
	"garment-oms/pkg/eventbus"
	"garment-oms/pkg/middleware"
	"garment-oms/pkg/service"
	"garment-oms/pkg/websocket"
)

// InitRouter builds the dependency graph and mounts every route group under
// /api. Writes require auth; company, client, product and order mutations
// additionally require the admin role.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	pipeline := timeline.Default()

	// Repositories.
	companyRepo := repositories.NewCompanyRepository(dbConn)
	clientRepo := repositories.NewClientRepository(dbConn)
	productRepo := repositories.NewProductRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	complaintRepo := repositories.NewComplaintRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Services.
	companyService := services.NewCompanyService(companyRepo, logger)
	clientService := services.NewClientService(clientRepo, companyRepo, logger)
	productService := services.NewProductService(productRepo, companyRepo, logger)
	orderService := services.NewOrderService(
		orderRepo, companyRepo, clientRepo, productRepo,
		pipeline, bus, cacheRepo, logger, time.Now,
	)
	boardService := services.NewBoardService(
		orderRepo, pipeline, cacheRepo, logger,
		cfg.Timeline.RetentionWindow, cfg.Timeline.BoardCacheTTL, time.Now,
	)
	complaintService := services.NewComplaintService(complaintRepo, orderRepo, logger, time.Now)
	dashboardService := services.NewDashboardService(
		dashboardRepo, orderRepo, complaintRepo, pipeline, logger, time.Now,
	)
	reportService := services.NewReportService(orderRepo, pipeline, logger, time.Now)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)

	// Listeners.
	listeners.NewNotificationListener(hub, logger).Register(bus)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runCompanyRouter(secureGroup, companyService, logger, authMW)
	runClientRouter(secureGroup, clientService, logger, authMW)
	runProductRouter(secureGroup, productService, logger, authMW)
	runOrderRouter(secureGroup, orderService, logger, authMW)
	runComplaintRouter(secureGroup, complaintService, logger, authMW)
	runBoardRouter(secureGroup, boardService, logger)
	runDashboardRouter(secureGroup, dashboardService, logger, authMW)
	runReportRouter(secureGroup, reportService, logger, authMW)
	runWebSocketRouter(api, hub, jwtSvc, logger)
}
