package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"garment-oms/internal/migrations"
	"garment-oms/internal/routes"
	"garment-oms/pkg/api"
	"garment-oms/pkg/config"
	"garment-oms/pkg/customvalidator"
	"garment-oms/pkg/database/postgresql"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/eventbus"
	applogger "garment-oms/pkg/logger"
	"garment-oms/pkg/service"
	"garment-oms/pkg/utils"
	"garment-oms/pkg/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found")
	}

	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err))
			}
			return err
		},
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("custom validation registration failed", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	dbConn, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("redis connection failed", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	bus := eventbus.New(logger)
	hub := websocket.NewHub(logger)
	go hub.Run()

	routes.InitRouter(e, dbConn, redisClient, jwtSvc, hub, bus, logger, cfg)

	logger.Info("server listening", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
