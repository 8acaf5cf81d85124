package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parkit/parking-system/internal/api/handler"
	"github.com/parkit/parking-system/internal/api/middleware"
	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
)

// RouterDeps carries the already-constructed dependencies the router wires
// into handlers. Construction order (repos, services, dispatcher) is owned
// by main.
type RouterDeps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Parking    ports.ParkingService
	Auth       ports.AuthService
	Dispatcher handler.EventDispatcher
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("parking_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	parkingHandler := handler.NewParkingHandler(deps.Parking)
	gateEventHandler := handler.NewGateEventHandler(deps.Dispatcher)
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis)

	authMW := middleware.Auth(deps.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleOperator, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Parking routes (operator or admin) ---
	parking := e.Group("/v1/parking", authMW, staffOnly)
	parking.POST("/entry", parkingHandler.Entry)
	parking.POST("/exit", parkingHandler.Exit)
	parking.GET("/sessions/:vehicle_id", parkingHandler.History)

	// --- Gate event ingestion (operator or admin) ---
	gates := e.Group("/v1/gate-events", authMW, staffOnly)
	gates.POST("", gateEventHandler.Receive)
	gates.POST("/batch", gateEventHandler.ReceiveBatch)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
