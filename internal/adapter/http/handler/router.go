package handler

import (
	"storefront-gateway/internal/adapter/http/middleware"
	redisStore "storefront-gateway/internal/adapter/storage/redis"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	CatalogSvc     ports.CatalogService
	ConversionSvc  ports.ConversionService
	SettlementSvc  ports.SettlementService
	AuditSvc       ports.AuditService         // nil = audit logging disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        *observability.Metrics // nil = no /metrics endpoint
	ServiceName    string
	Version        string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware(deps.ServiceName))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/", Root(deps.ServiceName, deps.Version))
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", rl("auth_login"), authHandler.Login)

	conversionHandler := NewConversionHandler(deps.ConversionSvc)
	v1.GET("/conversion", rl("conversion"), conversionHandler.Convert)

	contactHandler := NewContactHandler(deps.Logger)
	v1.POST("/contact", rl("contact"), contactHandler.Submit)

	// --- Bearer-authenticated catalog proxy ---
	catalogHandler := NewCatalogHandler(deps.CatalogSvc)
	catalog := v1.Group("/catalog", middleware.RequireBearer(deps.AuthSvc), rl("catalog"))
	{
		catalog.GET("/products", catalogHandler.ListProducts)
		catalog.GET("/products/:id", catalogHandler.GetProduct)
		catalog.PUT("/products/:id/sold", catalogHandler.MarkProductSold)
		catalog.GET("/branches", catalogHandler.ListBranches)
		catalog.GET("/sellers", catalogHandler.ListSellers)
		catalog.GET("/sellers/:id", catalogHandler.GetSeller)
		catalog.POST("/orders", catalogHandler.CreateUpstreamOrder)
	}

	// --- Orders: an absent credential is rejected by the settlement service ---
	orderHandler := NewOrderHandler(deps.SettlementSvc)
	v1.POST("/orders", middleware.OptionalBearer(deps.AuthSvc), rl("orders"), orderHandler.PlaceOrder)

	return r
}
