package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sanadops/sanad-api/internal/config"
	domainRepo "github.com/sanadops/sanad-api/internal/domain/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/handler"
	"github.com/sanadops/sanad-api/internal/presentation/http/middleware"
	"github.com/sanadops/sanad-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Ticket   *handler.TicketHandler
	Invoice  *handler.InvoiceHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	TokenVerifier   *utils.TokenVerifier
	Cfg             *config.Config
	OrgRepo         domainRepo.OrganizationRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// All routes require an actor token from the identity service
		protected := v1.Group("")
		protected.Use(middleware.ActorMiddleware(deps.TokenVerifier))
		protected.Use(middleware.OrganizationMiddleware(deps.OrgRepo))

		// Per-organization rate limiter
		rateLimiter := middleware.NewOrgRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerTicketRoutes(protected, h, deps)
		registerInvoiceRoutes(protected, h, deps)
		registerCatalogRoutes(protected, h)
		registerCustomerRoutes(protected, h)
	}

	return router
}

func registerTicketRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	tickets := protected.Group("/tickets")
	{
		tickets.GET("", h.Ticket.List)
		// Ticket creation uses idempotency middleware to prevent duplicates
		tickets.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Ticket.Create)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.PATCH("/:id/status", h.Ticket.ChangeStatus)
		tickets.GET("/:id/logs", h.Ticket.ListLogs)
		tickets.POST("/:id/invoice", h.Invoice.CreateForTicket)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		// Payment recording uses idempotency middleware to prevent duplicates
		invoices.POST("/:id/payments", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.RecordPayment)
		invoices.GET("/:id/payments", h.Invoice.ListPayments)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.ListServices)
		services.POST("", middleware.RequireRole("admin"), h.Catalog.CreateService)
		services.GET("/:id", h.Catalog.GetService)
		services.PUT("/:id", middleware.RequireRole("admin"), h.Catalog.UpdateService)
	}

	govEntities := protected.Group("/government-entities")
	{
		govEntities.GET("", h.Catalog.ListGovernmentEntities)
		govEntities.POST("", middleware.RequireRole("admin"), h.Catalog.CreateGovernmentEntity)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}
