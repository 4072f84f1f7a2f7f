package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sanadops/sanad-api/internal/application/pricing"
	"github.com/sanadops/sanad-api/internal/application/service"
	"github.com/sanadops/sanad-api/internal/config"
	"github.com/sanadops/sanad-api/internal/infrastructure/database"
	"github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/handler"
	"github.com/sanadops/sanad-api/internal/presentation/http/routes"
	"github.com/sanadops/sanad-api/pkg/utils"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize token verifier for upstream-issued actor tokens
	tokenVerifier := utils.NewTokenVerifier(cfg.Auth.TokenSecret)

	// Initialize pricing engine
	vatRate, err := decimal.NewFromString(cfg.Billing.VATRate)
	if err != nil {
		log.Fatalf("Invalid VAT rate %q: %v", cfg.Billing.VATRate, err)
	}
	engine := pricing.NewEngine(vatRate)

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	govEntityRepo := repository.NewGovernmentEntityRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	ticketLogRepo := repository.NewTicketLogRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	seqRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	catalogService := service.NewCatalogService(serviceRepo, govEntityRepo)
	customerService := service.NewCustomerService(customerRepo)
	ticketService := service.NewTicketService(ticketRepo, ticketLogRepo, serviceRepo, customerRepo, orgRepo, branchRepo, seqRepo, txManager, engine)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, ticketRepo, orgRepo, seqRepo, txManager, engine)

	// A fully settled invoice moves its ticket to paid
	invoiceService.SetPaymentCompletedHandler(ticketService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Ticket:   handler.NewTicketHandler(ticketService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Customer: handler.NewCustomerHandler(customerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		TokenVerifier:   tokenVerifier,
		Cfg:             cfg,
		OrgRepo:         orgRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
