package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/application/pricing"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	infraRepo "github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the workflow services over an in-memory database with one
// organization, branch, customer, and a small catalog.
type testEnv struct {
	db       *gorm.DB
	org      entity.Organization
	branch   entity.Branch
	customer entity.Customer

	// svcTaxed: office 3.000, gov 0.150, VAT applies
	svcTaxed entity.Service
	// svcUntaxed: office 10.000, gov 5.000, no VAT
	svcUntaxed entity.Service
	// svcInactive is present in the catalog but disabled
	svcInactive entity.Service

	actorID    uuid.UUID
	tickets    *TicketService
	invoices   *InvoiceService
	ticketRepo repository.TicketRepository
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestEnv(t *testing.T) (*testEnv, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Organization{},
		&entity.Branch{},
		&entity.User{},
		&entity.GovernmentEntity{},
		&entity.Service{},
		&entity.Customer{},
		&entity.Ticket{},
		&entity.TicketLineItem{},
		&entity.TicketLog{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Payment{},
		&entity.SequenceCounter{},
	))

	env := &testEnv{db: db, actorID: uuid.New()}

	env.org = entity.Organization{Code: 1, Name: "Test Org", Active: true}
	require.NoError(t, db.Create(&env.org).Error)

	env.branch = entity.Branch{OrganizationID: env.org.ID, Code: 1, Name: "Head Office"}
	require.NoError(t, db.Create(&env.branch).Error)

	env.customer = entity.Customer{OrganizationID: env.org.ID, Name: "Test Customer"}
	require.NoError(t, db.Create(&env.customer).Error)

	gov := entity.GovernmentEntity{Code: "MOJ", Name: "Ministry of Justice"}
	require.NoError(t, db.Create(&gov).Error)

	env.svcTaxed = entity.Service{
		GovernmentEntityID: gov.ID,
		Code:               "SVC_TAXED",
		Name:               "Taxed service",
		BaseOfficeFee:      dec("3.000"),
		GovFeeType:         enum.GovFeeTypeFixed,
		GovFeeValue:        dec("0.150"),
		VATApplicable:      true,
		Active:             true,
	}
	require.NoError(t, db.Create(&env.svcTaxed).Error)

	env.svcUntaxed = entity.Service{
		GovernmentEntityID: gov.ID,
		Code:               "SVC_UNTAXED",
		Name:               "Untaxed service",
		BaseOfficeFee:      dec("10.000"),
		GovFeeType:         enum.GovFeeTypeFixed,
		GovFeeValue:        dec("5.000"),
		VATApplicable:      false,
		Active:             true,
	}
	require.NoError(t, db.Create(&env.svcUntaxed).Error)

	env.svcInactive = entity.Service{
		GovernmentEntityID: gov.ID,
		Code:               "SVC_INACTIVE",
		Name:               "Inactive service",
		BaseOfficeFee:      dec("1.000"),
		GovFeeType:         enum.GovFeeTypeFixed,
		GovFeeValue:        dec("0.000"),
		VATApplicable:      true,
		Active:             false,
	}
	require.NoError(t, db.Create(&env.svcInactive).Error)

	engine := pricing.NewEngine(dec("0.05"))

	orgRepo := infraRepo.NewOrganizationRepository(db)
	branchRepo := infraRepo.NewBranchRepository(db)
	serviceRepo := infraRepo.NewServiceRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	ticketRepo := infraRepo.NewTicketRepository(db)
	ticketLogRepo := infraRepo.NewTicketLogRepository(db)
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	seqRepo := infraRepo.NewSequenceRepository(db)
	txManager := infraRepo.NewTxManager(db)

	env.ticketRepo = ticketRepo
	env.tickets = NewTicketService(ticketRepo, ticketLogRepo, serviceRepo, customerRepo, orgRepo, branchRepo, seqRepo, txManager, engine)
	env.invoices = NewInvoiceService(invoiceRepo, paymentRepo, ticketRepo, orgRepo, seqRepo, txManager, engine)
	env.invoices.SetPaymentCompletedHandler(env.tickets)

	ctx := infraRepo.WithOrganization(context.Background(), env.org.ID)
	return env, ctx
}

// createTicket makes a two-line ticket: taxed qty 2 and untaxed qty 1.
// Totals: office 16.000, gov 5.300, VAT 0.300, grand 21.600.
func (env *testEnv) createTicket(t *testing.T, ctx context.Context) *entity.Ticket {
	t.Helper()

	ticket, skipped, err := env.tickets.CreateTicket(ctx, &CreateTicketInput{
		BranchID:   env.branch.ID,
		CustomerID: &env.customer.ID,
		ActorID:    env.actorID,
		Lines: []TicketLineInput{
			{ServiceID: env.svcTaxed.ID, Quantity: 2},
			{ServiceID: env.svcUntaxed.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Empty(t, skipped)
	return ticket
}
