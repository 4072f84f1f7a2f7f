package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/config"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Organization entities
		&entity.Organization{},
		&entity.Branch{},
		&entity.User{},

		// Catalog entities
		&entity.GovernmentEntity{},
		&entity.Service{},

		// CRM entities
		&entity.Customer{},

		// Workflow entities
		&entity.Ticket{},
		&entity.TicketLineItem{},
		&entity.TicketLog{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Payment{},

		// System entities
		&entity.SequenceCounter{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default organization, branch,
// and a starter government service catalog. Safe to run repeatedly.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var org entity.Organization
	if err := db.Where("code = ?", 1).First(&org).Error; err != nil {
		org = entity.Organization{
			Code:   1,
			Name:   "Main Organization",
			NameAr: "المؤسسة الرئيسية",
			Active: true,
		}
		if err := db.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to create default organization: %w", err)
		}
	}

	var branch entity.Branch
	if err := db.Where("organization_id = ? AND code = ?", org.ID, 1).First(&branch).Error; err != nil {
		branch = entity.Branch{
			OrganizationID: org.ID,
			Code:           1,
			Name:           "Head Office",
		}
		if err := db.Create(&branch).Error; err != nil {
			return fmt.Errorf("failed to create default branch: %w", err)
		}
	}

	govEntities := []entity.GovernmentEntity{
		{Code: "MOJ", Name: "Ministry of Justice", NameAr: "وزارة العدل"},
		{Code: "MOCI", Name: "Ministry of Commerce and Industry", NameAr: "وزارة التجارة والصناعة"},
		{Code: "PACI", Name: "Public Authority for Civil Information", NameAr: "الهيئة العامة للمعلومات المدنية"},
		{Code: "MUN", Name: "Kuwait Municipality", NameAr: "بلدية الكويت"},
	}
	govByCode := make(map[string]uuid.UUID, len(govEntities))
	for i := range govEntities {
		var existing entity.GovernmentEntity
		if err := db.Where("code = ?", govEntities[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&govEntities[i]).Error; err != nil {
				log.Printf("Warning: failed to create government entity %s: %v", govEntities[i].Code, err)
				continue
			}
			govByCode[govEntities[i].Code] = govEntities[i].ID
		} else {
			govByCode[existing.Code] = existing.ID
		}
	}

	services := []entity.Service{
		{
			GovernmentEntityID: govByCode["MOJ"],
			Code:               "MOJ_DEED_COPY",
			Name:               "Certified title deed copy",
			NameAr:             "نسخة مصدقة من سند الملكية",
			BaseOfficeFee:      decimal.RequireFromString("15.000"),
			GovFeeType:         enum.GovFeeTypeFixed,
			GovFeeValue:        decimal.RequireFromString("5.000"),
			VATApplicable:      true,
			TurnaroundDays:     3,
			Active:             true,
		},
		{
			GovernmentEntityID: govByCode["MOCI"],
			Code:               "MOCI_LIC_RENEW",
			Name:               "Commercial license renewal",
			NameAr:             "تجديد الرخصة التجارية",
			BaseOfficeFee:      decimal.RequireFromString("25.000"),
			GovFeeType:         enum.GovFeeTypeFixed,
			GovFeeValue:        decimal.RequireFromString("10.000"),
			VATApplicable:      true,
			TurnaroundDays:     5,
			Active:             true,
		},
		{
			GovernmentEntityID: govByCode["PACI"],
			Code:               "PACI_ADDR_CERT",
			Name:               "Address certificate",
			NameAr:             "شهادة عنوان",
			BaseOfficeFee:      decimal.RequireFromString("3.000"),
			GovFeeType:         enum.GovFeeTypeFixed,
			GovFeeValue:        decimal.RequireFromString("0.150"),
			VATApplicable:      true,
			TurnaroundDays:     1,
			Active:             true,
		},
		{
			GovernmentEntityID: govByCode["MUN"],
			Code:               "MUN_AREA_VAL",
			Name:               "Property area valuation",
			NameAr:             "تقييم مساحة العقار",
			BaseOfficeFee:      decimal.RequireFromString("40.000"),
			GovFeeType:         enum.GovFeeTypeVariable,
			GovFeeValue:        decimal.RequireFromString("20.000"),
			VATApplicable:      true,
			TurnaroundDays:     7,
			Active:             true,
		},
	}
	for i := range services {
		if services[i].GovernmentEntityID == uuid.Nil {
			continue
		}
		var existing entity.Service
		if err := db.Where("code = ?", services[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&services[i]).Error; err != nil {
				log.Printf("Warning: failed to create service %s: %v", services[i].Code, err)
			}
		}
	}

	log.Println("Default data seeded successfully")
	return nil
}
