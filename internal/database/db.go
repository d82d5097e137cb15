package database

import (
	"fmt"

	"umkm-invoice/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options configures NewConnection.
type Options struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
	Logger gormlogger.Interface
}

// NewConnection opens the store and migrates the schema.
func NewConnection(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres":
		dialector = postgres.Open(opts.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	cfg := &gorm.Config{TranslateError: true}
	if opts.Logger != nil {
		cfg.Logger = opts.Logger
	} else {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.Driver != "postgres" {
		// SQLite allows a single writer; one connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.CompanySettings{},
		&model.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return backfillNameKeys(db)
}

// backfillNameKeys fills normalized keys on rows written before the key
// columns existed. Normalization happens in Go because SQL LOWER does not
// fold non-ASCII letters on every driver.
func backfillNameKeys(db *gorm.DB) error {
	var items []model.InvoiceItem
	err := db.Where("product_key = ''").FindInBatches(&items, 500, func(tx *gorm.DB, _ int) error {
		for _, item := range items {
			if err := tx.Model(&model.InvoiceItem{}).Where("id = ?", item.ID).
				UpdateColumn("product_key", model.NormalizeName(item.ProductName)).Error; err != nil {
				return err
			}
		}
		return nil
	}).Error
	if err != nil {
		return fmt.Errorf("failed to backfill invoice item keys: %w", err)
	}

	var customers []model.Customer
	err = db.Where("name_key = ''").FindInBatches(&customers, 500, func(tx *gorm.DB, _ int) error {
		for _, c := range customers {
			if err := tx.Model(&model.Customer{}).Where("id = ?", c.ID).
				UpdateColumn("name_key", model.NormalizeName(c.Name)).Error; err != nil {
				return err
			}
		}
		return nil
	}).Error
	if err != nil {
		return fmt.Errorf("failed to backfill customer keys: %w", err)
	}
	return nil
}
