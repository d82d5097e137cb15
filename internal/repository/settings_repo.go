package repository

import (
	"context"

	"umkm-invoice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.CompanySettings, error)
	Upsert(ctx context.Context, settings *model.CompanySettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns gorm.ErrRecordNotFound until the row has been written once.
func (r *settingsRepository) Get(ctx context.Context) (*model.CompanySettings, error) {
	var settings model.CompanySettings
	if err := GetDB(ctx, r.db).First(&settings, "id = ?", model.CompanySettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the singleton row, inserting it on first use.
func (r *settingsRepository) Upsert(ctx context.Context, settings *model.CompanySettings) error {
	settings.ID = model.CompanySettingsID
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
}
