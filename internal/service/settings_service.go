package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"umkm-invoice/internal/model"
	"umkm-invoice/internal/render"
	"umkm-invoice/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type UpdateSettingsRequest struct {
	Name            string          `json:"name" binding:"required,max=255"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone" binding:"max=50"`
	Email           string          `json:"email" binding:"max=255"`
	Website         string          `json:"website" binding:"max=255"`
	NPWP            string          `json:"npwp" binding:"max=50"`
	InvoiceTemplate string          `json:"invoice_template" binding:"required"`

	// Omitted defaults keep their stored values.
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate,omitempty" swaggertype:"string"`
	DefaultDueDays *int             `json:"default_due_days,omitempty" binding:"omitempty,gte=0,lte=365"`
}

type SettingsResponse struct {
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Website         string    `json:"website"`
	NPWP            string    `json:"npwp"`
	DefaultTaxRate  string    `json:"default_tax_rate"`
	DefaultDueDays  int       `json:"default_due_days"`
	InvoiceTemplate string    `json:"invoice_template"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TemplateResponse struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// --- Interface ---

type SettingsService interface {
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (Result[SettingsResponse], error)
	ListTemplates() []TemplateResponse
}

// --- Implementation ---

type settingsService struct {
	settingsRepo repository.SettingsRepository
	effects      sideEffects
	log          *logrus.Logger
}

func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	activityRepo repository.ActivityRepository,
	events EventPublisher,
	log *logrus.Logger,
) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		effects:      newSideEffects(activityRepo, events, log),
		log:          log,
	}
}

// loadSettings returns the stored row, writing the defaults on first use.
func loadSettings(ctx context.Context, repo repository.SettingsRepository) (*model.CompanySettings, error) {
	settings, err := repo.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	defaults := model.DefaultCompanySettings()
	if err := repo.Upsert(ctx, &defaults); err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	return &defaults, nil
}

func (s *settingsService) GetSettings(ctx context.Context) (SettingsResponse, error) {
	settings, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return SettingsResponse{}, err
	}
	return toSettingsResponse(*settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (Result[SettingsResponse], error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return invalidOrError[SettingsResponse](err)
	}
	if err := validateEmail("email", req.Email); err != nil {
		return invalidOrError[SettingsResponse](err)
	}
	if req.DefaultTaxRate != nil && (req.DefaultTaxRate.IsNegative() || req.DefaultTaxRate.GreaterThan(maxTaxRate)) {
		return Invalid[SettingsResponse]("default_tax_rate: must be between 0 and 1"), nil
	}
	key, ok := render.ParseTemplateKey(req.InvoiceTemplate)
	if !ok {
		return Invalid[SettingsResponse](fmt.Sprintf("invoice_template: unknown template %q", req.InvoiceTemplate)), nil
	}

	current, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return Result[SettingsResponse]{}, err
	}
	settings := &model.CompanySettings{
		Name:            req.Name,
		Address:         strings.TrimSpace(req.Address),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           req.Email,
		Website:         strings.TrimSpace(req.Website),
		NPWP:            strings.TrimSpace(req.NPWP),
		DefaultTaxRate:  current.DefaultTaxRate,
		DefaultDueDays:  current.DefaultDueDays,
		InvoiceTemplate: string(key),
	}
	if req.DefaultTaxRate != nil {
		settings.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.DefaultDueDays != nil {
		settings.DefaultDueDays = *req.DefaultDueDays
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return Result[SettingsResponse]{}, fmt.Errorf("failed to save settings: %w", err)
	}

	res := toSettingsResponse(*settings)
	s.effects.record(ctx, model.ActionUpdateSettings, settings.ID, settings.Name, req)
	s.effects.publish(EventSettingsUpdated, res)
	return Ok(res, "Company settings saved"), nil
}

func (s *settingsService) ListTemplates() []TemplateResponse {
	keys := render.Keys()
	res := make([]TemplateResponse, 0, len(keys))
	for _, k := range keys {
		res = append(res, TemplateResponse{Key: string(k), DisplayName: k.DisplayName()})
	}
	return res
}

// --- Response mappers ---

func toSettingsResponse(s model.CompanySettings) SettingsResponse {
	return SettingsResponse{
		Name:            s.Name,
		Address:         s.Address,
		Phone:           s.Phone,
		Email:           s.Email,
		Website:         s.Website,
		NPWP:            s.NPWP,
		DefaultTaxRate:  s.DefaultTaxRate.String(),
		DefaultDueDays:  s.DefaultDueDays,
		InvoiceTemplate: s.InvoiceTemplate,
		UpdatedAt:       s.UpdatedAt,
	}
}
