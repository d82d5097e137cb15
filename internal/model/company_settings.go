package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettingsID is the primary key of the single settings row.
const CompanySettingsID uint = 1

// Defaults used when the settings row does not exist yet.
const (
	DefaultCompanyName    = "Nama Perusahaan Anda"
	DefaultCompanyAddress = "Alamat Perusahaan\nKota, Kode Pos"
	DefaultCompanyPhone   = "+62 xxx-xxxx-xxxx"
	DefaultCompanyEmail   = "email@perusahaan.com"
	DefaultDueDays        = 30
	DefaultTemplate       = "classic"
)

// DefaultTaxRate is PPN 11%, stored as a fraction.
var DefaultTaxRate = decimal.NewFromFloat(0.11)

// CompanySettings is the issuer profile printed on every invoice.
type CompanySettings struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Address         string          `gorm:"type:text" json:"address"`
	Phone           string          `gorm:"type:varchar(50)" json:"phone"`
	Email           string          `gorm:"type:varchar(255)" json:"email"`
	Website         string          `gorm:"type:varchar(255)" json:"website"`
	NPWP            string          `gorm:"column:npwp;type:varchar(50)" json:"npwp"`
	DefaultTaxRate  decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"default_tax_rate"`
	DefaultDueDays  int             `gorm:"not null" json:"default_due_days"`
	InvoiceTemplate string          `gorm:"type:varchar(20);not null" json:"invoice_template"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DefaultCompanySettings returns the profile used before the user saves one.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		ID:              CompanySettingsID,
		Name:            DefaultCompanyName,
		Address:         DefaultCompanyAddress,
		Phone:           DefaultCompanyPhone,
		Email:           DefaultCompanyEmail,
		DefaultTaxRate:  DefaultTaxRate,
		DefaultDueDays:  DefaultDueDays,
		InvoiceTemplate: DefaultTemplate,
	}
}
