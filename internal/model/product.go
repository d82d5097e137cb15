package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is catalog reference data. Names are unique regardless of case;
// NameKey holds the normalized form and carries the unique index.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	NameKey     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NormalizeName returns the key used for case-insensitive product name matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NameKey = NormalizeName(p.Name)
	return nil
}
