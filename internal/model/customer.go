package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a bill-to party. Invoices reference it by id, so a customer
// with invoices cannot be deleted. NameKey backs case-insensitive search.
type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	NameKey   string    `gorm:"type:varchar(255);not null;default:'';index" json:"-"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeSave(tx *gorm.DB) error {
	c.NameKey = NormalizeName(c.Name)
	return nil
}
