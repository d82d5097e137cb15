package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice status values. New invoices start as Draft; no transition logic exists.
const (
	InvoiceStatusDraft = "Draft"
	InvoiceStatusSent  = "Sent"
	InvoiceStatusPaid  = "Paid"
)

// Invoice is append-only: once created it is never updated or deleted.
// Totals are computed at creation time and stored as-is.
type Invoice struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"customer,omitempty"`
	IssueDate     time.Time       `gorm:"type:date;not null;index" json:"issue_date"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"tax_rate"` // fraction, 0.11 = 11%
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
	Status        string          `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

// InvoiceItem is a line of an invoice. ProductName and UnitPrice are a
// snapshot taken when the invoice was created, not a reference to Product.
// ProductKey is the normalized name used to match lines against products.
type InvoiceItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductKey  string          `gorm:"type:varchar(255);not null;default:'';index" json:"-"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"`
}

func (i *InvoiceItem) BeforeSave(tx *gorm.DB) error {
	i.ProductKey = NormalizeName(i.ProductName)
	return nil
}
