package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

type Invoice struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	VendorName    string          `gorm:"size:255;not null" json:"vendor_name"`
	InvoiceNumber string          `gorm:"size:128;not null;index" json:"invoice_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Description   string          `gorm:"type:text" json:"description"`
	IssueDate     datatypes.Date  `json:"issue_date"`
	DueDate       datatypes.Date  `gorm:"index" json:"due_date"`
	Status        InvoiceStatus   `gorm:"size:16;not null;default:pending;index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedBy     uuid.UUID       `gorm:"type:char(36);index" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = InvoicePending
	}
	return nil
}

// DueISO: due_date в виде yyyy-MM-dd (ключ для календаря и экспорта).
func (i Invoice) DueISO() string { return DateISO(i.DueDate) }
