package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const LedgerDocument = "document"

var LedgerCategories = []string{"note", "reminder", "plan", LedgerDocument}

type LedgerNote struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Content      string     `gorm:"type:text" json:"content"`
	Category     string     `gorm:"size:16;not null;default:note;index" json:"category"`
	ReminderDate *time.Time `json:"reminder_date"`
	FileURL      string     `gorm:"size:1024" json:"file_url"`
	FileName     string     `gorm:"size:255" json:"file_name"`
	IsCompleted  bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedBy    uuid.UUID  `gorm:"type:char(36);index" json:"created_by"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (n *LedgerNote) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n LedgerNote) HasFile() bool { return n.FileURL != "" }
