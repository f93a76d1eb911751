package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var EventTypes = []string{"reminder", "deadline", "meeting"}

type CalendarEvent struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	EventType   string         `gorm:"size:16;not null;default:reminder" json:"event_type"`
	EventDate   datatypes.Date `gorm:"index;not null" json:"event_date"`
	CreatedBy   uuid.UUID      `gorm:"type:char(36);index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (e *CalendarEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e CalendarEvent) DateISO() string { return DateISO(e.EventDate) }
