package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"worktrack/internal/models"
)

// EventStore: события календаря только создаются.
type EventStore struct{ db *gorm.DB }

func NewEventStore(db *gorm.DB) *EventStore { return &EventStore{db: db} }

func (s *EventStore) List(ctx context.Context) ([]models.CalendarEvent, error) {
	var rows []models.CalendarEvent
	if err := s.db.WithContext(ctx).Order("event_date asc, created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return rows, nil
}

func (s *EventStore) Create(ctx context.Context, e *models.CalendarEvent) error {
	return s.db.WithContext(ctx).Create(e).Error
}
