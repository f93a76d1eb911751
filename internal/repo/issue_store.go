package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worktrack/internal/models"
)

type IssueStore struct{ db *gorm.DB }

func NewIssueStore(db *gorm.DB) *IssueStore { return &IssueStore{db: db} }

func (s *IssueStore) List(ctx context.Context) ([]models.IssueReport, error) {
	var rows []models.IssueReport
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return rows, nil
}

func (s *IssueStore) ListByReporter(ctx context.Context, userID uuid.UUID) ([]models.IssueReport, error) {
	var rows []models.IssueReport
	err := s.db.WithContext(ctx).
		Where("reported_by = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list issues by reporter: %w", err)
	}
	return rows, nil
}

func (s *IssueStore) Get(ctx context.Context, id uuid.UUID) (*models.IssueReport, error) {
	var is models.IssueReport
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&is).Error; err != nil {
		return nil, notFound(err)
	}
	return &is, nil
}

// Create: номер тикета выдаётся в BeforeCreate.
func (s *IssueStore) Create(ctx context.Context, is *models.IssueReport) error {
	is.Status = models.IssueNotStarted
	is.ResolvedAt = nil
	is.ResolutionNotes = ""
	return s.db.WithContext(ctx).Create(is).Error
}

// UpdateStatus продвигает статус вперёд одной записью. При resolved
// resolution_notes и resolved_at пишутся вместе со статусом.
func (s *IssueStore) UpdateStatus(ctx context.Context, id uuid.UUID, next models.IssueStatus, notes string, now time.Time) (*models.IssueReport, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tr, err := models.PlanIssueTransition(cur.Status, next, notes, now)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&models.IssueReport{}).
		Where("id = ? AND status = ?", id, cur.Status).
		Updates(tr.Fields())
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return s.Get(ctx, id)
}
