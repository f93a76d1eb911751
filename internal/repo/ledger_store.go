package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worktrack/internal/models"
)

type LedgerStore struct{ db *gorm.DB }

func NewLedgerStore(db *gorm.DB) *LedgerStore { return &LedgerStore{db: db} }

func (s *LedgerStore) List(ctx context.Context) ([]models.LedgerNote, error) {
	var rows []models.LedgerNote
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list ledger notes: %w", err)
	}
	return rows, nil
}

func (s *LedgerStore) Get(ctx context.Context, id uuid.UUID) (*models.LedgerNote, error) {
	var n models.LedgerNote
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

func (s *LedgerStore) Create(ctx context.Context, n *models.LedgerNote) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// Update переписывает поля формы, включая вложение (пустое = без файла).
func (s *LedgerStore) Update(ctx context.Context, id uuid.UUID, in models.LedgerNote) error {
	res := s.db.WithContext(ctx).Model(&models.LedgerNote{}).
		Where("id = ?", id).
		Select("title", "content", "category", "reminder_date", "file_url", "file_name").
		Updates(&in)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LedgerStore) ToggleComplete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !n.IsCompleted
	res := s.db.WithContext(ctx).Model(&models.LedgerNote{}).
		Where("id = ? AND is_completed = ?", id, n.IsCompleted).
		Update("is_completed", next)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrConflict
	}
	return next, nil
}

func (s *LedgerStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LedgerNote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
