package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worktrack/internal/models"
)

type InvoiceStore struct{ db *gorm.DB }

func NewInvoiceStore(db *gorm.DB) *InvoiceStore { return &InvoiceStore{db: db} }

// List: все счета по возрастанию срока.
func (s *InvoiceStore) List(ctx context.Context) ([]models.Invoice, error) {
	var rows []models.Invoice
	if err := s.db.WithContext(ctx).Order("due_date asc, created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return rows, nil
}

// ListRecent: новые сверху (для дашборда).
func (s *InvoiceStore) ListRecent(ctx context.Context) ([]models.Invoice, error) {
	var rows []models.Invoice
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent invoices: %w", err)
	}
	return rows, nil
}

// ListUnpaid: для календаря.
func (s *InvoiceStore) ListUnpaid(ctx context.Context) ([]models.Invoice, error) {
	var rows []models.Invoice
	err := s.db.WithContext(ctx).
		Where("status <> ?", models.InvoicePaid).
		Order("due_date asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list unpaid invoices: %w", err)
	}
	return rows, nil
}

func (s *InvoiceStore) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

func (s *InvoiceStore) Create(ctx context.Context, inv *models.Invoice) error {
	inv.Status = models.InvoicePending
	return s.db.WithContext(ctx).Create(inv).Error
}

// Update: полное редактирование полей формы; статус и автор не трогаются.
func (s *InvoiceStore) Update(ctx context.Context, id uuid.UUID, in models.Invoice) error {
	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).
		Select("vendor_name", "invoice_number", "amount", "description", "issue_date", "due_date", "notes").
		Updates(&in)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid: pending → paid. Повторная оплата — ErrInvalidTransition.
func (s *InvoiceStore) MarkPaid(ctx context.Context, id uuid.UUID) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := models.CanPay(inv.Status); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ? AND status = ?", id, inv.Status).
		Update("status", models.InvoicePaid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
