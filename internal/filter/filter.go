// Package filter: отбор строк по статусу/отделу/категории.
// Значение "all" (или пустое) по оси означает "без фильтра".
package filter

import (
	"time"

	"worktrack/internal/duedate"
	"worktrack/internal/models"
)

const All = "all"

// Overdue: псевдо-статус для счетов: просрочен и не оплачен.
const Overdue = "overdue"

type Criteria struct {
	Status     string
	Department string
	Category   string
}

// Fields: значения строки по трём осям.
type Fields struct {
	Status     string
	Department string
	Category   string
}

func active(v string) bool { return v != "" && v != All }

func (c Criteria) Match(f Fields) bool {
	if active(c.Status) && f.Status != c.Status {
		return false
	}
	if active(c.Department) && f.Department != c.Department {
		return false
	}
	if active(c.Category) && f.Category != c.Category {
		return false
	}
	return true
}

// Apply возвращает новый срез с сохранением порядка входа.
func Apply[T any](rows []T, c Criteria, fields func(T) Fields) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if c.Match(fields(r)) {
			out = append(out, r)
		}
	}
	return out
}

func IssueFields(i models.IssueReport) Fields {
	return Fields{Status: string(i.Status), Department: i.EffectiveDepartment(), Category: i.Category}
}

func InvoiceFields(i models.Invoice) Fields {
	return Fields{Status: string(i.Status)}
}

func LedgerFields(n models.LedgerNote) Fields {
	return Fields{Category: n.Category}
}

func Issues(rows []models.IssueReport, c Criteria) []models.IssueReport {
	return Apply(rows, c, IssueFields)
}

func Ledger(rows []models.LedgerNote, category string) []models.LedgerNote {
	return Apply(rows, Criteria{Category: category}, LedgerFields)
}

// Invoices: status — all|pending|paid|overdue.
func Invoices(rows []models.Invoice, status string, now time.Time) []models.Invoice {
	if status != Overdue {
		return Apply(rows, Criteria{Status: status}, InvoiceFields)
	}
	out := make([]models.Invoice, 0, len(rows))
	for _, r := range rows {
		if duedate.Classify(time.Time(r.DueDate), now, string(r.Status)).Bucket == duedate.Overdue {
			out = append(out, r)
		}
	}
	return out
}
