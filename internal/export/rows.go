package export

import (
	"errors"
	"time"

	"worktrack/internal/models"
)

// Range: необязательный диапазон дат yyyy-MM-dd, обе границы включительно.
type Range struct {
	Start string
	End   string
}

func (r Range) IsZero() bool { return r.Start == "" && r.End == "" }

func (r Range) Validate() error {
	if r.Start != "" {
		if _, err := time.Parse(models.ISODate, r.Start); err != nil {
			return err
		}
	}
	if r.End != "" {
		if _, err := time.Parse(models.ISODate, r.End); err != nil {
			return err
		}
	}
	if r.Start != "" && r.End != "" && r.Start > r.End {
		return errors.New("start is after end")
	}
	return nil
}

// Contains сравнивает календарную дату t (в её локации) с границами.
// Сравнение строк yyyy-MM-dd эквивалентно сравнению дат.
func (r Range) Contains(t time.Time) bool {
	d := t.Format(models.ISODate)
	if r.Start != "" && d < r.Start {
		return false
	}
	if r.End != "" && d > r.End {
		return false
	}
	return true
}

// Within оставляет строки из диапазона, порядок сохраняется.
func Within[T any](rows []T, r Range, date func(T) time.Time) []T {
	if r.IsZero() {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if r.Contains(date(row)) {
			out = append(out, row)
		}
	}
	return out
}

func InvoiceDate(i models.Invoice) time.Time   { return time.Time(i.DueDate) }
func IssueDate(i models.IssueReport) time.Time { return i.CreatedAt }

// Options: общие параметры выгрузки.
type Options struct {
	Now      time.Time
	Currency string
	Filter   string
	Range    Range
}
