// Package stats собирает счётчики для дашборда из полного набора строк.
package stats

import (
	"time"

	"worktrack/internal/duedate"
	"worktrack/internal/models"
)

type Stats struct {
	TotalInvoices   int
	PendingInvoices int
	OverdueInvoices int
	DueSoonInvoices int
	OpenIssues      int
	ResolvedIssues  int
}

// Aggregate пересчитывает всё с нуля; now фиксируется вызывающим на весь проход.
func Aggregate(invoices []models.Invoice, issues []models.IssueReport, now time.Time) Stats {
	s := Stats{TotalInvoices: len(invoices)}
	for _, inv := range invoices {
		if inv.Status == models.InvoicePending {
			s.PendingInvoices++
		}
		switch duedate.Classify(time.Time(inv.DueDate), now, string(inv.Status)).Bucket {
		case duedate.Overdue:
			s.OverdueInvoices++
		case duedate.DueSoon:
			s.DueSoonInvoices++
		}
	}
	s.OpenIssues, s.ResolvedIssues = IssueCounts(issues)
	return s
}

// IssueCounts: open (всё, что не resolved) и resolved.
func IssueCounts(issues []models.IssueReport) (open, resolved int) {
	for _, is := range issues {
		if is.Status == models.IssueResolved {
			resolved++
		} else {
			open++
		}
	}
	return open, resolved
}

// Recent: первые n строк уже отсортированного списка.
func Recent[T any](rows []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}
