package export

import (
	"time"

	"worktrack/internal/duedate"
	"worktrack/internal/models"
)

// Table: отчёт, уже приведённый к строкам для отображения.
type Table struct {
	Title    string
	Subtitle string
	Head     []string
	Widths   []float64 // доли ширины страницы, в сумме 1
	Rows     [][]string
	FontSize float64
}

func InvoiceTable(rows []models.Invoice, o Options) Table {
	rows = Within(rows, o.Range, InvoiceDate)
	t := Table{
		Title:    "Invoice Report",
		Subtitle: "Filter: " + FilterLabel(o.Filter),
		Head:     []string{"Vendor", "Invoice #", "Amount", "Status", "Issue Date", "Due Date", "Days Left"},
		Widths:   []float64{0.22, 0.14, 0.14, 0.10, 0.14, 0.14, 0.12},
		FontSize: 9,
	}
	for _, i := range rows {
		info := duedate.Classify(time.Time(i.DueDate), o.Now, string(i.Status))
		t.Rows = append(t.Rows, []string{
			i.VendorName,
			i.InvoiceNumber,
			Money(i.Amount, o.Currency),
			StatusLabel(string(i.Status)),
			Date(time.Time(i.IssueDate)),
			Date(time.Time(i.DueDate)),
			info.Label(),
		})
	}
	return t
}

func IssueTable(rows []models.IssueReport, o Options) Table {
	rows = Within(rows, o.Range, IssueDate)
	t := Table{
		Title:    "Issue Report",
		Subtitle: "Filter: " + FilterLabel(o.Filter),
		Head:     []string{"Ticket", "Title", "Category", "Priority", "Status", "Reported By", "Created", "Resolved"},
		Widths:   []float64{0.14, 0.22, 0.10, 0.09, 0.11, 0.14, 0.10, 0.10},
		FontSize: 8,
	}
	for _, i := range rows {
		resolved := "-"
		if i.ResolvedAt != nil {
			resolved = Date(*i.ResolvedAt)
		}
		t.Rows = append(t.Rows, []string{
			i.TicketNumber,
			i.Title,
			i.Category,
			i.Priority,
			StatusLabel(string(i.Status)),
			i.ReporterName(),
			Date(i.CreatedAt),
			resolved,
		})
	}
	return t
}
