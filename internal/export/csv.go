package export

import (
	"strconv"
	"strings"
	"time"

	"worktrack/internal/duedate"
	"worktrack/internal/models"
)

var (
	invoiceCSVHeader = "Vendor,Invoice #,Amount,Status,Issue Date,Due Date,Days Left"
	issueCSVHeader   = "Ticket,Title,Category,Priority,Status,Reported By,Created,Resolved"
)

// quote оборачивает в кавычки и удваивает встроенные кавычки (RFC 4180).
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

type csvBuilder struct{ b strings.Builder }

func (c *csvBuilder) line(fields ...string) {
	c.b.WriteString(strings.Join(fields, ","))
	c.b.WriteString("\n")
}

func (c *csvBuilder) bytes() []byte { return []byte(c.b.String()) }

// InvoicesCSV: текстовые поля в кавычках, сумма/статус/даты/дни — как есть.
func InvoicesCSV(rows []models.Invoice, o Options) []byte {
	rows = Within(rows, o.Range, InvoiceDate)
	var c csvBuilder
	c.line(invoiceCSVHeader)
	for _, i := range rows {
		days := duedate.DaysBetween(time.Time(i.DueDate), o.Now)
		c.line(
			quote(i.VendorName),
			quote(i.InvoiceNumber),
			i.Amount.String(),
			string(i.Status),
			models.DateISO(i.IssueDate),
			models.DateISO(i.DueDate),
			strconv.Itoa(days),
		)
	}
	return c.bytes()
}

func IssuesCSV(rows []models.IssueReport, o Options) []byte {
	rows = Within(rows, o.Range, IssueDate)
	var c csvBuilder
	c.line(issueCSVHeader)
	for _, i := range rows {
		resolved := ""
		if i.ResolvedAt != nil {
			resolved = i.ResolvedAt.UTC().Format(time.RFC3339)
		}
		c.line(
			quote(i.TicketNumber),
			quote(i.Title),
			quote(i.Category),
			quote(i.Priority),
			quote(string(i.Status)),
			quote(i.ReporterName()),
			quote(i.CreatedAt.UTC().Format(time.RFC3339)),
			quote(resolved),
		)
	}
	return c.bytes()
}
