package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"worktrack/internal/duedate"
	"worktrack/internal/models"
)

const sheetName = "Sheet1"

func writeSheet(head []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	hdr := make([]any, len(head))
	for i, h := range head {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &hdr); err != nil {
		return nil, err
	}
	for n, row := range rows {
		cell := fmt.Sprintf("A%d", n+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoicesXLSX: те же колонки, что и CSV, но с типизированными ячейками.
func InvoicesXLSX(rows []models.Invoice, o Options) ([]byte, error) {
	rows = Within(rows, o.Range, InvoiceDate)
	out := make([][]any, 0, len(rows))
	for _, i := range rows {
		out = append(out, []any{
			i.VendorName,
			i.InvoiceNumber,
			i.Amount.InexactFloat64(),
			string(i.Status),
			models.DateISO(i.IssueDate),
			models.DateISO(i.DueDate),
			duedate.DaysBetween(time.Time(i.DueDate), o.Now),
		})
	}
	return writeSheet([]string{"Vendor", "Invoice #", "Amount", "Status", "Issue Date", "Due Date", "Days Left"}, out)
}

func IssuesXLSX(rows []models.IssueReport, o Options) ([]byte, error) {
	rows = Within(rows, o.Range, IssueDate)
	out := make([][]any, 0, len(rows))
	for _, i := range rows {
		resolved := ""
		if i.ResolvedAt != nil {
			resolved = i.ResolvedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, []any{
			i.TicketNumber,
			i.Title,
			i.Category,
			i.Priority,
			string(i.Status),
			i.ReporterName(),
			i.CreatedAt.UTC().Format(time.RFC3339),
			resolved,
		})
	}
	return writeSheet([]string{"Ticket", "Title", "Category", "Priority", "Status", "Reported By", "Created", "Resolved"}, out)
}
