// Package export сериализует отфильтрованные счета и заявки в CSV, PDF и XLSX.
package export

import (
	"fmt"

	"worktrack/internal/models"
)

func Invoices(rows []models.Invoice, f Format, o Options) ([]byte, error) {
	switch f {
	case FormatCSV:
		return InvoicesCSV(rows, o), nil
	case FormatPDF:
		return PDF(InvoiceTable(rows, o), o.Now)
	case FormatXLSX:
		return InvoicesXLSX(rows, o)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

func Issues(rows []models.IssueReport, f Format, o Options) ([]byte, error) {
	switch f {
	case FormatCSV:
		return IssuesCSV(rows, o), nil
	case FormatPDF:
		return PDF(IssueTable(rows, o), o.Now)
	case FormatXLSX:
		return IssuesXLSX(rows, o)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}
