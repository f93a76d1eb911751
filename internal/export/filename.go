package export

import "fmt"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatCSV, FormatPDF, FormatXLSX:
		return Format(s), true
	}
	return "", false
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// FileName: invoices_pending_2024-01-01_to_2024-01-31.csv
func FileName(entity, filter string, r Range, f Format) string {
	if filter == "" {
		filter = "all"
	}
	start, end := r.Start, r.End
	if start == "" {
		start = "all"
	}
	if end == "" {
		end = "all"
	}
	return fmt.Sprintf("%s_%s_%s_to_%s.%s", entity, filter, start, end, f)
}
