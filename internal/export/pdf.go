package export

import (
	"bytes"
	_ "embed"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 14.0
	pdfRowHeight = 7.0
	pdfFont      = "DejaVu"
)

// UTF-8 шрифт: в cp1252 нет ₵ и кириллицы.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// PDF рендерит таблицу постранично; шапка таблицы повторяется на каждой странице.
// Даты создания фиксируются в now, чтобы одинаковый вход давал одинаковый файл.
func PDF(t Table, now time.Time) ([]byte, error) {
	pdf := renderPDF(t, now)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(t Table, now time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)

	pageW, pageH := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin
	widths := make([]float64, len(t.Head))
	for i := range widths {
		if i < len(t.Widths) {
			widths[i] = t.Widths[i] * usable
		} else {
			widths[i] = usable / float64(len(t.Head))
		}
	}
	fontSize := t.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	head := func() {
		pdf.SetFont(pdfFont, "B", fontSize)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.Head {
			pdf.CellFormat(widths[i], pdfRowHeight, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", fontSize)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	pdf.SetFont(pdfFont, "", 18)
	pdf.Text(pdfMargin, 20, t.Title)
	pdf.SetFont(pdfFont, "", 11)
	pdf.Text(pdfMargin, 28, t.Subtitle)
	pdf.SetY(35)
	head()

	for n, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			head()
		}
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i := range t.Head {
			cell := ""
			if i < len(row) {
				cell = fit(pdf, row[i], widths[i]-2)
			}
			pdf.CellFormat(widths[i], pdfRowHeight, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf
}

// fit обрезает текст под ширину ячейки по рунам.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
